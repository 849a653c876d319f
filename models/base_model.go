package models

import (
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşır.
const ContextUserIDKey contextKey = "user_id"

// BaseModel tüm entity'lere gömülen ortak alanlar.
// DeletedAt sayesinde silme işlemleri soft delete'tir; silinmiş kayıtlar
// GORM scope'u tarafından tüm sorgulardan otomatik dışlanır.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"type:timestamptz"`
	UpdatedAt time.Time      `gorm:"type:timestamptz"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint          `gorm:"index"`
	UpdatedBy *uint
	DeletedBy *uint
}

// BeforeCreate context'teki kullanıcıyı CreatedBy'a yazar.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok && userID != 0 {
		m.CreatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'teki kullanıcıyı UpdatedBy'a yazar.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok && userID != 0 {
		tx.Statement.SetColumn("updated_by", userID)
	}
	return nil
}
