package models

import "time"

// FormLinkStatus bir form linkinin yaşam döngüsündeki durumunu tanımlar.
type FormLinkStatus string

const (
	FormLinkStatusPending   FormLinkStatus = "pending"   // Oluşturuldu, henüz gönderim yok
	FormLinkStatusSubmitted FormLinkStatus = "submitted" // Müşteri formu gönderdi
	FormLinkStatusApproved  FormLinkStatus = "approved"  // Personel onayladı (terminal)
	FormLinkStatusRejected  FormLinkStatus = "rejected"  // Personel reddetti (terminal)
)

// FormLinkTokenLength public token'ın sabit uzunluğu.
const FormLinkTokenLength = 32

// FormLink tek kullanımlık, süreli form erişim linkini temsil eder.
// Token tek taşıyıcı kimliktir (bearer); atandıktan sonra değişmez ve
// silinmemiş kayıtlar arasında benzersizdir.
type FormLink struct {
	BaseModel
	CustomerID uint     `gorm:"not null;index"`
	Customer   Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Token  string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	Status FormLinkStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	IsUsed bool           `gorm:"not null;default:false"`

	ExpiresAt   time.Time  `gorm:"not null;index;type:timestamptz"`
	SubmittedAt *time.Time `gorm:"type:timestamptz"`
	ApprovedAt  *time.Time `gorm:"type:timestamptz"`
	ApprovedBy  *uint      `gorm:"index"`

	// Gönderim anında sanitize edilerek kaydedilen payload.
	SubmissionData JSONMap `gorm:"type:jsonb"`

	// Metadata: dış proje referansı ve dışarıya gösterilen gizlenmiş müşteri referansı.
	ExternalProjectID *string `gorm:"type:varchar(64);index"`
	CustomerReference string  `gorm:"type:varchar(64)"`

	Notes string `gorm:"type:text"`
}

// IsExpired linkin verilen ana göre süresinin dolup dolmadığını söyler.
// Süre kontrolü tembeldir: arka planda status değiştiren bir süreç yoktur,
// geçerlilik yalnızca okuma anında değerlendirilir.
func (f *FormLink) IsExpired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}

// IsFinalized terminal durum kontrolü; approved/rejected sonrası hiçbir
// workflow mutasyonuna izin verilmez.
func (f *FormLink) IsFinalized() bool {
	return f.Status == FormLinkStatusApproved || f.Status == FormLinkStatusRejected
}
