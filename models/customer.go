package models

// Customer CRM tarafında yönetilen müşteri kaydı.
// Bu çekirdek yalnızca okuma yapar; oluşturma/güncelleme CRM'in işidir.
type Customer struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null;index"`
	Email   string `gorm:"type:varchar(255);index"`
	Phone   string `gorm:"type:varchar(30)"`
	Address string `gorm:"type:varchar(500)"`
	TaxID   string `gorm:"type:varchar(20);index"`
}
