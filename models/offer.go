package models

// Offer onaylanmış bir form gönderiminden türetilen satış teklifi.
// Bu workflow tarafından yalnızca oluşturulur, asla güncellenmez.
// Müşteriye referans verir; kaynaklandığı FormLink'i takip etmez.
type Offer struct {
	BaseModel
	CustomerID uint     `gorm:"not null;index"`
	Customer   Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	OfferNumber string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Title       string `gorm:"type:varchar(100);not null"`

	Requirements      string `gorm:"type:text;not null"`
	Comments          string `gorm:"type:text"`
	ContactPreference string `gorm:"type:varchar(50)"`
	Address           string `gorm:"type:varchar(500)"`

	Details []OfferDetail `gorm:"foreignKey:OfferID"`
}
