package models

// OfferDetail bir teklifin kalemlerinden birini temsil eder.
// Gönderimdeki her hizmet kalemi için bir satır oluşturulur; kalem yoksa
// serbest metin gereksinimden tek satır türetilir.
type OfferDetail struct {
	BaseModel
	OfferID uint  `gorm:"not null;index"`
	Offer   Offer `gorm:"foreignKey:OfferID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	Description string  `gorm:"type:text;not null"`
	Quantity    int     `gorm:"not null;default:1"`
	UnitPrice   float64 `gorm:"type:numeric(12,2);default:0"`
}
