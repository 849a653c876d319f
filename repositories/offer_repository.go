package repositories

import (
	"context"
	"errors"

	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOfferRepository teklif kayıtları için arayüz. Teklifler bu workflow
// tarafından yalnızca oluşturulur; güncelleme metodu bilinçli olarak yoktur.
type IOfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	CreateDetail(ctx context.Context, detail *models.OfferDetail) error
	FindByID(ctx context.Context, id uint) (*models.Offer, error)
	OfferNumberExists(ctx context.Context, offerNumber string) (bool, error)
}

// OfferRepository IOfferRepository arayüzünü uygular.
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository yeni bir OfferRepository örneği oluşturur.
func NewOfferRepository(db *gorm.DB) IOfferRepository {
	return &OfferRepository{db: db}
}

// NewOfferRepositoryTx transaction'a bağlı repository oluşturur.
func NewOfferRepositoryTx(tx *gorm.DB) IOfferRepository {
	return &OfferRepository{db: tx}
}

func (r *OfferRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir teklif kaydı oluşturur.
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return errors.New("oluşturulacak teklif nil olamaz")
	}
	// Details ayrı ayrı CreateDetail ile yazılır; kalem hatası teklifi
	// geri almasın diye burada cascade insert yapılmaz.
	return r.getDB(ctx).Omit("Details").Create(offer).Error
}

// CreateDetail tek bir teklif kalemi oluşturur.
func (r *OfferRepository) CreateDetail(ctx context.Context, detail *models.OfferDetail) error {
	if detail == nil || detail.OfferID == 0 {
		return errors.New("geçersiz teklif kalemi")
	}
	return r.getDB(ctx).Create(detail).Error
}

// FindByID ID ile bir teklifi kalemleriyle birlikte bulur.
func (r *OfferRepository) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	if id == 0 {
		return nil, errors.New("geçersiz teklif ID")
	}
	var offer models.Offer
	err := r.getDB(ctx).Preload("Details").First(&offer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OfferRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &offer, nil
}

// OfferNumberExists üretilen teklif numarasının kullanımda olup olmadığını
// kontrol eder (çakışma kontrolü).
func (r *OfferRepository) OfferNumberExists(ctx context.Context, offerNumber string) (bool, error) {
	if offerNumber == "" {
		return false, errors.New("kontrol edilecek teklif numarası boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Offer{}).Where("offer_number = ?", offerNumber).Count(&count).Error
	if err != nil {
		configslog.Log.Error("OfferRepository.OfferNumberExists: DB error", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

var _ IOfferRepository = (*OfferRepository)(nil)
