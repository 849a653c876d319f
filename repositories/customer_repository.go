package repositories

import (
	"context"
	"errors"

	"teklif.link/configs/configslog"
	"teklif.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICustomerRepository müşteri kayıtları için salt okunur arayüz.
// Müşteri yönetimi CRM'in sorumluluğundadır; bu çekirdek sadece bakar.
type ICustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
}

// CustomerRepository ICustomerRepository arayüzünü uygular.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository yeni bir CustomerRepository örneği oluşturur.
func NewCustomerRepository(db *gorm.DB) ICustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// FindByID ID ile silinmemiş bir müşteriyi bulur.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	if id == 0 {
		return nil, errors.New("geçersiz müşteri ID")
	}
	var customer models.Customer
	err := r.getDB(ctx).First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CustomerRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

var _ ICustomerRepository = (*CustomerRepository)(nil)
