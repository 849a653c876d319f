package repositories

import (
	"context"
	"errors"
	"time"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormLinkRepository form linki veritabanı işlemleri için arayüz.
type IFormLinkRepository interface {
	Create(ctx context.Context, link *models.FormLink) error
	FindByID(ctx context.Context, id uint) (*models.FormLink, error)
	FindByToken(ctx context.Context, token string) (*models.FormLink, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	MarkSubmitted(ctx context.Context, id uint, data models.JSONMap, submittedAt time.Time) error
	MarkDecided(ctx context.Context, id uint, decidedByUserID uint, fields map[string]interface{}) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.FormLink, int64, error)
	Delete(ctx context.Context, link *models.FormLink, deletedByUserID uint) error
}

// FormLinkRepository IFormLinkRepository arayüzünü uygular.
type FormLinkRepository struct {
	db *gorm.DB
}

// NewFormLinkRepository yeni bir FormLinkRepository örneği oluşturur.
func NewFormLinkRepository(db *gorm.DB) IFormLinkRepository {
	return &FormLinkRepository{db: db}
}

// NewFormLinkRepositoryTx transaction'a bağlı repository oluşturur.
func NewFormLinkRepositoryTx(tx *gorm.DB) IFormLinkRepository {
	return &FormLinkRepository{db: tx}
}

func (r *FormLinkRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create yeni bir form linki kaydı oluşturur. Token servis katmanında
// üretilmiş olmalıdır.
func (r *FormLinkRepository) Create(ctx context.Context, link *models.FormLink) error {
	if link == nil {
		return errors.New("oluşturulacak form linki nil olamaz")
	}
	return r.getDB(ctx).Create(link).Error
}

// FindByID ID ile bir form linkini bulur (Customer ilişkisiyle).
func (r *FormLinkRepository) FindByID(ctx context.Context, id uint) (*models.FormLink, error) {
	if id == 0 {
		return nil, errors.New("geçersiz form linki ID")
	}
	var link models.FormLink
	err := r.getDB(ctx).Preload("Customer").First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormLinkRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// FindByToken public token ile form linkini bulur (Customer ilişkisiyle).
// Soft delete edilmiş linkler GORM scope'u gereği görünmez.
func (r *FormLinkRepository) FindByToken(ctx context.Context, token string) (*models.FormLink, error) {
	if token == "" {
		return nil, errors.New("aranacak token boş olamaz")
	}
	var link models.FormLink
	err := r.getDB(ctx).Preload("Customer").Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormLinkRepository.FindByToken: DB error", zap.Error(err))
		return nil, err
	}
	return &link, nil
}

// TokenExists üretilen token'ın silinmemiş linkler arasında var olup
// olmadığını kontrol eder (çakışma kontrolü).
func (r *FormLinkRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, errors.New("kontrol edilecek token boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.FormLink{}).Where("token = ?", token).Count(&count).Error
	if err != nil {
		configslog.Log.Error("FormLinkRepository.TokenExists: DB error", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// MarkSubmitted pending durumdaki linki tek hamlede submitted'a geçirir.
// Güncelleme mevcut duruma koşulludur (status=pending AND is_used=false);
// aynı token'a eşzamanlı iki gönderimden yalnızca biri satırı etkiler,
// kaybeden ErrStateConflict alır. Naif read-then-write burada yasaktır.
func (r *FormLinkRepository) MarkSubmitted(ctx context.Context, id uint, data models.JSONMap, submittedAt time.Time) error {
	if id == 0 {
		return errors.New("geçersiz form linki ID")
	}
	db := r.getDB(ctx)

	result := db.Model(&models.FormLink{}).
		Where("id = ? AND status = ? AND is_used = ?", id, models.FormLinkStatusPending, false).
		Updates(map[string]interface{}{
			"status":          models.FormLinkStatusSubmitted,
			"is_used":         true,
			"submitted_at":    submittedAt,
			"submission_data": data,
		})
	if result.Error != nil {
		configslog.Log.Error("FormLinkRepository.MarkSubmitted: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Satır ya yok ya da artık pending değil.
		var exists int64
		if err := db.Model(&models.FormLink{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrStateConflict
	}
	return nil
}

// MarkDecided submitted durumdaki linki terminal duruma (approved/rejected)
// geçirir. Koşul status=submitted: aynı linke yarışan iki onaycıdan ilk
// yazan kazanır, ikincisi ErrStateConflict alır.
func (r *FormLinkRepository) MarkDecided(ctx context.Context, id uint, decidedByUserID uint, fields map[string]interface{}) error {
	if id == 0 {
		return errors.New("geçersiz form linki ID")
	}
	if len(fields) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	ctxWithUser := context.WithValue(ctx, models.ContextUserIDKey, decidedByUserID)
	db := r.getDB(ctxWithUser)

	result := db.Model(&models.FormLink{}).
		Where("id = ? AND status = ?", id, models.FormLinkStatusSubmitted).
		Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("FormLinkRepository.MarkDecided: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := db.Model(&models.FormLink{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrStateConflict
	}
	return nil
}

// FindAllPaginated panel listesi için linkleri sayfalayarak getirir.
func (r *FormLinkRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.FormLink, int64, error) {
	db := r.getDB(ctx)

	var totalCount int64
	if err := db.Model(&models.FormLink{}).Count(&totalCount).Error; err != nil {
		configslog.Log.Error("FormLinkRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}

	var links []models.FormLink
	err := db.Preload("Customer").
		Order(params.OrderClause("created_at", "token", "status", "expires_at")).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&links).Error
	if err != nil {
		configslog.Log.Error("FormLinkRepository.FindAllPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return links, totalCount, nil
}

// Delete bir form linkini soft delete eder. Kayıt denetim için saklanır,
// tüm lookup'lardan düşer.
func (r *FormLinkRepository) Delete(ctx context.Context, link *models.FormLink, deletedByUserID uint) error {
	if link == nil || link.ID == 0 {
		return errors.New("silinecek form linki geçerli değil")
	}
	db := r.getDB(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		if deletedByUserID != 0 {
			if err := tx.Model(link).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
				configslog.Log.Error("FormLinkRepository.Delete: DeletedBy güncellenemedi", zap.Uint("id", link.ID), zap.Error(err))
				return err
			}
		}
		result := tx.Delete(link)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Arayüz uyumluluğu kontrolü
var _ IFormLinkRepository = (*FormLinkRepository)(nil)
