package services

import (
	"context"
	"errors"
	"fmt"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/queryparams"
	"teklif.link/repositories"

	"go.uber.org/zap"
)

// IFormLinkAdminService panel ekranlarının okuma ve yönetim ihtiyaçları için
// arayüz. Workflow geçişleri (submit/decide) burada değildir; listeleme,
// detay görüntüleme ve link iptali buradadır.
type IFormLinkAdminService interface {
	GetFormLinkByID(ctx context.Context, id uint) (*models.FormLink, error)
	GetFormLinksPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	DeleteFormLink(ctx context.Context, id uint, deletedBy uint) error
}

// FormLinkAdminService IFormLinkAdminService arayüzünü uygular.
type FormLinkAdminService struct {
	repo  repositories.IFormLinkRepository
	audit IAuditLogger
}

// NewFormLinkAdminService yeni bir FormLinkAdminService örneği oluşturur.
func NewFormLinkAdminService(repo repositories.IFormLinkRepository, audit IAuditLogger) IFormLinkAdminService {
	return &FormLinkAdminService{repo: repo, audit: audit}
}

// GetFormLinkByID ID ile bir form linkini getirir.
func (s *FormLinkAdminService) GetFormLinkByID(ctx context.Context, id uint) (*models.FormLink, error) {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return link, nil
}

// GetFormLinksPaginated linkleri sayfalayarak getirir.
func (s *FormLinkAdminService) GetFormLinksPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()

	links, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &queryparams.PaginatedResult{
		Data: links,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// DeleteFormLink bir linki soft delete ile iptal eder. Kayıt denetim için
// saklanır, tüm lookup'lardan düşer. Karar bekleyen (submitted) bir gönderim
// sessizce silinemez: önce karara bağlanmalıdır.
func (s *FormLinkAdminService) DeleteFormLink(ctx context.Context, id uint, deletedBy uint) error {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if link.Status == models.FormLinkStatusSubmitted {
		return ErrInvalidStateTransition
	}

	if err := s.repo.Delete(ctx, link, deletedBy); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		configslog.Log.Error("Form linki silinemedi", zap.Uint("form_link_id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	actorID := deletedBy
	s.audit.Log(ctx, AuditEvent{
		Action:     AuditActionLinkDeleted,
		FormLinkID: id,
		ActorID:    &actorID,
	})
	configslog.SLog.Infof("Form linki iptal edildi: ID %d (Silen: %d)", id, deletedBy)
	return nil
}

var _ IFormLinkAdminService = (*FormLinkAdminService)(nil)
