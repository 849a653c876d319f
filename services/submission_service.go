package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/sanitize"
	"teklif.link/repositories"

	"go.uber.org/zap"
)

// Gönderim payload'unda kabul edilen üst seviye alanlar. Bilinmeyen alanlar
// sessizce saklanmaz, ValidationError ile reddedilir.
var allowedSubmissionFields = map[string]bool{
	"requirements":       true,
	"customer_comments":  true,
	"contact_preference": true,
	"address":            true,
	"service_entries":    true,
	"wholesale":          true,
	"source":             true,
}

// ISubmissionService form gönderimi için arayüz.
type ISubmissionService interface {
	SubmitForm(ctx context.Context, token string, payload map[string]interface{}) (*models.FormLink, error)
}

// SubmissionService ISubmissionService arayüzünü uygular.
type SubmissionService struct {
	repo      repositories.IFormLinkRepository
	validator IFormLinkValidationService
	notifier  INotificationEmitter
	audit     IAuditLogger
}

// NewSubmissionService yeni bir SubmissionService örneği oluşturur.
func NewSubmissionService(
	repo repositories.IFormLinkRepository,
	validator IFormLinkValidationService,
	notifier INotificationEmitter,
	audit IAuditLogger,
) ISubmissionService {
	return &SubmissionService{repo: repo, validator: validator, notifier: notifier, audit: audit}
}

// SubmitForm payload'u sanitize edip linki tek hamlede submitted durumuna
// geçirir. Geçiş koşullu güncellemeyle yapılır: aynı token'a eşzamanlı N
// gönderimden tam olarak biri başarılı olur, diğerleri AlreadyUsed alır.
// Geçersiz sınıflandırmalarda hiçbir yan etki oluşmaz.
func (s *SubmissionService) SubmitForm(ctx context.Context, token string, payload map[string]interface{}) (*models.FormLink, error) {
	// 1. Sınıflandırma: geçersizse nedeni olduğu gibi döndür.
	result, err := s.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return nil, result.Reason.Err()
	}
	link := result.FormLink

	// Validator submitted linki de geçerli sayar (sınıflandırma kontratı);
	// ikinci gönderimi burada erkenden yakala. Asıl garanti yine de CAS'tadır.
	if link.IsUsed {
		return nil, ErrAlreadyUsed
	}

	// 2. Payload doğrulama ve sanitizasyon.
	if err := validateSubmissionPayload(payload); err != nil {
		return nil, err
	}
	sanitized := models.JSONMap(sanitize.Map(payload))

	// 3. Koşullu geçiş: status=pending AND is_used=false olan satırı güncelle.
	now := time.Now().UTC()
	if err := s.repo.MarkSubmitted(ctx, link.ID, sanitized, now); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStateConflict):
			// Yarışı kaybettik: başka bir gönderim önce yazdı.
			return nil, ErrAlreadyUsed
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		default:
			configslog.Log.Error("Form gönderimi kaydedilemedi", zap.Uint("form_link_id", link.ID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	// 4. Güncel kaydı yeniden yükle.
	updated, err := s.repo.FindByID(ctx, link.ID)
	if err != nil {
		configslog.Log.Error("Gönderim sonrası link yeniden yüklenemedi", zap.Uint("form_link_id", link.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 5. Best-effort yan kanallar.
	s.notifier.NotifySubmissionReceived(ctx, updated)
	s.audit.Log(ctx, AuditEvent{
		Action:     AuditActionLinkSubmitted,
		FormLinkID: updated.ID,
		Details:    map[string]interface{}{"submitted_at": now},
	})

	configslog.SLog.Infof("Form gönderimi alındı: Link ID %d, Müşteri %d", updated.ID, updated.CustomerID)
	return updated, nil
}

// validateSubmissionPayload payload'un boş olmadığını ve yalnızca bilinen
// üst seviye alanları içerdiğini doğrular.
func validateSubmissionPayload(payload map[string]interface{}) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: gönderim verisi boş olamaz", ErrValidation)
	}
	for key := range payload {
		if !allowedSubmissionFields[key] {
			return fmt.Errorf("%w: bilinmeyen alan %q", ErrValidation, key)
		}
	}
	return nil
}

var _ ISubmissionService = (*SubmissionService)(nil)
