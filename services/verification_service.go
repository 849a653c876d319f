package services

import (
	"context"
	"crypto/subtle"
	"time"

	"teklif.link/configs"
	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/obfuscate"
)

// VerificationData dış sisteme dönen asgari, kimliksizleştirilmiş projeksiyon.
// Ham müşteri ID'si bilinçli olarak yoktur: dış çağıran yalnızca gizlenmiş
// referansı ve görünen adı görür. Bu açık bir güven sınırıdır.
type VerificationData struct {
	FormLinkID        uint                   `json:"formLinkId"`
	CustomerReference string                 `json:"customerReference"`
	CustomerName      string                 `json:"customerName"`
	Status            models.FormLinkStatus  `json:"status"`
	ExpiresAt         time.Time              `json:"expiresAt"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// IVerificationService dış doğrulama API'si için arayüz.
type IVerificationService interface {
	VerifyToken(ctx context.Context, token, apiKey string) (*VerificationData, error)
}

// VerificationService IVerificationService arayüzünü uygular.
type VerificationService struct {
	validator IFormLinkValidationService
	audit     IAuditLogger
	cfg       *configs.AppConfig
}

// NewVerificationService yeni bir VerificationService örneği oluşturur.
func NewVerificationService(validator IFormLinkValidationService, audit IAuditLogger, cfg *configs.AppConfig) IVerificationService {
	return &VerificationService{validator: validator, audit: audit, cfg: cfg}
}

// VerifyToken API anahtarını doğrular, sonra token'ı sınıflandırır.
// Anahtar geçersizse token lookup'ı hiç yapılmaz (fails closed): dış
// çağırana token'ın var olup olmadığı sızdırılmaz.
func (s *VerificationService) VerifyToken(ctx context.Context, token, apiKey string) (*VerificationData, error) {
	if !s.isAPIKeyAllowed(apiKey) {
		configslog.Log.Warn("Doğrulama isteği geçersiz API anahtarıyla reddedildi")
		return nil, ErrPermissionDenied
	}

	result, err := s.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return nil, result.Reason.Err()
	}

	link := result.FormLink
	reference := link.CustomerReference
	if reference == "" {
		// Link degraded modda üretilmiş olabilir; son bir deneme daha yap.
		if ref, refErr := obfuscate.CustomerReference(s.cfg.ReferenceSecret, link.CustomerID); refErr == nil {
			reference = ref
		}
	}

	metadata := map[string]interface{}{}
	if link.ExternalProjectID != nil {
		metadata["externalProjectId"] = *link.ExternalProjectID
	}

	s.audit.Log(ctx, AuditEvent{Action: AuditActionLinkVerified, FormLinkID: link.ID})

	return &VerificationData{
		FormLinkID:        link.ID,
		CustomerReference: reference,
		CustomerName:      result.Customer.Name,
		Status:            link.Status,
		ExpiresAt:         link.ExpiresAt,
		Metadata:          metadata,
	}, nil
}

// isAPIKeyAllowed anahtarı izin listesine karşı sabit zamanlı karşılaştırır.
func (s *VerificationService) isAPIKeyAllowed(apiKey string) bool {
	if apiKey == "" || len(s.cfg.VerificationAPIKeys) == 0 {
		return false
	}
	for _, allowed := range s.cfg.VerificationAPIKeys {
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(allowed)) == 1 {
			return true
		}
	}
	return false
}

var _ IVerificationService = (*VerificationService)(nil)
