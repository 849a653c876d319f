package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"teklif.link/configs"
	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/obfuscate"
	"teklif.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Token üretim sabitleri. Alfabe ve uzunluk dış kontrattır:
// token her zaman [A-Za-z0-9]{32} formatındadır.
const (
	tokenAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	maxTokenAttempts = 5
)

// IssueFormLinkInput link üretim parametreleri.
type IssueFormLinkInput struct {
	CustomerID        uint
	ExpirationHours   int // 0 veya negatifse config'teki varsayılan kullanılır
	CreatedBy         *uint
	ExternalProjectID string // opsiyonel, UUID formatında
}

// IssueResult üretilen link ve müşteriye gönderilecek URL.
type IssueResult struct {
	FormLink  *models.FormLink
	PublicURL string
	Warnings  []string
}

// IFormLinkTokenService form linki üretimi için arayüz.
type IFormLinkTokenService interface {
	IssueFormLink(ctx context.Context, input IssueFormLinkInput) (*IssueResult, error)
}

// FormLinkTokenService IFormLinkTokenService arayüzünü uygular.
type FormLinkTokenService struct {
	repo         repositories.IFormLinkRepository
	customerRepo repositories.ICustomerRepository
	audit        IAuditLogger
	cfg          *configs.AppConfig
}

// NewFormLinkTokenService yeni bir FormLinkTokenService örneği oluşturur.
func NewFormLinkTokenService(
	repo repositories.IFormLinkRepository,
	customerRepo repositories.ICustomerRepository,
	audit IAuditLogger,
	cfg *configs.AppConfig,
) IFormLinkTokenService {
	return &FormLinkTokenService{repo: repo, customerRepo: customerRepo, audit: audit, cfg: cfg}
}

// IssueFormLink müşteri için tek kullanımlık form linki üretir.
// Token çakışması sınırlı sayıda yeniden denemeyle çözülür; tükenirse
// CollisionExhausted döner. Müşteri referansı gizlenemezse link ham ID ile
// üretilir (degraded mod) — bu bir uyarıdır, hata değil.
func (s *FormLinkTokenService) IssueFormLink(ctx context.Context, input IssueFormLinkInput) (*IssueResult, error) {
	if input.CustomerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz müşteri ID", ErrValidation)
	}

	// 1. Müşteri mevcut ve silinmemiş olmalı.
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 2. Dış proje referansı (varsa) UUID olmalı.
	var externalProjectID *string
	if input.ExternalProjectID != "" {
		parsed, parseErr := uuid.Parse(input.ExternalProjectID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: dış proje ID geçerli bir UUID değil", ErrValidation)
		}
		v := parsed.String()
		externalProjectID = &v
	}

	// 3. Geçerlilik süresi: expiresAt her zaman createdAt'tan sonradır.
	hours := input.ExpirationHours
	if hours <= 0 {
		hours = s.cfg.DefaultExpirationHours
	}
	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	// 4. Benzersiz token üret (sınırlı deneme).
	token, err := s.generateUniqueToken(ctx)
	if err != nil {
		return nil, err
	}

	// 5. Müşteri referansını gizle; başarısızsa degraded moda düş.
	var warnings []string
	reference, refErr := obfuscate.CustomerReference(s.cfg.ReferenceSecret, customer.ID)
	if refErr != nil {
		configslog.Log.Warn("Müşteri referansı gizlenemedi, ham ID ile devam ediliyor",
			zap.Uint("customer_id", customer.ID), zap.Error(refErr))
		warnings = append(warnings, "müşteri referansı gizlenemedi")
		reference = ""
	}

	link := &models.FormLink{
		CustomerID:        customer.ID,
		Token:             token,
		Status:            models.FormLinkStatusPending,
		IsUsed:            false,
		ExpiresAt:         expiresAt,
		ExternalProjectID: externalProjectID,
		CustomerReference: reference,
	}

	createCtx := ctx
	if input.CreatedBy != nil {
		createCtx = contextWithUserID(ctx, *input.CreatedBy)
	}
	if err := s.repo.Create(createCtx, link); err != nil {
		configslog.Log.Error("Form linki oluşturulamadı", zap.Uint("customer_id", customer.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.audit.Log(ctx, AuditEvent{
		Action:     AuditActionLinkIssued,
		FormLinkID: link.ID,
		ActorID:    input.CreatedBy,
		Details:    map[string]interface{}{"expires_at": expiresAt},
	})

	configslog.SLog.Infof("Form linki oluşturuldu: ID %d, Müşteri %d, Son geçerlilik %s", link.ID, customer.ID, expiresAt.Format(time.RFC3339))

	return &IssueResult{
		FormLink:  link,
		PublicURL: s.buildPublicURL(link, customer),
		Warnings:  warnings,
	}, nil
}

// generateUniqueToken silinmemiş linkler arasında benzersiz bir token üretir.
// Deneme sayısı sınırlıdır; sınırsız özyineleme burada bilinçli olarak yoktur.
func (s *FormLinkTokenService) generateUniqueToken(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := randomToken(models.FormLinkTokenLength)
		if err != nil {
			return "", fmt.Errorf("%w: token üretilemedi: %v", ErrPersistence, err)
		}
		exists, err := s.repo.TokenExists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !exists {
			return token, nil
		}
		configslog.SLog.Warnf("Token çakışması (%d/%d deneme), yeniden üretiliyor.", attempt, maxTokenAttempts)
	}
	return "", ErrCollisionExhausted
}

// buildPublicURL müşteriye iletilecek linki kurar. Gizlenmiş referans varsa
// o kullanılır; yoksa ham ID ile degraded URL üretilir.
func (s *FormLinkTokenService) buildPublicURL(link *models.FormLink, customer *models.Customer) string {
	if link.CustomerReference != "" {
		return fmt.Sprintf("%s/form/%s?ref=%s", s.cfg.BaseURL, link.Token, link.CustomerReference)
	}
	return fmt.Sprintf("%s/form/%s?customer=%d", s.cfg.BaseURL, link.Token, customer.ID)
}

// randomToken kriptografik rastgelelikle sabit alfabeden token üretir.
func randomToken(length int) (string, error) {
	buf := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

var _ IFormLinkTokenService = (*FormLinkTokenService)(nil)
