package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/repositories"

	"go.uber.org/zap"
)

// Teklif numarası sabitleri: TKF-yyyymmdd-XXXX formatı.
const (
	offerNumberPrefix       = "TKF"
	offerNumberAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // karışan karakterler yok
	offerNumberRandomLength = 4
	maxOfferNumberAttempts  = 5

	offerTitleMaxLength = 60
)

// SynthesisResult teklif sentezinin sonucu. Warnings kısmi başarıları taşır:
// tek tek kalem hataları teklifi iptal etmez.
type SynthesisResult struct {
	Offer    *models.Offer
	Details  []models.OfferDetail
	Warnings []string
}

// IOfferService onaylanmış gönderimden teklif sentezi için arayüz.
type IOfferService interface {
	SynthesizeOffer(ctx context.Context, submissionData models.JSONMap, customerID uint, createdBy *uint) (*SynthesisResult, error)
}

// OfferService IOfferService arayüzünü uygular.
type OfferService struct {
	repo         repositories.IOfferRepository
	customerRepo repositories.ICustomerRepository
	audit        IAuditLogger
}

// NewOfferService yeni bir OfferService örneği oluşturur.
func NewOfferService(repo repositories.IOfferRepository, customerRepo repositories.ICustomerRepository, audit IAuditLogger) IOfferService {
	return &OfferService{repo: repo, customerRepo: customerRepo, audit: audit}
}

// SynthesizeOffer gönderim verisinden yeni bir Offer ve kalemlerini üretir.
// Önce teklif kalıcılaştırılır, kalemler tek tek denenir: bir kalem hatası
// loglanıp atlanır, teklifi ve onu çağıran onayı geri almaz.
func (s *OfferService) SynthesizeOffer(ctx context.Context, submissionData models.JSONMap, customerID uint, createdBy *uint) (*SynthesisResult, error) {
	// 1. Asgari şekil doğrulaması: gereksinim metni ve müşteri şart.
	requirements := strings.TrimSpace(stringField(submissionData, "requirements"))
	if requirements == "" {
		return nil, fmt.Errorf("%w: gereksinim metni zorunludur", ErrValidation)
	}
	if customerID == 0 {
		return nil, fmt.Errorf("%w: müşteri belirlenemedi", ErrValidation)
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 2. Benzersiz teklif numarası (sınırlı deneme, token üretimiyle aynı disiplin).
	offerNumber, err := s.generateUniqueOfferNumber(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Alan eşlemesi.
	offer := &models.Offer{
		CustomerID:        customer.ID,
		OfferNumber:       offerNumber,
		Title:             deriveOfferTitle(requirements),
		Requirements:      requirements,
		Comments:          stringField(submissionData, "customer_comments"),
		ContactPreference: stringField(submissionData, "contact_preference"),
		Address:           stringField(submissionData, "address"),
	}

	createCtx := ctx
	if createdBy != nil {
		createCtx = contextWithUserID(ctx, *createdBy)
	}

	// 4. Önce teklifi kalıcılaştır.
	if err := s.repo.Create(createCtx, offer); err != nil {
		configslog.Log.Error("Teklif oluşturulamadı", zap.Uint("customer_id", customer.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 5. Kalemleri tek tek dene; hata kısmi başarı olarak raporlanır.
	details, warnings := s.createDetails(createCtx, offer, submissionData, requirements)

	s.audit.Log(ctx, AuditEvent{
		Action:  AuditActionOfferCreated,
		OfferID: offer.ID,
		ActorID: createdBy,
		Details: map[string]interface{}{"offer_number": offer.OfferNumber, "detail_count": len(details)},
	})
	configslog.SLog.Infof("Teklif sentezlendi: %s (ID %d, %d kalem, %d uyarı)", offer.OfferNumber, offer.ID, len(details), len(warnings))

	return &SynthesisResult{Offer: offer, Details: details, Warnings: warnings}, nil
}

// createDetails hizmet kalemlerini OfferDetail satırlarına çevirir.
// Kalem listesi yoksa serbest metin gereksinimden tek kalem türetilir.
func (s *OfferService) createDetails(ctx context.Context, offer *models.Offer, submissionData models.JSONMap, requirements string) ([]models.OfferDetail, []string) {
	var details []models.OfferDetail
	var warnings []string

	entries, _ := submissionData["service_entries"].([]interface{})
	for i, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			warnings = append(warnings, fmt.Sprintf("hizmet kalemi %d beklenen yapıda değil, atlandı", i+1))
			continue
		}
		description := strings.TrimSpace(stringField(entry, "description"))
		if description == "" {
			warnings = append(warnings, fmt.Sprintf("hizmet kalemi %d açıklama içermiyor, atlandı", i+1))
			continue
		}
		detail := models.OfferDetail{
			OfferID:     offer.ID,
			Description: description,
			Quantity:    intField(entry, "quantity", 1),
			UnitPrice:   floatField(entry, "unit_price"),
		}
		if err := s.repo.CreateDetail(ctx, &detail); err != nil {
			configslog.Log.Error("Teklif kalemi oluşturulamadı, atlanıyor",
				zap.Uint("offer_id", offer.ID), zap.Int("entry", i+1), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("hizmet kalemi %d kaydedilemedi", i+1))
			continue
		}
		details = append(details, detail)
	}

	if len(entries) == 0 {
		detail := models.OfferDetail{
			OfferID:     offer.ID,
			Description: requirements,
			Quantity:    1,
		}
		if err := s.repo.CreateDetail(ctx, &detail); err != nil {
			configslog.Log.Error("Varsayılan teklif kalemi oluşturulamadı",
				zap.Uint("offer_id", offer.ID), zap.Error(err))
			warnings = append(warnings, "varsayılan teklif kalemi kaydedilemedi")
		} else {
			details = append(details, detail)
		}
	}

	return details, warnings
}

// generateUniqueOfferNumber TKF-yyyymmdd-XXXX formatında benzersiz numara
// üretir. Deneme sayısı sınırlıdır; tükenirse CollisionExhausted döner.
func (s *OfferService) generateUniqueOfferNumber(ctx context.Context) (string, error) {
	datePart := time.Now().UTC().Format("20060102")
	for attempt := 1; attempt <= maxOfferNumberAttempts; attempt++ {
		suffix, err := randomOfferSuffix()
		if err != nil {
			return "", fmt.Errorf("%w: teklif numarası üretilemedi: %v", ErrPersistence, err)
		}
		offerNumber := fmt.Sprintf("%s-%s-%s", offerNumberPrefix, datePart, suffix)
		exists, err := s.repo.OfferNumberExists(ctx, offerNumber)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !exists {
			return offerNumber, nil
		}
		configslog.SLog.Warnf("Teklif numarası çakışması (%d/%d deneme), yeniden üretiliyor.", attempt, maxOfferNumberAttempts)
	}
	return "", ErrCollisionExhausted
}

// deriveOfferTitle gereksinim metninden kısaltılmış başlık türetir.
func deriveOfferTitle(requirements string) string {
	runes := []rune(requirements)
	if len(runes) <= offerTitleMaxLength {
		return requirements
	}
	return strings.TrimSpace(string(runes[:offerTitleMaxLength])) + "..."
}

func randomOfferSuffix() (string, error) {
	buf := make([]byte, offerNumberRandomLength)
	alphabetSize := big.NewInt(int64(len(offerNumberAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = offerNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// --- Payload alan yardımcıları ---

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intField(m map[string]interface{}, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64: // JSON sayıları float64 gelir
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return fallback
}

func floatField(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

var _ IOfferService = (*OfferService)(nil)
