package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teklif.link/models"
	"teklif.link/repositories"
)

// ValidationReason geçersiz token'ın neden sınıfı. Boş string geçerli demektir.
type ValidationReason string

const (
	ValidationReasonNotFound         ValidationReason = "NotFound"
	ValidationReasonExpired          ValidationReason = "Expired"
	ValidationReasonAlreadyFinalized ValidationReason = "AlreadyFinalized"
)

// Err nedeni workflow hatasına çevirir.
func (r ValidationReason) Err() error {
	switch r {
	case ValidationReasonNotFound:
		return ErrNotFound
	case ValidationReasonExpired:
		return ErrExpired
	case ValidationReasonAlreadyFinalized:
		return ErrAlreadyFinalized
	default:
		return nil
	}
}

// ValidationResult bir token'ın o anki kullanılabilirlik sınıflandırması.
type ValidationResult struct {
	IsValid  bool
	Reason   ValidationReason
	FormLink *models.FormLink
	Customer *models.Customer
}

// IFormLinkValidationService token sınıflandırması için arayüz.
type IFormLinkValidationService interface {
	ValidateToken(ctx context.Context, token string) (*ValidationResult, error)
}

// FormLinkValidationService IFormLinkValidationService arayüzünü uygular.
// Salt okunurdur: tekrarlanan çağrılar hiçbir kaydı değiştirmez.
type FormLinkValidationService struct {
	repo repositories.IFormLinkRepository
}

// NewFormLinkValidationService yeni bir FormLinkValidationService örneği oluşturur.
func NewFormLinkValidationService(repo repositories.IFormLinkRepository) IFormLinkValidationService {
	return &FormLinkValidationService{repo: repo}
}

// ValidateToken token'ı sınıflandırır. Sıra gözlemlenebilir kontrattır:
//  1. Silinmemiş linkler arasında yoksa → NotFound
//  2. Süresi dolmuşsa → Expired (terminal durumda olsa bile)
//  3. Terminal durumdaysa → AlreadyFinalized
//  4. Aksi halde geçerli; link ve müşteri projeksiyonu döner.
//
// Süre kontrolü tembeldir: expiresAt'i geçen pending/submitted kayıtların
// status alanı değişmez, geçerlilik yalnızca burada değerlendirilir.
func (s *FormLinkValidationService) ValidateToken(ctx context.Context, token string) (*ValidationResult, error) {
	link, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ValidationResult{IsValid: false, Reason: ValidationReasonNotFound}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if link.IsExpired(time.Now().UTC()) {
		return &ValidationResult{IsValid: false, Reason: ValidationReasonExpired, FormLink: link}, nil
	}

	if link.IsFinalized() {
		return &ValidationResult{IsValid: false, Reason: ValidationReasonAlreadyFinalized, FormLink: link}, nil
	}

	return &ValidationResult{
		IsValid:  true,
		FormLink: link,
		Customer: &link.Customer,
	}, nil
}

var _ IFormLinkValidationService = (*FormLinkValidationService)(nil)
