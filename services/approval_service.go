package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/repositories"

	"go.uber.org/zap"
)

// ApprovalAction personelin verebileceği kararlar.
type ApprovalAction string

const (
	ApprovalActionApprove ApprovalAction = "approve"
	ApprovalActionReject  ApprovalAction = "reject"
)

// DecideInput onay/ret kararının parametreleri.
type DecideInput struct {
	FormLinkID  uint
	ApproverID  uint
	Action      ApprovalAction
	Notes       string
	CreateOffer bool
}

// ApprovalResult kararın sonucu. Offer yalnızca onay + CreateOffer ile dolar;
// sentez hatası onayı geri almaz, Warnings içinde raporlanır.
type ApprovalResult struct {
	FormLink *models.FormLink
	Offer    *models.Offer
	Details  []models.OfferDetail
	Warnings []string
}

// IApprovalService karar workflow'u için arayüz.
type IApprovalService interface {
	Decide(ctx context.Context, input DecideInput) (*ApprovalResult, error)
}

// ApprovalService IApprovalService arayüzünü uygular.
type ApprovalService struct {
	repo         repositories.IFormLinkRepository
	userRepo     repositories.IUserRepository
	offerService IOfferService
	notifier     INotificationEmitter
	audit        IAuditLogger
}

// NewApprovalService yeni bir ApprovalService örneği oluşturur.
func NewApprovalService(
	repo repositories.IFormLinkRepository,
	userRepo repositories.IUserRepository,
	offerService IOfferService,
	notifier INotificationEmitter,
	audit IAuditLogger,
) IApprovalService {
	return &ApprovalService{repo: repo, userRepo: userRepo, offerService: offerService, notifier: notifier, audit: audit}
}

// Decide submitted durumdaki bir gönderimi terminal duruma taşır.
// Geçiş status=submitted koşuluyla yazılır: aynı linke yarışan iki
// onaycıdan ilk yazan kazanır, ikincisi InvalidStateTransition alır.
func (s *ApprovalService) Decide(ctx context.Context, input DecideInput) (*ApprovalResult, error) {
	// 1. Linki yükle; yalnızca submitted karar bekler.
	link, err := s.repo.FindByID(ctx, input.FormLinkID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if link.Status != models.FormLinkStatusSubmitted {
		return nil, ErrInvalidStateTransition
	}

	// 2. Karar veren yetkili olmalı; readonly roller karar veremez.
	approver, err := s.userRepo.FindByID(ctx, input.ApproverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !approver.IsEnabled || !approver.CanDecide() {
		configslog.Log.Warn("Yetkisiz karar denemesi",
			zap.Uint("form_link_id", link.ID), zap.Uint("approver_id", approver.ID), zap.String("role", string(approver.Role)))
		return nil, ErrPermissionDenied
	}

	// 3. Aksiyon doğrulaması: ret gerekçesiz olamaz, onay not istemez.
	notes := strings.TrimSpace(input.Notes)
	switch input.Action {
	case ApprovalActionApprove:
		// notlar opsiyonel
	case ApprovalActionReject:
		if notes == "" {
			return nil, fmt.Errorf("%w: ret gerekçesi zorunludur", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: bilinmeyen aksiyon %q", ErrValidation, input.Action)
	}

	// 4. Terminal geçişi koşullu yaz. approvedBy/approvedAt yalnızca onayda.
	now := time.Now().UTC()
	fields := map[string]interface{}{"notes": notes}
	var auditAction string
	if input.Action == ApprovalActionApprove {
		fields["status"] = models.FormLinkStatusApproved
		fields["approved_by"] = approver.ID
		fields["approved_at"] = now
		auditAction = AuditActionLinkApproved
	} else {
		fields["status"] = models.FormLinkStatusRejected
		auditAction = AuditActionLinkRejected
	}

	if err := s.repo.MarkDecided(ctx, link.ID, approver.ID, fields); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStateConflict):
			// Yarışı kaybettik: başka bir onaycı önce karar verdi.
			return nil, ErrInvalidStateTransition
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		default:
			configslog.Log.Error("Karar kaydedilemedi", zap.Uint("form_link_id", link.ID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	updated, err := s.repo.FindByID(ctx, link.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	approverID := approver.ID
	s.audit.Log(ctx, AuditEvent{
		Action:     auditAction,
		FormLinkID: updated.ID,
		ActorID:    &approverID,
		Details:    map[string]interface{}{"notes": notes},
	})
	s.notifier.NotifyDecisionMade(ctx, updated)

	result := &ApprovalResult{FormLink: updated}

	// 5. Onay + istek varsa teklifi senkron sentezle. Sentez hatası onayı
	// geri almaz: onay kesinleşmiştir, hata uyarı olarak raporlanır.
	if input.Action == ApprovalActionApprove && input.CreateOffer {
		synthesis, synthErr := s.offerService.SynthesizeOffer(ctx, updated.SubmissionData, updated.CustomerID, &approverID)
		if synthErr != nil {
			configslog.Log.Error("Onay sonrası teklif sentezi başarısız, onay geçerli kalıyor",
				zap.Uint("form_link_id", updated.ID), zap.Error(synthErr))
			result.Warnings = append(result.Warnings, "teklif sentezi başarısız: "+ErrorMessage(synthErr))
		} else {
			result.Offer = synthesis.Offer
			result.Details = synthesis.Details
			result.Warnings = append(result.Warnings, synthesis.Warnings...)
		}
	}

	configslog.SLog.Infof("Karar verildi: Link ID %d → %s (Karar veren: %d)", updated.ID, updated.Status, approver.ID)
	return result, nil
}

var _ IApprovalService = (*ApprovalService)(nil)
