package services

import (
	"context"

	"go.uber.org/zap"
)

// Audit aksiyonları: her durum geçişi için bir kayıt düşülür.
const (
	AuditActionLinkIssued    = "form_link.issued"
	AuditActionLinkSubmitted = "form_link.submitted"
	AuditActionLinkApproved  = "form_link.approved"
	AuditActionLinkRejected  = "form_link.rejected"
	AuditActionLinkVerified  = "form_link.verified"
	AuditActionLinkDeleted   = "form_link.deleted"
	AuditActionOfferCreated  = "offer.created"
)

// AuditEvent denetim kaydına düşülen tek bir olay.
type AuditEvent struct {
	Action     string
	FormLinkID uint
	OfferID    uint
	ActorID    *uint
	Details    map[string]interface{}
}

// IAuditLogger denetim kayıtları için dar collaborator arayüzü.
// Global singleton yerine her servise constructor'dan verilir.
// Emisyon best-effort'tur: audit hatası ana işlemi asla bozmaz,
// bu yüzden hata döndürmez.
type IAuditLogger interface {
	Log(ctx context.Context, event AuditEvent)
}

// ZapAuditLogger denetim olaylarını yapılandırılmış log olarak yazar.
type ZapAuditLogger struct {
	log *zap.Logger
}

// NewZapAuditLogger yeni bir ZapAuditLogger örneği oluşturur.
func NewZapAuditLogger(log *zap.Logger) IAuditLogger {
	return &ZapAuditLogger{log: log}
}

// Log olayı audit alanlarıyla loglar.
func (a *ZapAuditLogger) Log(_ context.Context, event AuditEvent) {
	fields := []zap.Field{
		zap.String("audit_action", event.Action),
		zap.Uint("form_link_id", event.FormLinkID),
	}
	if event.OfferID != 0 {
		fields = append(fields, zap.Uint("offer_id", event.OfferID))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.Uintp("actor_id", event.ActorID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	a.log.Info("audit", fields...)
}

var _ IAuditLogger = (*ZapAuditLogger)(nil)
