package services

import (
	"context"

	"teklif.link/models"

	"go.uber.org/zap"
)

// INotificationEmitter gönderim ve karar anlarında ilgili personeli
// bilgilendiren dar collaborator arayüzü. Emisyon best-effort'tur;
// bildirim hatası ana işlemi bozmaz.
type INotificationEmitter interface {
	NotifySubmissionReceived(ctx context.Context, link *models.FormLink)
	NotifyDecisionMade(ctx context.Context, link *models.FormLink)
}

// LogNotificationEmitter bildirimleri log'a yazar. Gerçek e-posta/webhook
// dağıtımı dış sistemin işidir; bu implementasyon olay akışını görünür tutar.
type LogNotificationEmitter struct {
	log *zap.Logger
}

// NewLogNotificationEmitter yeni bir LogNotificationEmitter örneği oluşturur.
func NewLogNotificationEmitter(log *zap.Logger) INotificationEmitter {
	return &LogNotificationEmitter{log: log}
}

func (n *LogNotificationEmitter) NotifySubmissionReceived(_ context.Context, link *models.FormLink) {
	n.log.Info("Bildirim: form gönderimi alındı",
		zap.Uint("form_link_id", link.ID),
		zap.Uint("customer_id", link.CustomerID),
	)
}

func (n *LogNotificationEmitter) NotifyDecisionMade(_ context.Context, link *models.FormLink) {
	n.log.Info("Bildirim: form gönderimi karara bağlandı",
		zap.Uint("form_link_id", link.ID),
		zap.String("status", string(link.Status)),
	)
}

var _ INotificationEmitter = (*LogNotificationEmitter)(nil)
