package services

import (
	"context"
	"errors"

	"teklif.link/models"
)

// WorkflowError form linki workflow'unun hata sınıflandırması. Mesaj metni
// gözlemlenebilir kontratın parçasıdır: handler'lar bu metni response
// envelope'unun error alanına olduğu gibi yazar, dış sistemler ve testler
// buna göre davranır.
type WorkflowError string

func (e WorkflowError) Error() string { return string(e) }

const (
	ErrNotFound               WorkflowError = "NotFound"
	ErrExpired                WorkflowError = "Expired"
	ErrAlreadyUsed            WorkflowError = "AlreadyUsed"
	ErrAlreadyFinalized       WorkflowError = "AlreadyFinalized"
	ErrInvalidStateTransition WorkflowError = "InvalidStateTransition"
	ErrPermissionDenied       WorkflowError = "PermissionDenied"
	ErrValidation             WorkflowError = "ValidationError"
	ErrPersistence            WorkflowError = "PersistenceError"
	ErrCollisionExhausted     WorkflowError = "CollisionExhausted"
)

// ErrorMessage hatanın envelope'a yazılacak sınıf metnini döndürür.
// Zincirde WorkflowError varsa detaylar değil sınıf adı dışarı çıkar.
func ErrorMessage(err error) string {
	var we WorkflowError
	if errors.As(err, &we) {
		return string(we)
	}
	return err.Error()
}

// contextWithUserID işlemi yapan kullanıcıyı BaseModel hook'ları için
// context'e ekler.
func contextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, models.ContextUserIDKey, userID)
}
