package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Hata sınıf adları dış kontrattır; envelope'a olduğu gibi yazılırlar.
func TestWorkflowErrorMessages(t *testing.T) {
	cases := map[WorkflowError]string{
		ErrNotFound:               "NotFound",
		ErrExpired:                "Expired",
		ErrAlreadyUsed:            "AlreadyUsed",
		ErrAlreadyFinalized:       "AlreadyFinalized",
		ErrInvalidStateTransition: "InvalidStateTransition",
		ErrPermissionDenied:       "PermissionDenied",
		ErrValidation:             "ValidationError",
		ErrPersistence:            "PersistenceError",
		ErrCollisionExhausted:     "CollisionExhausted",
	}
	for err, expected := range cases {
		require.Equal(t, expected, err.Error())
	}
}

// Sarılmış hatalardan sınıf adı çıkar, detay metni dışarı sızmaz.
func TestErrorMessage_UnwrapsWorkflowError(t *testing.T) {
	wrapped := fmt.Errorf("%w: bilinmeyen alan %q", ErrValidation, "admin_override")
	require.Equal(t, "ValidationError", ErrorMessage(wrapped))
	require.True(t, errors.Is(wrapped, ErrValidation))
}

func TestErrorMessage_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("başka bir hata")
	require.Equal(t, "başka bir hata", ErrorMessage(plain))
}
