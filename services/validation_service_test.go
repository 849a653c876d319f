package services

import (
	"context"
	"testing"
	"time"

	"teklif.link/models"

	"github.com/stretchr/testify/require"
)

func TestValidateToken_UnknownToken(t *testing.T) {
	svc := NewFormLinkValidationService(newFakeFormLinkRepo())

	result, err := svc.ValidateToken(context.Background(), "hicbiryerdeyokbutoken00000000000")
	require.NoError(t, err)
	require.False(t, result.IsValid)
	require.Equal(t, ValidationReasonNotFound, result.Reason)
	require.ErrorIs(t, result.Reason.Err(), ErrNotFound)
}

func TestValidateToken_Expired(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(-time.Hour))
	svc := NewFormLinkValidationService(repo)

	result, err := svc.ValidateToken(context.Background(), link.Token)
	require.NoError(t, err)
	require.False(t, result.IsValid)
	require.Equal(t, ValidationReasonExpired, result.Reason)
	require.ErrorIs(t, result.Reason.Err(), ErrExpired)
}

// Süresi dolmuş bir link terminal durumda olsa bile Expired sınıfı kazanır;
// sınıflandırma sırası dış kontrattır.
func TestValidateToken_ExpiredWinsOverFinalized(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(-time.Hour))
	link.Status = models.FormLinkStatusApproved
	svc := NewFormLinkValidationService(repo)

	result, err := svc.ValidateToken(context.Background(), link.Token)
	require.NoError(t, err)
	require.Equal(t, ValidationReasonExpired, result.Reason)
}

func TestValidateToken_Finalized(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	for _, status := range []models.FormLinkStatus{models.FormLinkStatusApproved, models.FormLinkStatusRejected} {
		link := pendingLink(repo, customer, time.Now().UTC().Add(time.Hour))
		link.Status = status
		svc := NewFormLinkValidationService(repo)

		result, err := svc.ValidateToken(context.Background(), link.Token)
		require.NoError(t, err)
		require.False(t, result.IsValid)
		require.Equal(t, ValidationReasonAlreadyFinalized, result.Reason)
		require.ErrorIs(t, result.Reason.Err(), ErrAlreadyFinalized)
	}
}

func TestValidateToken_Valid(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(time.Hour))
	svc := NewFormLinkValidationService(repo)

	result, err := svc.ValidateToken(context.Background(), link.Token)
	require.NoError(t, err)
	require.True(t, result.IsValid)
	require.Empty(t, result.Reason)
	require.NotNil(t, result.FormLink)
	require.NotNil(t, result.Customer)
	require.Equal(t, "Acme A.Ş.", result.Customer.Name)
}

// Doğrulama salt okunurdur: tekrarlanan çağrılar kaydı değiştirmez.
func TestValidateToken_Idempotent(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(time.Hour))
	svc := NewFormLinkValidationService(repo)

	for i := 0; i < 3; i++ {
		result, err := svc.ValidateToken(context.Background(), link.Token)
		require.NoError(t, err)
		require.True(t, result.IsValid)
	}

	stored, err := repo.FindByID(context.Background(), link.ID)
	require.NoError(t, err)
	require.Equal(t, models.FormLinkStatusPending, stored.Status)
	require.False(t, stored.IsUsed)
}

// Tembel süre kontrolü: süresi geçen kaydın status alanı pending kalır,
// geçerlilik yalnızca okuma anında değerlendirilir.
func TestValidateToken_LazyExpiryDoesNotMutateStatus(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(-time.Minute))
	svc := NewFormLinkValidationService(repo)

	_, err := svc.ValidateToken(context.Background(), link.Token)
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), link.ID)
	require.NoError(t, err)
	require.Equal(t, models.FormLinkStatusPending, stored.Status)
}
