package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"teklif.link/configs"
	"teklif.link/models"
	"teklif.link/pkg/obfuscate"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("bu sorgu hiç çalışmamalıydı")

func newVerificationFixture(t *testing.T) (*fakeFormLinkRepo, *models.FormLink, IVerificationService, *configs.AppConfig) {
	t.Helper()
	repo := newFakeFormLinkRepo()
	customer := testCustomer(5, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(time.Hour))

	reference, err := obfuscate.CustomerReference("test-secret", customer.ID)
	require.NoError(t, err)
	link.CustomerReference = reference

	cfg := &configs.AppConfig{
		ReferenceSecret:     "test-secret",
		VerificationAPIKeys: []string{"gecerli-anahtar"},
	}
	svc := NewVerificationService(NewFormLinkValidationService(repo), &recordingAuditLogger{}, cfg)
	return repo, link, svc, cfg
}

func TestVerifyToken_ValidKeyAndToken(t *testing.T) {
	_, link, svc, _ := newVerificationFixture(t)

	data, err := svc.VerifyToken(context.Background(), link.Token, "gecerli-anahtar")
	require.NoError(t, err)
	require.Equal(t, link.ID, data.FormLinkID)
	require.Equal(t, link.CustomerReference, data.CustomerReference)
	require.Equal(t, "Acme A.Ş.", data.CustomerName)
	require.Equal(t, models.FormLinkStatusPending, data.Status)
}

// Anahtar kontrolü token lookup'tan önce gelir (fails closed): geçersiz
// anahtarla token'ın varlığı dahi sızdırılmaz.
func TestVerifyToken_InvalidKeyRejectedBeforeLookup(t *testing.T) {
	repo, link, svc, _ := newVerificationFixture(t)
	repo.findErr = errBoom // lookup yapılırsa test patlar

	_, err := svc.VerifyToken(context.Background(), link.Token, "yanlis-anahtar")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestVerifyToken_EmptyKeyRejected(t *testing.T) {
	_, link, svc, _ := newVerificationFixture(t)

	_, err := svc.VerifyToken(context.Background(), link.Token, "")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestVerifyToken_NoKeysConfiguredRejectsAll(t *testing.T) {
	_, link, svc, cfg := newVerificationFixture(t)
	cfg.VerificationAPIKeys = nil

	_, err := svc.VerifyToken(context.Background(), link.Token, "gecerli-anahtar")
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestVerifyToken_ClassificationErrorsPropagate(t *testing.T) {
	repo, _, svc, _ := newVerificationFixture(t)

	_, err := svc.VerifyToken(context.Background(), "boyletokenyok0000000000000000000", "gecerli-anahtar")
	require.ErrorIs(t, err, ErrNotFound)

	customer := testCustomer(5, "Acme A.Ş.")
	expired := pendingLink(repo, customer, time.Now().UTC().Add(-time.Hour))
	_, err = svc.VerifyToken(context.Background(), expired.Token, "gecerli-anahtar")
	require.ErrorIs(t, err, ErrExpired)
}

// Projeksiyon kimliksizleştirilmiştir: ham müşteri ID'si dışarı çıkmaz.
func TestVerifyToken_ProjectionOmitsRawCustomerID(t *testing.T) {
	_, link, svc, _ := newVerificationFixture(t)

	data, err := svc.VerifyToken(context.Background(), link.Token, "gecerli-anahtar")
	require.NoError(t, err)
	require.NotEqual(t, "5", data.CustomerReference)
	require.Len(t, data.CustomerReference, obfuscate.ReferenceLength)
	require.NotContains(t, data.Metadata, "customerId")
}

// Degraded modda üretilmiş linkin referansı doğrulama anında yeniden türetilir.
func TestVerifyToken_RederivesMissingReference(t *testing.T) {
	_, link, svc, _ := newVerificationFixture(t)
	link.CustomerReference = ""

	data, err := svc.VerifyToken(context.Background(), link.Token, "gecerli-anahtar")
	require.NoError(t, err)

	expected, refErr := obfuscate.CustomerReference("test-secret", link.CustomerID)
	require.NoError(t, refErr)
	require.Equal(t, expected, data.CustomerReference)
}

func TestVerifyToken_MetadataCarriesExternalProjectID(t *testing.T) {
	_, link, svc, _ := newVerificationFixture(t)
	projectID := "3b241101-e2bb-4255-8caf-4136c566a962"
	link.ExternalProjectID = &projectID

	data, err := svc.VerifyToken(context.Background(), link.Token, "gecerli-anahtar")
	require.NoError(t, err)
	require.Equal(t, projectID, data.Metadata["externalProjectId"])
}
