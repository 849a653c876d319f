package services

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"teklif.link/configs"
	"teklif.link/models"

	"github.com/stretchr/testify/require"
)

var tokenFormat = regexp.MustCompile(`^[A-Za-z0-9]{32}$`)

func newTokenTestConfig() *configs.AppConfig {
	return &configs.AppConfig{
		BaseURL:                "https://teklif.example",
		DefaultExpirationHours: 72,
		ReferenceSecret:        "test-secret",
	}
}

func TestIssueFormLink_CreatesPendingLink(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	audit := &recordingAuditLogger{}
	svc := NewFormLinkTokenService(repo, customers, audit, newTokenTestConfig())

	before := time.Now().UTC()
	result, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{
		CustomerID:      1,
		ExpirationHours: 24,
	})
	require.NoError(t, err)
	require.NotNil(t, result.FormLink)

	link := result.FormLink
	require.Regexp(t, tokenFormat, link.Token)
	require.Equal(t, models.FormLinkStatusPending, link.Status)
	require.False(t, link.IsUsed)
	require.Equal(t, uint(1), link.CustomerID)

	// expiresAt ≈ now + 24 saat
	expected := before.Add(24 * time.Hour)
	require.WithinDuration(t, expected, link.ExpiresAt, 5*time.Second)

	require.Contains(t, result.PublicURL, "https://teklif.example/form/"+link.Token)
	require.Contains(t, result.PublicURL, "?ref="+link.CustomerReference)
	require.NotContains(t, result.PublicURL, "customer=")
	require.Empty(t, result.Warnings)
	require.Contains(t, audit.actions(), AuditActionLinkIssued)
}

func TestIssueFormLink_DefaultExpirationWhenUnset(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	svc := NewFormLinkTokenService(repo, customers, &recordingAuditLogger{}, newTokenTestConfig())

	before := time.Now().UTC()
	result, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{CustomerID: 1})
	require.NoError(t, err)
	require.WithinDuration(t, before.Add(72*time.Hour), result.FormLink.ExpiresAt, 5*time.Second)
}

func TestIssueFormLink_UnknownCustomer(t *testing.T) {
	svc := NewFormLinkTokenService(newFakeFormLinkRepo(), newFakeCustomerRepo(), &recordingAuditLogger{}, newTokenTestConfig())

	_, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{CustomerID: 42})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIssueFormLink_InvalidExternalProjectID(t *testing.T) {
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	svc := NewFormLinkTokenService(newFakeFormLinkRepo(), customers, &recordingAuditLogger{}, newTokenTestConfig())

	_, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{
		CustomerID:        1,
		ExternalProjectID: "bu-bir-uuid-degil",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestIssueFormLink_ValidExternalProjectID(t *testing.T) {
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	svc := NewFormLinkTokenService(newFakeFormLinkRepo(), customers, &recordingAuditLogger{}, newTokenTestConfig())

	result, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{
		CustomerID:        1,
		ExternalProjectID: "3b241101-e2bb-4255-8caf-4136c566a962",
	})
	require.NoError(t, err)
	require.NotNil(t, result.FormLink.ExternalProjectID)
	require.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", *result.FormLink.ExternalProjectID)
}

func TestIssueFormLink_CollisionExhausted(t *testing.T) {
	repo := newFakeFormLinkRepo()
	repo.tokenAlwaysExists = true
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	svc := NewFormLinkTokenService(repo, customers, &recordingAuditLogger{}, newTokenTestConfig())

	_, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{CustomerID: 1})
	require.ErrorIs(t, err, ErrCollisionExhausted)
	require.Empty(t, repo.links, "çakışma tükenince hiçbir kayıt yazılmamalı")
}

func TestIssueFormLink_DegradedURLWithoutSecret(t *testing.T) {
	cfg := newTokenTestConfig()
	cfg.ReferenceSecret = "" // obfuscation yapılamaz
	repo := newFakeFormLinkRepo()
	customers := newFakeCustomerRepo(testCustomer(7, "Acme A.Ş."))
	svc := NewFormLinkTokenService(repo, customers, &recordingAuditLogger{}, cfg)

	result, err := svc.IssueFormLink(context.Background(), IssueFormLinkInput{CustomerID: 7})
	require.NoError(t, err, "degraded mod hata değildir")
	require.Contains(t, result.PublicURL, "?customer=7")
	require.Empty(t, result.FormLink.CustomerReference)
	require.NotEmpty(t, result.Warnings)
}

func TestRandomToken_AlphabetAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := randomToken(models.FormLinkTokenLength)
		require.NoError(t, err)
		require.Regexp(t, tokenFormat, token)
		require.False(t, seen[token], "aynı token iki kez üretildi")
		seen[token] = true
	}
}

func TestRandomToken_NoPaddingCharacters(t *testing.T) {
	token, err := randomToken(models.FormLinkTokenLength)
	require.NoError(t, err)
	require.False(t, strings.ContainsAny(token, "=+/-_"))
}
