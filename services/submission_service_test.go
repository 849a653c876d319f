package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"teklif.link/models"

	"github.com/stretchr/testify/require"
)

func newSubmissionFixture(t *testing.T) (*fakeFormLinkRepo, *models.FormLink, ISubmissionService, *recordingNotifier, *recordingAuditLogger) {
	t.Helper()
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(time.Hour))
	notifier := &recordingNotifier{}
	audit := &recordingAuditLogger{}
	svc := NewSubmissionService(repo, NewFormLinkValidationService(repo), notifier, audit)
	return repo, link, svc, notifier, audit
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"requirements":      "Bahçe düzenlemesi ve sulama sistemi kurulumu",
		"customer_comments": "Hafta sonu aranmak istiyorum",
	}
}

func TestSubmitForm_HappyPath(t *testing.T) {
	_, link, svc, notifier, audit := newSubmissionFixture(t)

	updated, err := svc.SubmitForm(context.Background(), link.Token, validPayload())
	require.NoError(t, err)
	require.Equal(t, models.FormLinkStatusSubmitted, updated.Status)
	require.True(t, updated.IsUsed)
	require.NotNil(t, updated.SubmittedAt)
	require.Equal(t, "Bahçe düzenlemesi ve sulama sistemi kurulumu", updated.SubmissionData["requirements"])

	require.Equal(t, 1, notifier.submissions)
	require.Contains(t, audit.actions(), AuditActionLinkSubmitted)
}

func TestSubmitForm_SanitizesHTMLInPayload(t *testing.T) {
	_, link, svc, _, _ := newSubmissionFixture(t)

	payload := map[string]interface{}{
		"requirements": "<script>alert('x')</script>",
		"service_entries": []interface{}{
			map[string]interface{}{"description": "<b>Çim ekimi</b>", "quantity": float64(2)},
		},
	}
	updated, err := svc.SubmitForm(context.Background(), link.Token, payload)
	require.NoError(t, err)

	require.NotContains(t, updated.SubmissionData["requirements"], "<script>")
	entries := updated.SubmissionData["service_entries"].([]interface{})
	entry := entries[0].(map[string]interface{})
	require.NotContains(t, entry["description"], "<b>")
	require.Equal(t, float64(2), entry["quantity"], "string olmayan değerler dokunulmadan kalır")
}

func TestSubmitForm_RejectsUnknownFields(t *testing.T) {
	_, link, svc, notifier, _ := newSubmissionFixture(t)

	payload := validPayload()
	payload["admin_override"] = true

	_, err := svc.SubmitForm(context.Background(), link.Token, payload)
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, notifier.submissions, "geçersiz gönderim yan etki üretmemeli")
}

func TestSubmitForm_RejectsEmptyPayload(t *testing.T) {
	_, link, svc, _, _ := newSubmissionFixture(t)

	_, err := svc.SubmitForm(context.Background(), link.Token, map[string]interface{}{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSubmitForm_UnknownToken(t *testing.T) {
	_, _, svc, _, _ := newSubmissionFixture(t)

	_, err := svc.SubmitForm(context.Background(), "yanlistoken000000000000000000000", validPayload())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitForm_ExpiredLink(t *testing.T) {
	repo := newFakeFormLinkRepo()
	customer := testCustomer(1, "Acme A.Ş.")
	link := pendingLink(repo, customer, time.Now().UTC().Add(-time.Hour))
	svc := NewSubmissionService(repo, NewFormLinkValidationService(repo), &recordingNotifier{}, &recordingAuditLogger{})

	_, err := svc.SubmitForm(context.Background(), link.Token, validPayload())
	require.ErrorIs(t, err, ErrExpired)

	stored, findErr := repo.FindByID(context.Background(), link.ID)
	require.NoError(t, findErr)
	require.False(t, stored.IsUsed, "süresi dolmuş linke gönderim hiçbir şey yazmamalı")
}

// İkinci gönderim ilkinin verisini ezmemeli: link tek kullanımlıktır.
func TestSubmitForm_SecondSubmissionRejected(t *testing.T) {
	repo, link, svc, notifier, _ := newSubmissionFixture(t)

	first, err := svc.SubmitForm(context.Background(), link.Token, validPayload())
	require.NoError(t, err)

	_, err = svc.SubmitForm(context.Background(), link.Token, map[string]interface{}{
		"requirements": "Bambaşka bir talep",
	})
	require.ErrorIs(t, err, ErrAlreadyUsed)

	stored, findErr := repo.FindByID(context.Background(), link.ID)
	require.NoError(t, findErr)
	require.Equal(t, first.SubmissionData["requirements"], stored.SubmissionData["requirements"])
	require.Equal(t, 1, notifier.submissions)
}

// Aynı token'a eşzamanlı N gönderimden tam olarak biri başarılı olur;
// kaybedenler AlreadyUsed alır. Koşullu güncelleme bu garantiyi verir.
func TestSubmitForm_ConcurrentSubmissionsAtMostOnce(t *testing.T) {
	repo, link, svc, notifier, _ := newSubmissionFixture(t)

	const attempts = 20
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitForm(context.Background(), link.Token, validPayload())
		}(i)
	}
	wg.Wait()

	var successes, alreadyUsed int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrAlreadyUsed):
			alreadyUsed++
		default:
			t.Fatalf("beklenmeyen hata sınıfı: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, alreadyUsed)

	stored, err := repo.FindByID(context.Background(), link.ID)
	require.NoError(t, err)
	require.Equal(t, models.FormLinkStatusSubmitted, stored.Status)
	require.Equal(t, 1, notifier.submissions, "yalnızca kazanan gönderim bildirim üretir")
}
