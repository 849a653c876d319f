package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"teklif.link/models"

	"github.com/stretchr/testify/require"
)

var (
	offerNumberFormat = regexp.MustCompile(`^TKF-\d{8}-[A-HJ-NP-Z2-9]{4}$`)
	errDetailWrite    = errors.New("kalem yazılamadı")
)

func newOfferFixture() (*fakeOfferRepo, IOfferService, *recordingAuditLogger) {
	offerRepo := newFakeOfferRepo()
	customers := newFakeCustomerRepo(testCustomer(1, "Acme A.Ş."))
	audit := &recordingAuditLogger{}
	return offerRepo, NewOfferService(offerRepo, customers, audit), audit
}

func TestSynthesizeOffer_MapsFields(t *testing.T) {
	offerRepo, svc, audit := newOfferFixture()

	data := models.JSONMap{
		"requirements":       "Bahçe düzenlemesi ve sulama sistemi kurulumu",
		"customer_comments":  "Mümkünse nisan ayında",
		"contact_preference": "telefon",
		"address":            "Örnek Mah. İstanbul",
		"service_entries": []interface{}{
			map[string]interface{}{"description": "Çim ekimi", "quantity": float64(3), "unit_price": float64(1500.50)},
			map[string]interface{}{"description": "Damla sulama", "quantity": float64(1), "unit_price": float64(8000)},
		},
	}

	approver := uint(10)
	result, err := svc.SynthesizeOffer(context.Background(), data, 1, &approver)
	require.NoError(t, err)
	require.Empty(t, result.Warnings)

	offer := result.Offer
	require.Regexp(t, offerNumberFormat, offer.OfferNumber)
	require.Equal(t, uint(1), offer.CustomerID)
	require.Equal(t, "Bahçe düzenlemesi ve sulama sistemi kurulumu", offer.Requirements)
	require.Equal(t, "Mümkünse nisan ayında", offer.Comments)
	require.Equal(t, "telefon", offer.ContactPreference)
	require.Equal(t, "Örnek Mah. İstanbul", offer.Address)

	require.Len(t, result.Details, 2)
	require.Equal(t, "Çim ekimi", result.Details[0].Description)
	require.Equal(t, 3, result.Details[0].Quantity)
	require.InDelta(t, 1500.50, result.Details[0].UnitPrice, 0.001)
	require.Len(t, offerRepo.details, 2)
	require.Contains(t, audit.actions(), AuditActionOfferCreated)
}

func TestSynthesizeOffer_RequirementsMandatory(t *testing.T) {
	_, svc, _ := newOfferFixture()

	approver := uint(10)
	_, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": "   "}, 1, &approver)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSynthesizeOffer_UnknownCustomer(t *testing.T) {
	_, svc, _ := newOfferFixture()

	_, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": "Çatı onarımı"}, 42, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSynthesizeOffer_TitleTruncation(t *testing.T) {
	_, svc, _ := newOfferFixture()

	long := strings.Repeat("çok uzun gereksinim metni ", 10)
	result, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": long}, 1, nil)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.Offer.Title, "..."))
	require.LessOrEqual(t, len([]rune(result.Offer.Title)), offerTitleMaxLength+3)
}

func TestSynthesizeOffer_ShortTitleKeptIntact(t *testing.T) {
	_, svc, _ := newOfferFixture()

	result, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": "Çatı onarımı"}, 1, nil)
	require.NoError(t, err)
	require.Equal(t, "Çatı onarımı", result.Offer.Title)
}

// Kalem listesi yoksa serbest metin gereksinimden tek kalem türetilir.
func TestSynthesizeOffer_FallbackDetail(t *testing.T) {
	_, svc, _ := newOfferFixture()

	result, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": "Çatı onarımı"}, 1, nil)
	require.NoError(t, err)
	require.Len(t, result.Details, 1)
	require.Equal(t, "Çatı onarımı", result.Details[0].Description)
	require.Equal(t, 1, result.Details[0].Quantity)
}

// Bozuk kalemler teklifi iptal etmez; uyarıyla atlanır.
func TestSynthesizeOffer_SkipsMalformedEntries(t *testing.T) {
	_, svc, _ := newOfferFixture()

	data := models.JSONMap{
		"requirements": "Bahçe düzenlemesi",
		"service_entries": []interface{}{
			"bu bir map değil",
			map[string]interface{}{"quantity": float64(2)}, // açıklama yok
			map[string]interface{}{"description": "Çim ekimi"},
		},
	}
	result, err := svc.SynthesizeOffer(context.Background(), data, 1, nil)
	require.NoError(t, err)
	require.Len(t, result.Details, 1)
	require.Len(t, result.Warnings, 2)
}

func TestSynthesizeOffer_DetailPersistFailureIsPartial(t *testing.T) {
	offerRepo, svc, _ := newOfferFixture()
	offerRepo.createDetailErr = errDetailWrite

	data := models.JSONMap{
		"requirements": "Bahçe düzenlemesi",
		"service_entries": []interface{}{
			map[string]interface{}{"description": "Çim ekimi"},
		},
	}
	result, err := svc.SynthesizeOffer(context.Background(), data, 1, nil)
	require.NoError(t, err, "kalem hatası teklifi geri almaz")
	require.NotNil(t, result.Offer)
	require.Empty(t, result.Details)
	require.NotEmpty(t, result.Warnings)
}

func TestSynthesizeOffer_NumberCollisionExhausted(t *testing.T) {
	offerRepo, svc, _ := newOfferFixture()
	offerRepo.numberAlwaysExists = true

	_, err := svc.SynthesizeOffer(context.Background(), models.JSONMap{"requirements": "Çatı onarımı"}, 1, nil)
	require.ErrorIs(t, err, ErrCollisionExhausted)
}

func TestSynthesizeOffer_InvalidQuantityFallsBackToOne(t *testing.T) {
	_, svc, _ := newOfferFixture()

	data := models.JSONMap{
		"requirements": "Bahçe düzenlemesi",
		"service_entries": []interface{}{
			map[string]interface{}{"description": "Çim ekimi", "quantity": float64(-5)},
		},
	}
	result, err := svc.SynthesizeOffer(context.Background(), data, 1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Details[0].Quantity)
}
