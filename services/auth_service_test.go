package services

import (
	"context"
	"testing"

	"teklif.link/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T, enabled bool) (IAuthService, *models.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("dogru-sifre"), bcrypt.MinCost)
	require.NoError(t, err)

	user := testUser(1, models.UserRoleStaff, enabled)
	user.Email = "personel@example.com"
	user.PasswordHash = string(hash)
	return NewAuthService(newFakeUserRepo(user)), user
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	user, err := svc.Authenticate(context.Background(), "personel@example.com", "dogru-sifre")
	require.NoError(t, err)
	require.Equal(t, uint(1), user.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Authenticate(context.Background(), "personel@example.com", "yanlis-sifre")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Kullanıcı yok ile şifre yanlış aynı hatayı döndürür (enumeration önlemi).
func TestAuthenticate_UnknownUserSameError(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Authenticate(context.Background(), "yok@example.com", "dogru-sifre")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_DisabledUser(t *testing.T) {
	svc, _ := newAuthFixture(t, false)

	_, err := svc.Authenticate(context.Background(), "personel@example.com", "dogru-sifre")
	require.ErrorIs(t, err, ErrUserDisabled)
}

func TestAuthenticate_EmptyInputs(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Authenticate(context.Background(), "", "dogru-sifre")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "personel@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
