package services

import (
	"context"
	"errors"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError kimlik doğrulama hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrUserDisabled       AuthServiceError = "kullanıcı hesabı devre dışı"
)

// IAuthService panel girişi için arayüz.
type IAuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService(userRepo repositories.IUserRepository) IAuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate e-posta ve şifreyle kullanıcıyı doğrular.
// Kullanıcı yok ile şifre yanlış aynı hatayı döndürür (enumeration önlemi).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEnabled {
		configslog.Log.Warn("Devre dışı kullanıcı giriş denemesi", zap.Uint("user_id", user.ID))
		return nil, ErrUserDisabled
	}

	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
