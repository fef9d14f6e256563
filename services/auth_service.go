// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturur. Service ASLA
// http.Request/Response bilmez, doğrudan SQL çalıştırmaz: sadece domain
// modelleri alır/verir ve repository interface'lerini kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/pkg/metrics"
	"github.com/tiersept/example-app/repository"
)

// InvalidCredentials, login başarısızlığında client'a dönen tek mesaj.
// Kullanıcı yok / şifre yanlış ayrımı dışarı sızdırılmaz.
const InvalidCredentials = "Invalid credentials"

// AuthService interface'i: handler ve middleware buna bağımlıdır.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	ValidateAccessToken(token string) (*models.TokenClaims, error)
}

type authService struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
	metrics  *metrics.Metrics
}

// NewAuthService, constructor. m nil olabilir (metrik toplanmaz).
func NewAuthService(userRepo repository.UserRepository, issuer *TokenIssuer, m *metrics.Metrics) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		metrics:  m,
	}
}

// Login, credential'ları doğrular ve yeni bir token çifti üretir.
//
// Boş alan, bilinmeyen kullanıcı ve yanlış şifre aynı sonucu verir:
// pkg.ErrUnauthorized ("Invalid credentials").
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	req.Normalize()
	if req.Empty() {
		s.metrics.LoginFailed()
		return nil, fmt.Errorf("%w: %s", pkg.ErrUnauthorized, InvalidCredentials)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			s.metrics.LoginFailed()
			return nil, fmt.Errorf("%w: %s", pkg.ErrUnauthorized, InvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.LoginFailed()
		return nil, fmt.Errorf("%w: %s", pkg.ErrUnauthorized, InvalidCredentials)
	}

	pair, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.metrics.TokensIssued(metrics.IssueLogin)
	return pair, nil
}

// Refresh, geçerli bir refresh token'dan yeni bir çift türetir.
//
// Veritabanına gidilmez: kimlik refresh token'ın claim'lerinden gelir.
// Eski refresh token süresi dolana kadar geçerli kalır; sunucu tarafında
// iptal listesi yoktur.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token required", pkg.ErrUnauthorized)
	}

	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		log.Printf("[auth] refresh rejected: %v", err)
		return nil, err
	}

	pair, err := s.issuer.Issue(&models.User{ID: claims.UserID, Username: claims.Username})
	if err != nil {
		return nil, err
	}

	s.metrics.TokensIssued(metrics.IssueRefresh)
	return pair, nil
}

// ValidateAccessToken, access token'ı doğrular. Hata her zaman pkg.ErrForbidden'dır.
func (s *authService) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	return s.issuer.ParseAccess(token)
}
