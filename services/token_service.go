package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
)

// DefaultIssuer, token'ların "iss" claim'i.
const DefaultIssuer = "example-app"

// TokenConfig, TokenIssuer ayarları.
// Access ve refresh token'lar farklı secret'larla imzalanır: biri diğerinin
// yerine kullanılamaz.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenIssuer, HS256 access/refresh token çiftini üretir ve doğrular.
//
// Tamamen stateless'tır: sunucu tarafında oturum tutulmaz, doğrulama sadece
// imza + süre kontrolüdür. Goroutine-safe (ilk kurulumdan sonra değişmez).
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenIssuer, ayarları doğrular. Boş secret veya pozitif olmayan süre
// başlangıç hatasıdır.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}

	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}, nil
}

// SetClock, zaman kaynağını değiştirir (testler için).
func (i *TokenIssuer) SetClock(now func() time.Time) {
	i.now = now
}

// Issue, kullanıcı için yeni bir access + refresh çifti üretir.
// İki token da aynı {id, username} kimliğini taşır; her birinin jti'si farklıdır.
func (i *TokenIssuer) Issue(user *models.User) (*models.TokenPair, error) {
	now := i.now()

	access, err := i.sign(user, now, i.accessTTL, i.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := i.sign(user, now, i.refreshTTL, i.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPair{Token: access, RefreshToken: refresh}, nil
}

// ParseAccess, access token'ın imzasını ve süresini doğrular.
// Her doğrulama hatası pkg.ErrForbidden ile wrap edilir.
func (i *TokenIssuer) ParseAccess(token string) (*models.TokenClaims, error) {
	return i.parse(token, i.accessSecret)
}

// ParseRefresh, refresh token'ı refresh secret'ıyla doğrular.
func (i *TokenIssuer) ParseRefresh(token string) (*models.TokenClaims, error) {
	return i.parse(token, i.refreshSecret)
}

func (i *TokenIssuer) sign(user *models.User, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := &models.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   models.Subject(user.ID),
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *TokenIssuer) parse(tokenString string, secret []byte) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}

	// Sadece HMAC kabul edilir: "alg: none" veya RSA public key karışıklığı reddedilir.
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", pkg.ErrForbidden)
		}
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrForbidden)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrForbidden)
	}

	return claims, nil
}
