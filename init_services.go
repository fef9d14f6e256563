// Package main: Service katmanı başlatma.
package main

import (
	"fmt"

	"github.com/tiersept/example-app/config"
	"github.com/tiersept/example-app/pkg/metrics"
	"github.com/tiersept/example-app/pkg/ratelimit"
	"github.com/tiersept/example-app/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Tokens      *services.TokenIssuer
	Auth        services.AuthService
	Account     services.AccountService
	Card        services.CardService
	Transaction services.TransactionService
}

// RateLimiters, rate limiter instance'ları. Kapatılırken Stop çağrılmalı.
type RateLimiters struct {
	Login *ratelimit.LoginLimiter
}

// Stop, limiter goroutine'lerini durdurur.
func (l *RateLimiters) Stop() {
	l.Login.Stop()
}

// initServices, token issuer'ı config'ten kurar ve service'leri bağlar.
// Geçersiz token ayarı başlangıç hatasıdır.
func initServices(repos *Repositories, cfg *config.Config, m *metrics.Metrics) (*Services, *RateLimiters, error) {
	tokens, err := services.NewTokenIssuer(services.TokenConfig{
		AccessSecret:  cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTokenExpiry,
		RefreshTTL:    cfg.JWT.RefreshTokenExpiry,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	svcs := &Services{
		Tokens:      tokens,
		Auth:        services.NewAuthService(repos.User, tokens, m),
		Account:     services.NewAccountService(repos.Account),
		Card:        services.NewCardService(repos.Card),
		Transaction: services.NewTransactionService(repos.Transaction),
	}

	limiters := &RateLimiters{
		Login: ratelimit.NewLoginLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow),
	}

	return svcs, limiters, nil
}
