// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/banking.db)

	// ResetOnStart, açılışta domain tablolarını boşaltıp seed'i yeniden yazar.
	ResetOnStart bool
}

// JWTConfig, token ayarları.
// Access ve refresh token'lar farklı anahtarlarla imzalanır: bir access token
// refresh endpoint'inde, bir refresh token da guard'da kabul edilmez.
type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// RateLimitConfig, login brute-force koruması.
type RateLimitConfig struct {
	LoginAttempts int // 0 → devre dışı
	LoginWindow   time.Duration
}

// CORSConfig, izin verilen origin listesi.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; yoksa sessizce devam eder.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getInt("SERVER_PORT", 3001)
	if err != nil {
		return nil, err
	}

	accessMinutes, err := getInt("JWT_ACCESS_EXPIRY_MINUTES", 5)
	if err != nil {
		return nil, err
	}
	refreshDays, err := getInt("JWT_REFRESH_EXPIRY_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if accessMinutes <= 0 || refreshDays <= 0 {
		return nil, fmt.Errorf("token expiry values must be positive")
	}

	loginAttempts, err := getInt("LOGIN_RATE_LIMIT_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	loginWindow, err := getInt("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 120)
	if err != nil {
		return nil, err
	}

	resetOnStart, err := strconv.ParseBool(getEnv("SEED_RESET_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RESET_ON_START: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	refreshSecret := getEnv("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}
	if refreshSecret == jwtSecret {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET must differ from JWT_SECRET")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path:         getEnv("DATABASE_PATH", "./data/banking.db"),
			ResetOnStart: resetOnStart,
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			RefreshSecret:      refreshSecret,
			AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
			RefreshTokenExpiry: time.Duration(refreshDays) * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			LoginAttempts: loginAttempts,
			LoginWindow:   time.Duration(loginWindow) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:3001").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// splitList, virgülle ayrılmış listeyi boşlukları kırparak böler.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
