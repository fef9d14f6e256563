// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler "ince" (thin) olmalı:
// 1. Request'i parse et (JSON body veya query)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// İş mantığı ve SQL service/repository katmanlarında yaşar.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/pkg/ratelimit"
	"github.com/tiersept/example-app/services"
)

// maxAuthBodyBytes, login/refresh body üst sınırı.
const maxAuthBodyBytes = 16 << 10

// AuthHandler, login ve refresh endpoint'leri.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.LoginLimiter
}

// NewAuthHandler, constructor.
// loginLimiter nil ise rate limiting devre dışı kalır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.LoginLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Login godoc
// POST /login
// Body: { "username": "...", "password": "..." }
//
// Başarılı → 200 { token, refreshToken }
// Yanlış/boş credential → 401 { message: "Invalid credentials" }
// IP bazlı limit aşıldı → 429 + Retry-After
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, pkg.ErrUnauthorized) {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, services.InvalidCredentials)
			return
		}
		pkg.Error(w, err)
		return
	}

	// Başarılı login sayacı sıfırlar: meşru kullanıcı bloke olmaz.
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, pair)
}

// Refresh godoc
// POST /refresh-token
// Body: { "refreshToken": "..." }
//
// Token yok → 401, geçersiz/süresi dolmuş → 403, geçerli → 200 yeni çift.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeBody(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, pkg.ErrUnauthorized):
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "refresh token required")
		case errors.Is(err, pkg.ErrForbidden):
			pkg.ErrorWithMessage(w, http.StatusForbidden, "invalid or expired refresh token")
		default:
			pkg.Error(w, err)
		}
		return
	}

	pkg.JSON(w, http.StatusOK, pair)
}

// decodeBody, JSON body'yi v'ye çözer. Boş body hata değildir: v sıfır değerde
// kalır ve eksik alan service katmanında 401 olarak ele alınır. Sadece bozuk
// JSON hata döner.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
