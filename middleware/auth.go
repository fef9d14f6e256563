// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Hata varsa next çağrılmaz, request burada durur.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tiersept/example-app/handlers"
	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/pkg/metrics"
)

// AccessTokenValidator, guard'ın ihtiyaç duyduğu tek yetenek.
// services.AuthService bunu karşılar.
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*models.TokenClaims, error)
}

// AuthMiddleware, access token guard'ı.
type AuthMiddleware struct {
	validator AccessTokenValidator
	metrics   *metrics.Metrics
}

// NewAuthMiddleware, constructor. m nil olabilir.
func NewAuthMiddleware(validator AccessTokenValidator, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		metrics:   m,
	}
}

// Require, korumalı route'ları sarar.
//
// HTTP header formatı: Authorization: Bearer <token>
//
//   - header yok / Bearer token yok → 401 (kimlik hiç sunulmadı)
//   - token var ama imza geçersiz, bozuk veya süresi dolmuş → 403
//   - geçerli → claim'ler context'e eklenir, next çağrılır
//
// Veritabanına gidilmez; karar sadece token'a bakılarak verilir.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.metrics.GuardDecision(metrics.GuardUnauthenticated)
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization required, use: Bearer <token>")
			return
		}

		claims, err := m.validator.ValidateAccessToken(token)
		if err != nil {
			m.metrics.GuardDecision(metrics.GuardForbidden)
			pkg.ErrorWithMessage(w, http.StatusForbidden, "invalid or expired token")
			return
		}

		m.metrics.GuardDecision(metrics.GuardAuthorized)
		next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
	})
}

// bearerToken, "Bearer <token>" header'ından token'ı çıkarır.
// Şema adı büyük/küçük harf duyarsızdır (RFC 6750). Başka şema veya boş token → ok=false.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
