package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiersept/example-app/handlers"
	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/pkg/metrics"
)

// stubValidator, sadece "good" token'ını kabul eder.
type stubValidator struct {
	calls int
}

func (v *stubValidator) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	v.calls++
	if token != "good" {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrForbidden)
	}
	return &models.TokenClaims{UserID: 1, Username: "test@test.test"}, nil
}

func serveGuarded(t *testing.T, v *stubValidator, m *metrics.Metrics, header string) (*httptest.ResponseRecorder, *models.TokenClaims) {
	t.Helper()

	var seen *models.TokenClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := handlers.ClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = claims
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	NewAuthMiddleware(v, m).Require(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestRequire_MissingCredentialsIs401(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer    ", "Basic dXNlcjpwYXNz", "good"} {
		v := &stubValidator{}
		rec, seen := serveGuarded(t, v, nil, header)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Nil(t, seen)
		assert.Zero(t, v.calls, "validator must not run without a bearer token")
		assert.Contains(t, rec.Body.String(), `"message"`)
	}
}

func TestRequire_InvalidTokenIs403(t *testing.T) {
	v := &stubValidator{}
	rec, seen := serveGuarded(t, v, nil, "Bearer forged")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, seen)
	assert.Equal(t, 1, v.calls)
}

func TestRequire_ValidTokenPassesClaims(t *testing.T) {
	for _, header := range []string{"Bearer good", "bearer good", "  Bearer   good  "} {
		rec, seen := serveGuarded(t, &stubValidator{}, nil, header)

		assert.Equal(t, http.StatusNoContent, rec.Code, header)
		require.NotNil(t, seen)
		assert.Equal(t, int64(1), seen.UserID)
	}
}

func TestRequire_CountsDecisions(t *testing.T) {
	m := metrics.New()
	v := &stubValidator{}

	serveGuarded(t, v, m, "")
	serveGuarded(t, v, m, "Bearer bad")
	serveGuarded(t, v, m, "Bearer bad")
	serveGuarded(t, v, m, "Bearer good")

	expected := `
# HELP bank_auth_guard_decisions_total Access-token guard decisions on protected routes.
# TYPE bank_auth_guard_decisions_total counter
bank_auth_guard_decisions_total{outcome="authorized"} 1
bank_auth_guard_decisions_total{outcome="forbidden"} 2
bank_auth_guard_decisions_total{outcome="unauthenticated"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "bank_auth_guard_decisions_total"))
}
