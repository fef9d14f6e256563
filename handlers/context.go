package handlers

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// contextKey, context.Value çakışmalarını önlemek için özel tip.
type contextKey string

// ClaimsContextKey, doğrulanmış token claim'lerinin context anahtarı.
// AuthMiddleware tarafından yazılır.
const ClaimsContextKey contextKey = "claims"

// WithClaims, claim'leri context'e ekler.
func WithClaims(ctx context.Context, claims *models.TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext, guard'dan geçmiş isteğin claim'lerini döner.
// Korumasız bir route'ta çağrılırsa ok=false olur.
func ClaimsFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*models.TokenClaims)
	return claims, ok && claims != nil
}
