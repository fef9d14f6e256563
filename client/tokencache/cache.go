// Package tokencache, client tarafında son token çiftini saklar.
//
// Cache her zaman ya tam bir çift (access + refresh) ya da hiçbir şey tutar;
// yarım çift okunmaz. Son yazan kazanır.
package tokencache

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// Cache, client interceptor'ın kullandığı depolama sözleşmesi.
//
// Get, cache boşsa (nil, nil) döner. Set, eksik bir çifti reddeder.
// Tüm implementasyonlar goroutine-safe olmalıdır.
type Cache interface {
	Get(ctx context.Context) (*models.TokenPair, error)
	Set(ctx context.Context, pair *models.TokenPair) error
	Clear(ctx context.Context) error
}
