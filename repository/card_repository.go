package repository

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// CardRepository, kart veritabanı işlemleri.
type CardRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Card, error)
}
