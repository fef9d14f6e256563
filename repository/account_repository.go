package repository

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// AccountRepository, hesap veritabanı işlemleri.
//
// ListWithBalances: kullanıcının hesaplarını bakiyeleriyle birlikte döner.
// Bakiye saklanmaz; hesabın (ve kullanıcının) hareketlerinin toplamıdır,
// hiç hareket yoksa 0. Sonuç asla nil değildir.
type AccountRepository interface {
	ListWithBalances(ctx context.Context, userID int64) ([]models.Account, error)
}
