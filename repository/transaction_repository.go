package repository

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// TransactionRepository, hesap hareketleri için interface.
//
// q daha önce Normalize edilmiş olmalıdır: sort kolonu whitelist'ten gelir,
// page/limit geçerli aralıktadır.
//
// Count, aynı arama filtresiyle eşleşen toplam satır sayısını döner
// (sayfalama bilgisinden bağımsız).
type TransactionRepository interface {
	List(ctx context.Context, userID int64, q models.TransactionQuery) ([]models.Transaction, error)
	Count(ctx context.Context, userID int64, search string) (int, error)
}
