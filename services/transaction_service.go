package services

import (
	"context"
	"fmt"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/repository"
)

// TransactionPage, bir sayfa hareket + filtreyle eşleşen toplam sayı.
type TransactionPage struct {
	Items []models.Transaction
	Total int
	Query models.TransactionQuery
}

// TransactionService, hareket listeleme iş mantığı.
type TransactionService interface {
	List(ctx context.Context, userID int64, q models.TransactionQuery) (*TransactionPage, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
}

func NewTransactionService(transactionRepo repository.TransactionRepository) TransactionService {
	return &transactionService{transactionRepo: transactionRepo}
}

// List, sorguyu normalize eder (geçersiz sort/order → pkg.ErrBadRequest),
// ardından sayfayı ve toplam sayıyı getirir.
func (s *transactionService) List(ctx context.Context, userID int64, q models.TransactionQuery) (*TransactionPage, error) {
	if err := q.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	items, err := s.transactionRepo.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	total, err := s.transactionRepo.Count(ctx, userID, q.Search)
	if err != nil {
		return nil, err
	}

	return &TransactionPage{Items: items, Total: total, Query: q}, nil
}
