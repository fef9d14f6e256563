package services

import (
	"context"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/repository"
)

// AccountService, hesap iş mantığı interface'i.
type AccountService interface {
	List(ctx context.Context, userID int64) ([]models.Account, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

// List, kullanıcının hesaplarını güncel bakiyeleriyle döner.
// Bakiye her çağrıda hareketlerden yeniden hesaplanır.
func (s *accountService) List(ctx context.Context, userID int64) ([]models.Account, error) {
	return s.accountRepo.ListWithBalances(ctx, userID)
}
