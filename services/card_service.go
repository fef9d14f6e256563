package services

import (
	"context"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/repository"
)

// CardService, kart iş mantığı interface'i.
type CardService interface {
	List(ctx context.Context, userID int64) ([]models.Card, error)
}

type cardService struct {
	cardRepo repository.CardRepository
}

func NewCardService(cardRepo repository.CardRepository) CardService {
	return &cardService{cardRepo: cardRepo}
}

func (s *cardService) List(ctx context.Context, userID int64) ([]models.Card, error) {
	return s.cardRepo.ListByUser(ctx, userID)
}
