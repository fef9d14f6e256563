package handlers

import (
	"net/http"

	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/services"
)

// CardHandler, GET /cards.
type CardHandler struct {
	cardService services.CardService
}

func NewCardHandler(cardService services.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// List godoc
// GET /cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	cards, err := h.cardService.List(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, cards)
}
