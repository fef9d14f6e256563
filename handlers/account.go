package handlers

import (
	"net/http"

	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/services"
)

// AccountHandler, GET /accounts.
type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List godoc
// GET /accounts
// Auth middleware gerektirir. Bakiyeler istek anında hesaplanır.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	accounts, err := h.accountService.List(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, accounts)
}
