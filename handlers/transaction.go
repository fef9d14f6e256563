package handlers

import (
	"net/http"
	"strconv"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/services"
)

// TotalCountHeader, filtreyle eşleşen toplam hareket sayısı.
// Gövde çıplak array olduğu için sayfalama bilgisi header'da taşınır.
const TotalCountHeader = "X-Total-Count"

// TransactionHandler, GET /transactions.
type TransactionHandler struct {
	transactionService services.TransactionService
}

func NewTransactionHandler(transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List godoc
// GET /transactions?search=&sort=date|amount|type|description&order=asc|desc&page=1&limit=10
//
// Sayısal olmayan page/limit veya whitelist dışı sort/order → 400.
// Veri sonrasındaki bir sayfa → 200 [].
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q, err := models.ParseTransactionQuery(r.URL.Query().Get)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.transactionService.List(r.Context(), claims.UserID, q)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	w.Header().Set(TotalCountHeader, strconv.Itoa(page.Total))
	pkg.JSON(w, http.StatusOK, page.Items)
}
