package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Transaction, bir hesap hareketi. Amount negatifse çıkış (debit), pozitifse giriş (credit).
type Transaction struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	AccountID   int64   `json:"account_id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // RFC 3339, ör: 2024-06-01T10:00:00Z
}

// Sıralama ve sayfalama sabitleri.
const (
	DefaultTransactionSort  = "date"
	DefaultTransactionOrder = "desc"
	DefaultTransactionPage  = 1
	DefaultTransactionLimit = 10
	MaxTransactionLimit     = 100
)

// transactionSortColumns, ORDER BY'a girebilecek kolonların whitelist'i.
// Kolon adı parametre olarak bağlanamadığı için SQL'e string olarak eklenir;
// bu yüzden sadece bu map'teki değerler kabul edilir.
var transactionSortColumns = map[string]string{
	"date":        "date",
	"amount":      "amount",
	"type":        "type",
	"description": "description",
}

// TransactionQuery, GET /transactions query parametreleri.
type TransactionQuery struct {
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// ParseTransactionQuery, URL query değerlerinden TransactionQuery oluşturur
// ve Normalize eder. Sayısal olmayan page/limit hata döner.
func ParseTransactionQuery(get func(string) string) (TransactionQuery, error) {
	q := TransactionQuery{
		Search: get("search"),
		Sort:   get("sort"),
		Order:  get("order"),
	}

	var err error
	if q.Page, err = parseOptionalInt(get("page")); err != nil {
		return q, fmt.Errorf("page must be an integer")
	}
	if q.Limit, err = parseOptionalInt(get("limit")); err != nil {
		return q, fmt.Errorf("limit must be an integer")
	}

	return q, q.Normalize()
}

// Normalize, varsayılanları uygular ve değerleri doğrular.
//   - sort boşsa "date", whitelist dışındaysa hata
//   - order boşsa "desc", asc/desc dışındaysa hata (büyük/küçük harf duyarsız)
//   - page < 1 → 1, limit [1, 100] aralığına kırpılır; 0 → varsayılan
func (q *TransactionQuery) Normalize() error {
	q.Search = strings.TrimSpace(q.Search)

	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	if q.Sort == "" {
		q.Sort = DefaultTransactionSort
	}
	if _, ok := transactionSortColumns[q.Sort]; !ok {
		return fmt.Errorf("sort must be one of date, amount, type, description")
	}

	q.Order = strings.ToLower(strings.TrimSpace(q.Order))
	if q.Order == "" {
		q.Order = DefaultTransactionOrder
	}
	if q.Order != "asc" && q.Order != "desc" {
		return fmt.Errorf("order must be asc or desc")
	}

	if q.Page < 1 {
		q.Page = DefaultTransactionPage
	}
	switch {
	case q.Limit == 0:
		q.Limit = DefaultTransactionLimit
	case q.Limit < 1:
		q.Limit = 1
	case q.Limit > MaxTransactionLimit:
		q.Limit = MaxTransactionLimit
	}

	return nil
}

// SortColumn, whitelist'ten geçmiş kolon adını döner.
func (q *TransactionQuery) SortColumn() string {
	return transactionSortColumns[q.Sort]
}

// Offset, (page-1) × limit.
func (q *TransactionQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Values, sorguyu URL parametrelerine çevirir (client tarafı kullanır).
// Sıfır değerli alanlar atlanır, sunucu varsayılanları uygular.
func (q TransactionQuery) Values() map[string]string {
	out := make(map[string]string)
	if q.Search != "" {
		out["search"] = q.Search
	}
	if q.Sort != "" {
		out["sort"] = q.Sort
	}
	if q.Order != "" {
		out["order"] = q.Order
	}
	if q.Page != 0 {
		out["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit != 0 {
		out["limit"] = strconv.Itoa(q.Limit)
	}
	return out
}

func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
