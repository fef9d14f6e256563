package models

// Account, bir kullanıcı hesabı.
// Balance tabloda tutulmaz: transaction'ların toplamından hesaplanır.
type Account struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Card, kullanıcıya ait kredi/banka kartı.
type Card struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}
