package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired, token yenilenemediğinde döner: cache temizlenmiştir,
// kullanıcının tekrar login olması gerekir. İstek sunucuya gönderilmemiştir.
var ErrAuthRequired = errors.New("authentication required")

// APIError, sunucunun 2xx dışı yanıtı.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

// IsStatus, err bir APIError ise ve status eşleşiyorsa true döner.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
