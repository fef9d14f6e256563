package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// ErrorResponse, tüm hata yanıtlarının gövdesi.
// Mobil client sadece "message" alanını okur.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON, başarılı bir yanıtı zarfsız (envelope olmadan) gönderir.
// API kontratı çıplak obje/array bekler: {token, refreshToken}, [ {...} ] gibi.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[response] failed to encode response: %v", err)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
//
// 500'lerde iç hata mesajı client'a sızdırılmaz: sadece loglanır.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[response] internal error: %v", err)
		message = "internal server error"
	}

	ErrorWithMessage(w, status, message)
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Message: message}); err != nil {
		log.Printf("[response] failed to encode error response: %v", err)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() wrap edilmiş error'ları da doğru yakalar.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
