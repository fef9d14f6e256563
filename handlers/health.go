package handlers

import (
	"net/http"

	"github.com/tiersept/example-app/pkg"
)

// Health godoc
// GET /health: kimlik doğrulaması gerektirmez.
func Health(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
