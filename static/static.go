// Package static, API'nin OpenAPI dokümanını binary'ye gömer.
//
// Doküman derleme zamanında gömülür; deploy edilen binary'nin yanında
// ayrı bir dosya gerekmez.
package static

import (
	_ "embed"
	"net/http"
)

// OpenAPI, GET /api-docs/swagger.json ile servis edilen OpenAPI 3 dokümanı.
//
//go:embed openapi.json
var OpenAPI []byte

// OpenAPIHandler, gömülü dokümanı application/json olarak döner.
func OpenAPIHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(OpenAPI)
	})
}
