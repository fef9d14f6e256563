// Package main: HTTP route registration.
package main

import (
	"net/http"

	"github.com/tiersept/example-app/handlers"
	"github.com/tiersept/example-app/middleware"
	"github.com/tiersept/example-app/pkg/metrics"
	"github.com/tiersept/example-app/static"
)

// initRoutes, tüm endpoint'leri mux'a bağlar.
//
// Public: /login, /refresh-token, /health, /metrics, /api-docs/swagger.json
// Korumalı (Bearer access token): /accounts, /cards, /transactions
func initRoutes(mux *http.ServeMux, h *Handlers, validator middleware.AccessTokenValidator, m *metrics.Metrics) {
	authMw := middleware.NewAuthMiddleware(validator, m)
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}

	// Auth
	mux.HandleFunc("POST /login", h.Auth.Login)
	mux.HandleFunc("POST /refresh-token", h.Auth.Refresh)

	// Domain
	mux.Handle("GET /accounts", auth(h.Account.List))
	mux.Handle("GET /cards", auth(h.Card.List))
	mux.Handle("GET /transactions", auth(h.Transaction.List))

	// Operasyonel
	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("GET /api-docs/swagger.json", static.OpenAPIHandler())
}
