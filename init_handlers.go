// Package main: Handler katmanı başlatma.
package main

import "github.com/tiersept/example-app/handlers"

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Account     *handlers.AccountHandler
	Card        *handlers.CardHandler
	Transaction *handlers.TransactionHandler
}

func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Account:     handlers.NewAccountHandler(svcs.Account),
		Card:        handlers.NewCardHandler(svcs.Card),
		Transaction: handlers.NewTransactionHandler(svcs.Transaction),
	}
}
