// Package main: Repository katmanı başlatma.
package main

import (
	"database/sql"

	"github.com/tiersept/example-app/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User        repository.UserRepository
	Account     repository.AccountRepository
	Card        repository.CardRepository
	Transaction repository.TransactionRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// *sql.DB goroutine-safe bir connection pool'dur, hepsi aynısını paylaşır.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:        repository.NewSQLiteUserRepo(conn),
		Account:     repository.NewSQLiteAccountRepo(conn),
		Card:        repository.NewSQLiteCardRepo(conn),
		Transaction: repository.NewSQLiteTransactionRepo(conn),
	}
}
