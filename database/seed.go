package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Seed kullanıcısının credential'ları.
const (
	SeedUsername = "test@test.test"
	SeedPassword = "password@123"
)

// Seed hesap isimleri.
const (
	SeedAccountChecking = "Checking"
	SeedAccountSavings  = "Savings"
)

// SeedCard, seed edilen bir kart satırı.
type SeedCard struct {
	Number string
	Expiry string
	CVV    string
}

// SeedTransaction, seed edilen bir hareket. Account, hesap adı üzerinden
// bağlanır; gerçek account ID'si insert sırasında çözülür.
type SeedTransaction struct {
	Account     string
	Amount      float64
	Type        string
	Description string
	Date        string
}

// SeedCards, seed kullanıcısının kartları.
var SeedCards = []SeedCard{
	{Number: "4111111111111111", Expiry: "12/26", CVV: "123"},
	{Number: "5500000000000004", Expiry: "11/25", CVV: "456"},
}

// SeedTransactions, seed kullanıcısının hareketleri (insert sırasıyla).
var SeedTransactions = []SeedTransaction{
	{SeedAccountChecking, -50.25, "debit", "Grocery Store", "2024-06-01T10:00:00Z"},
	{SeedAccountChecking, 2000.00, "credit", "Salary", "2024-06-02T09:00:00Z"},
	{SeedAccountSavings, -100.00, "debit", "Online Shopping", "2024-06-03T15:30:00Z"},
	{SeedAccountChecking, -120.00, "debit", "Online Shopping", "2024-06-02T10:00:00Z"},
	{SeedAccountChecking, -35.60, "debit", "Restaurant - Italian Bistro", "2024-06-04T19:45:00Z"},
	{SeedAccountSavings, -75.00, "debit", "Electricity Bill", "2024-06-05T08:00:00Z"},
	{SeedAccountChecking, -20.00, "debit", "ATM Withdrawal", "2024-06-06T12:30:00Z"},
	{SeedAccountSavings, 500.00, "credit", "Transfer from Checking", "2024-06-07T14:00:00Z"},
	{SeedAccountChecking, -12.99, "debit", "Coffee Shop", "2024-06-08T09:15:00Z"},
	{SeedAccountChecking, -60.00, "debit", "Gas Station", "2024-06-09T17:20:00Z"},
	{SeedAccountSavings, 100.00, "credit", "Gift Received", "2024-06-10T11:00:00Z"},
	{SeedAccountChecking, -45.00, "debit", "Pharmacy", "2024-06-11T16:10:00Z"},
	{SeedAccountSavings, -150.00, "debit", "Online Subscription", "2024-06-12T07:30:00Z"},
	{SeedAccountChecking, -80.00, "debit", "Electronics Store", "2024-06-13T13:50:00Z"},
	{SeedAccountSavings, 250.00, "credit", "Freelance Payment", "2024-06-14T18:00:00Z"},
	{SeedAccountChecking, -22.50, "debit", "Bookstore", "2024-06-15T15:40:00Z"},
	{SeedAccountSavings, -90.00, "debit", "Water Bill", "2024-06-16T10:00:00Z"},
	{SeedAccountChecking, -5.75, "debit", "Bakery", "2024-06-17T08:25:00Z"},
	{SeedAccountSavings, 300.00, "credit", "Stock Dividend", "2024-06-18T20:00:00Z"},
}

// BootstrapOptions, Bootstrap davranışını ayarlar.
type BootstrapOptions struct {
	// Reset, seed'den önce tüm domain tablolarını boşaltır ve ID sayaçlarını sıfırlar.
	Reset bool
	// BcryptCost, seed şifresinin hash maliyeti. 0 → bcrypt.DefaultCost.
	BcryptCost int
}

// Bootstrap, process başlangıcında bir kez çağrılır: asla bir request'ten değil.
//
// Idempotent: seed kullanıcısı zaten varsa hiçbir şey yazmaz. Reset verilirse
// önce tablolar boşaltılır, ardından seed yeniden yazılır. Tüm işlem tek bir
// transaction'dır; yarıda kalan seed diske yansımaz.
//
// Dönen bool, bu çağrıda seed yazılıp yazılmadığını belirtir.
func Bootstrap(ctx context.Context, db *sql.DB, opts BootstrapOptions) (bool, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// bcrypt yavaştır: transaction açık tutulurken hesaplanmaz.
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), cost)
	if err != nil {
		return false, fmt.Errorf("failed to hash seed password: %w", err)
	}

	seeded := false
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if opts.Reset {
			if err := resetTables(ctx, tx); err != nil {
				return err
			}
		}

		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, SeedUsername).Scan(&existing)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up seed user: %w", err)
		}

		if err := insertSeed(ctx, tx, string(hash)); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		log.Printf("[database] seed data written (user=%s, transactions=%d)", SeedUsername, len(SeedTransactions))
	} else {
		log.Println("[database] seed data already present, skipping")
	}
	return seeded, nil
}

func resetTables(ctx context.Context, tx *sql.Tx) error {
	// FK sırası: önce çocuk tablolar.
	for _, table := range []string{"transactions", "cards", "accounts", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	// AUTOINCREMENT sayaçları: ID'ler tekrar 1'den başlasın.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sqlite_sequence WHERE name IN ('transactions', 'cards', 'accounts', 'users')`,
	); err != nil {
		return fmt.Errorf("failed to reset id sequences: %w", err)
	}
	log.Println("[database] domain tables reset")
	return nil
}

func insertSeed(ctx context.Context, tx *sql.Tx, passwordHash string) error {
	var userID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`,
		SeedUsername, passwordHash,
	).Scan(&userID); err != nil {
		return fmt.Errorf("failed to insert seed user: %w", err)
	}

	accountIDs := make(map[string]int64, 2)
	for _, name := range []string{SeedAccountChecking, SeedAccountSavings} {
		var id int64
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO accounts (user_id, name) VALUES (?, ?) RETURNING id`, userID, name,
		).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert seed account %s: %w", name, err)
		}
		accountIDs[name] = id
	}

	for _, c := range SeedCards {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cards (user_id, number, expiry, cvv) VALUES (?, ?, ?, ?)`,
			userID, c.Number, c.Expiry, c.CVV,
		); err != nil {
			return fmt.Errorf("failed to insert seed card: %w", err)
		}
	}

	for _, t := range SeedTransactions {
		accountID, ok := accountIDs[t.Account]
		if !ok {
			return fmt.Errorf("seed transaction %q references unknown account %q", t.Description, t.Account)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (user_id, account_id, amount, type, description, date) VALUES (?, ?, ?, ?, ?, ?)`,
			userID, accountID, t.Amount, t.Type, t.Description, t.Date,
		); err != nil {
			return fmt.Errorf("failed to insert seed transaction %q: %w", t.Description, err)
		}
	}

	return nil
}
