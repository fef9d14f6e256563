package database

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedSum(account string) float64 {
	var sum float64
	for _, tx := range SeedTransactions {
		if tx.Account == account {
			sum += tx.Amount
		}
	}
	return sum
}

func count(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestBootstrap_SeedsOnce(t *testing.T) {
	db, err := New(MemoryPath, SchemaFS())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	opts := BootstrapOptions{BcryptCost: bcrypt.MinCost}

	seeded, err := Bootstrap(ctx, db.Conn, opts)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = Bootstrap(ctx, db.Conn, opts)
	require.NoError(t, err)
	assert.False(t, seeded, "second bootstrap must be a no-op")

	assert.Equal(t, 1, count(t, db, "users"))
	assert.Equal(t, 2, count(t, db, "accounts"))
	assert.Equal(t, len(SeedCards), count(t, db, "cards"))
	assert.Equal(t, len(SeedTransactions), count(t, db, "transactions"))
}

func TestBootstrap_PasswordHashMatches(t *testing.T) {
	db, err := New(MemoryPath, SchemaFS())
	require.NoError(t, err)
	defer db.Close()

	_, err = Bootstrap(context.Background(), db.Conn, BootstrapOptions{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	var hash string
	require.NoError(t, db.Conn.QueryRow(`SELECT password_hash FROM users WHERE username = ?`, SeedUsername).Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(SeedPassword)))
}

func TestBootstrap_TransactionsBoundToRealAccounts(t *testing.T) {
	db, err := New(MemoryPath, SchemaFS())
	require.NoError(t, err)
	defer db.Close()

	_, err = Bootstrap(context.Background(), db.Conn, BootstrapOptions{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	rows, err := db.Conn.Query(`
		SELECT a.name, SUM(t.amount) FROM transactions t
		JOIN accounts a ON a.id = t.account_id AND a.user_id = t.user_id
		GROUP BY a.name`)
	require.NoError(t, err)
	defer rows.Close()

	sums := map[string]float64{}
	for rows.Next() {
		var name string
		var sum float64
		require.NoError(t, rows.Scan(&name, &sum))
		sums[name] = sum
	}
	require.NoError(t, rows.Err())

	assert.InDelta(t, 1547.91, sums[SeedAccountChecking], 0.001)
	assert.InDelta(t, 735.00, sums[SeedAccountSavings], 0.001)
	assert.InDelta(t, seedSum(SeedAccountChecking), sums[SeedAccountChecking], 0.001)
}

func TestBootstrap_ResetRestartsIDs(t *testing.T) {
	db, err := New(MemoryPath, SchemaFS())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = Bootstrap(ctx, db.Conn, BootstrapOptions{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	// Seed dışı bir satır: reset sonrasında kalmamalı.
	_, err = db.Conn.Exec(`INSERT INTO users (username, password_hash) VALUES ('intruder', 'x')`)
	require.NoError(t, err)

	seeded, err := Bootstrap(ctx, db.Conn, BootstrapOptions{Reset: true, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.True(t, seeded)

	assert.Equal(t, 1, count(t, db, "users"))
	assert.Equal(t, len(SeedTransactions), count(t, db, "transactions"))

	var minID, maxID int64
	require.NoError(t, db.Conn.QueryRow(`SELECT MIN(id), MAX(id) FROM transactions`).Scan(&minID, &maxID))
	assert.Equal(t, int64(1), minID)
	assert.Equal(t, int64(len(SeedTransactions)), maxID)
}

func TestSeedTransactions_AmountsAreCents(t *testing.T) {
	for _, tx := range SeedTransactions {
		cents := tx.Amount * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-9, tx.Description)
		if tx.Amount < 0 {
			assert.Equal(t, "debit", tx.Type, tx.Description)
		} else {
			assert.Equal(t, "credit", tx.Type, tx.Description)
		}
	}
}
