// Package dbtest, testler için seed'lenmiş in-memory veritabanı kurar.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiersept/example-app/database"
)

// Open, schema uygulanmış boş bir in-memory veritabanı döner.
// Test bitince bağlantı kapanır.
func Open(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New(database.MemoryPath, database.SchemaFS())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// Seeded, Open + Bootstrap. Seed şifresi testleri hızlandırmak için
// bcrypt.MinCost ile hash'lenir.
func Seeded(t testing.TB) *database.DB {
	t.Helper()

	db := Open(t)
	_, err := database.Bootstrap(context.Background(), db.Conn, database.BootstrapOptions{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	return db
}
