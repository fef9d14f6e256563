package tokencache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/tiersept/example-app/database"
	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg/crypto"
)

// Anahtar isimleri: client'ın kalıcı depolamasında kullanılan isimlerle aynı.
const (
	keyToken        = "token"
	keyRefreshToken = "refreshToken"
)

//go:embed schema/*.sql
var schemaFiles embed.FS

// SQLite, dosya tabanlı, şifreli token cache.
//
// İki token tek transaction içinde yazılır/silinir: diskte asla yarım çift kalmaz.
type SQLite struct {
	db  *database.DB
	key []byte
}

// OpenSQLite, path'teki cache veritabanını açar (yoksa oluşturur).
// key, crypto.KeySize byte'lık AES anahtarıdır.
func OpenSQLite(path string, key []byte) (*SQLite, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("token cache key must be %d bytes", crypto.KeySize)
	}

	schema, err := fs.Sub(schemaFiles, "schema")
	if err != nil {
		return nil, err
	}

	db, err := database.New(path, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}

	return &SQLite{db: db, key: key}, nil
}

// Close, veritabanı bağlantısını kapatır.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get, saklı çifti çözer. Cache boşsa veya çiftin bir yarısı eksikse (nil, nil).
// Yanlış anahtar → crypto.ErrDecrypt.
func (s *SQLite) Get(ctx context.Context) (*models.TokenPair, error) {
	rows, err := s.db.Conn.QueryContext(ctx,
		`SELECT key, value FROM credentials WHERE key IN (?, ?)`, keyToken, keyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan token cache row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate token cache rows: %w", err)
	}

	encToken, okToken := values[keyToken]
	encRefresh, okRefresh := values[keyRefreshToken]
	if !okToken || !okRefresh {
		return nil, nil
	}

	token, err := crypto.Decrypt(encToken, s.key)
	if err != nil {
		return nil, err
	}
	refresh, err := crypto.Decrypt(encRefresh, s.key)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{Token: token, RefreshToken: refresh}, nil
}

// Set, iki token'ı şifreleyip tek transaction'da yazar.
func (s *SQLite) Set(ctx context.Context, pair *models.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	encToken, err := crypto.Encrypt(pair.Token, s.key)
	if err != nil {
		return err
	}
	encRefresh, err := crypto.Encrypt(pair.RefreshToken, s.key)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, s.db.Conn, func(tx *sql.Tx) error {
		for k, v := range map[string]string{keyToken: encToken, keyRefreshToken: encRefresh} {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", k, err)
			}
		}
		return nil
	})
}

// Clear, iki token'ı birlikte siler.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.Conn.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?)`, keyToken, keyRefreshToken); err != nil {
		return fmt.Errorf("failed to clear token cache: %w", err)
	}
	return nil
}

var (
	_ Cache = (*Memory)(nil)
	_ Cache = (*SQLite)(nil)
)

// IsCorrupt, cache içeriği mevcut anahtarla çözülemiyorsa true döner
// (yanlış anahtar veya bozulmuş dosya).
func IsCorrupt(err error) bool {
	return errors.Is(err, crypto.ErrDecrypt)
}
