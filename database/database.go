// Package database, SQLite bağlantısını, schema kurulumunu ve seed
// bootstrap'ını yönetir.
//
// modernc.org/sqlite saf Go driver'dır: CGO gerekmez. Blank import ile
// database/sql'e "sqlite" adıyla kaydolur.
package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath, testler için in-memory veritabanı yolu.
const MemoryPath = ":memory:"

// DB, veritabanı bağlantısını saran struct.
// *sql.DB connection pool'dur: goroutine-safe.
type DB struct {
	Conn *sql.DB
}

// New, SQLite bağlantısı açar ve schemaFS içindeki .sql dosyalarını sırayla uygular.
//
// Schema dosyaları idempotent'tir (CREATE ... IF NOT EXISTS); her açılışta
// tekrar çalıştırılır, ayrı bir migration takip tablosu yoktur.
func New(dbPath string, schemaFS fs.FS) (*DB, error) {
	memory := dbPath == MemoryPath

	if !memory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// foreign_keys: SQLite'ta varsayılan kapalı, açıkça etkinleştirilir.
	// journal_mode(WAL): eşzamanlı okuma + tek yazıcı.
	// busy_timeout: kilitli DB'de hemen hata vermek yerine 5sn bekle.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// In-memory DB her bağlantıda ayrı bir veritabanıdır: pool tek bağlantıya sabitlenir.
	if memory {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{Conn: conn}

	if err := db.applySchema(schemaFS); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Printf("[database] connected (%s) and schema applied", dbPath)
	return db, nil
}

// Close, veritabanı bağlantısını kapatır.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// applySchema, schemaFS kökündeki .sql dosyalarını alfabetik sırayla çalıştırır.
func (db *DB) applySchema(schemaFS fs.FS) error {
	entries, err := fs.ReadDir(schemaFS, ".")
	if err != nil {
		return fmt.Errorf("failed to read schema directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(schemaFS, file)
		if err != nil {
			return fmt.Errorf("failed to read schema file %s: %w", file, err)
		}

		for i, stmt := range splitStatements(stripComments(string(content))) {
			if _, err := db.Conn.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute %s (statement %d): %w", file, i+1, err)
			}
		}
	}

	return nil
}

// stripComments, "--" ile başlayan satırları atar.
func stripComments(sql string) string {
	lines := strings.Split(sql, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// splitStatements, SQL metnini noktalı virgülden böler; tek tırnaklı
// string literal'lerin içindeki noktalı virgülleri yoksayar.
func splitStatements(sql string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(sql); i++ {
		ch := sql[i]

		if ch == '\'' {
			// '' → literal içinde escape edilmiş tırnak
			if inString && i+1 < len(sql) && sql[i+1] == '\'' {
				current.WriteByte(ch)
				current.WriteByte(sql[i+1])
				i++
				continue
			}
			inString = !inString
		}

		if ch == ';' && !inString {
			if s := strings.TrimSpace(current.String()); s != "" {
				statements = append(statements, s)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		statements = append(statements, s)
	}

	return statements
}
