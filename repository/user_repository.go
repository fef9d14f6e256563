// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz, bu paketteki interface'ler üzerinden
// çalışır. Her interface'in bir SQLite implementasyonu vardır (sqlite_*.go);
// testler aynı interface'i sahte bir implementasyonla karşılayabilir.
//
// Tüm implementasyonlar database.TxQuerier alır: aynı repository hem
// *sql.DB ile hem de WithTx içindeki *sql.Tx ile çalışır.
package repository

import (
	"context"

	"github.com/tiersept/example-app/models"
)

// UserRepository, kullanıcı (credential store) okuma işlemleri.
// Kullanıcılar seed bootstrap'ı ile yazılır; API kayıt sunmaz.
//
// Kayıtlı kullanıcı bulunamazsa pkg.ErrNotFound döner.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
