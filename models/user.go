// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model hem veritabanı tablosunun Go karşılığıdır hem de API'den
// gelen/giden verinin şeklini belirler. JSON tag'leri mobil client'ın
// beklediği alan isimleriyle birebir aynıdır.
package models

import "strings"

// User, sistemdeki tek kullanıcı kaydı. Seed sırasında bir kez oluşur.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // API response'a asla dahil edilmez
}

// LoginRequest, POST /login body'si.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Normalize, username'deki baş/son boşlukları kırpar.
// Password'e dokunulmaz: boşluk şifrenin parçası olabilir.
func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// Empty, iki alandan biri boşsa true döner.
// Boş credential "yanlış credential" ile aynı muameleyi görür (401).
func (r *LoginRequest) Empty() bool {
	return r.Username == "" || r.Password == ""
}

// RefreshRequest, POST /refresh-token body'si.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
