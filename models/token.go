package models

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims, access ve refresh token'ların payload'ı.
//
// İki token da aynı kimliği taşır: {id, username}. Refresh sırasında yeni çift
// bu claim'lerden türetilir, veritabanına gidilmez.
//
// RegisteredClaims içinde:
//   - sub: kullanıcı ID'sinin string hali
//   - jti: her token'a özel UUID: ileride bir deny-list bu anahtarı kullanabilir
//   - iat / exp / iss
type TokenClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Subject, claim'lerin ait olduğu kullanıcı ID'si için sub değerini üretir.
func Subject(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// TokenPair, login ve refresh'in atomik olarak döndürdüğü çift.
// Bir access token asla kendi refresh token'ı olmadan verilmez.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Complete, iki token da doluysa true.
func (p *TokenPair) Complete() bool {
	return p != nil && p.Token != "" && p.RefreshToken != ""
}
