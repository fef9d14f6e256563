// Package crypto: client tarafında token'ları diskte şifreli tutmak için
// AES-256-GCM yardımcıları.
//
// Çıktı formatı: base64(nonce(12 byte) || ciphertext || tag).
// Her Encrypt çağrısı yeni rastgele nonce üretir: aynı plaintext iki kez
// şifrelendiğinde farklı ciphertext çıkar.
//
//	key, _ := crypto.ParseKey("<64 hex karakter>")
//	enc, _ := crypto.Encrypt("secret", key)
//	dec, _ := crypto.Decrypt(enc, key)
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeySize, AES-256 anahtar uzunluğu (byte).
const KeySize = 32

// ErrDecrypt, yanlış anahtar veya bozulmuş veri durumunda döner.
var ErrDecrypt = errors.New("decryption failed")

// ParseKey, hex-encoded anahtarı çözer. Tam 64 hex karakter olmalı.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be exactly %d bytes (%d hex chars), got %d bytes", KeySize, KeySize*2, len(key))
	}
	return key, nil
}

// GenerateKey, rastgele bir anahtar üretir ve hex olarak döner.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Encrypt, plaintext'i AES-256-GCM ile şifreler.
func Encrypt(plaintext string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce generation: %w", err)
	}

	// Seal, nonce'u dst prefix'i olarak kullanır: nonce || ciphertext || tag
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt, Encrypt çıktısını çözer.
func Decrypt(encoded string, key []byte) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecrypt, err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
