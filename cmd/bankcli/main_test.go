package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
	"github.com/tiersept/example-app/pkg/crypto"
)

// newFakeServer, CLI'ın kullandığı endpoint'leri taklit eder.
// Korumalı route'lar sadece login'de verilen token'ı kabul eder.
func newFakeServer(t *testing.T) (*httptest.Server, *atomic.Pointer[string]) {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("cli-test"))
	require.NoError(t, err)

	lastQuery := &atomic.Pointer[string]{}
	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization required, use: Bearer <token>")
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "password@123" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		pkg.JSON(w, http.StatusOK, models.TokenPair{Token: token, RefreshToken: "refresh"})
	})
	mux.HandleFunc("GET /accounts", guard(func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, []models.Account{
			{ID: 1, Name: "Checking", Balance: 1547.91},
			{ID: 2, Name: "Savings", Balance: 735},
		})
	}))
	mux.HandleFunc("GET /cards", guard(func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, []models.Card{{ID: 1, Number: "4111111111111111", Expiry: "12/26"}})
	}))
	mux.HandleFunc("GET /transactions", guard(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.RawQuery
		lastQuery.Store(&raw)
		w.Header().Set("X-Total-Count", "1")
		pkg.JSON(w, http.StatusOK, []models.Transaction{
			{ID: 4, Amount: -82.45, Type: "debit", Description: "Grocery Store", Date: "2024-06-03T09:00:00Z"},
		})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, lastQuery
}

// run, root komutu verilen argümanlarla çalıştırır ve stdout'u döner.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestCLI_LoginThenQuery(t *testing.T) {
	srv, lastQuery := newFakeServer(t)
	store := filepath.Join(t.TempDir(), "tokens.db")
	flags := []string{"--server", srv.URL, "--store", store}

	out, err := run(t, "password@123\n", append([]string{"login", "-u", "test@test.test"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as test@test.test")

	out, err = run(t, "", append([]string{"accounts"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "1547.91")
	assert.Contains(t, out, "735.00")

	out, err = run(t, "", append([]string{"cards"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "************1111")
	assert.NotContains(t, out, "4111111111111111")

	out, err = run(t, "", append([]string{"transactions", "--search", "grocery", "--limit", "5"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Grocery Store")
	assert.Contains(t, out, "1 of 1")
	require.NotNil(t, lastQuery.Load())
	assert.Equal(t, "limit=5&search=grocery", *lastQuery.Load())

	out, err = run(t, "", append([]string{"logout"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = run(t, "", append([]string{"accounts"}, flags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization required")
}

func TestCLI_LoginInvalidCredentials(t *testing.T) {
	srv, _ := newFakeServer(t)
	store := filepath.Join(t.TempDir(), "tokens.db")

	_, err := run(t, "nope\n", "login", "-u", "test@test.test", "--server", srv.URL, "--store", store)
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestCLI_LoginRequiresUsername(t *testing.T) {
	_, err := run(t, "password@123\n", "login", "--store", filepath.Join(t.TempDir(), "tokens.db"))
	assert.Error(t, err)
}

func TestResolveKey_GeneratesAndReuses(t *testing.T) {
	store := filepath.Join(t.TempDir(), "nested", "tokens.db")
	opts := &options{store: store}

	first, err := opts.resolveKey()
	require.NoError(t, err)
	assert.Len(t, first, crypto.KeySize)

	info, err := os.Stat(store + ".key")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := opts.resolveKey()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveKey_ExplicitKey(t *testing.T) {
	hexKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	store := filepath.Join(t.TempDir(), "tokens.db")
	opts := &options{store: store, storeKey: hexKey}

	key, err := opts.resolveKey()
	require.NoError(t, err)
	assert.Len(t, key, crypto.KeySize)

	_, err = os.Stat(store + ".key")
	assert.True(t, os.IsNotExist(err), "explicit key must not be written to disk")

	opts.storeKey = "abc"
	_, err = opts.resolveKey()
	assert.Error(t, err)
}

func TestPromptPassword_Pipe(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	pw, err := promptPassword(strings.NewReader("s3cret with space\r\n"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "s3cret with space", pw)

	pw, err = promptPassword(strings.NewReader("no-newline"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = promptPassword(strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestMaskNumber(t *testing.T) {
	assert.Equal(t, "************0004", maskNumber("5500000000000004"))
	assert.Equal(t, "123", maskNumber("123"))
}
