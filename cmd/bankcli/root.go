package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiersept/example-app/client"
	"github.com/tiersept/example-app/client/tokencache"
	"github.com/tiersept/example-app/pkg/crypto"
)

const (
	defaultServer = "http://localhost:3001"
	envServer     = "BANKCLI_SERVER"
	envStoreKey   = "BANKCLI_STORE_KEY"
)

// options, tüm alt komutların paylaştığı persistent flag'ler.
type options struct {
	server   string
	store    string
	storeKey string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bankcli",
		Short: "Command line client for the banking API",
		Long: `bankcli talks to the banking API on behalf of a single user.

Run "bankcli login" once; the token pair is stored encrypted on disk and
refreshed automatically before it expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr(envServer, defaultServer), "API base URL (env "+envServer+")")
	cmd.PersistentFlags().StringVar(&opts.store, "store", defaultStorePath(), "token store file")
	cmd.PersistentFlags().StringVar(&opts.storeKey, "store-key", os.Getenv(envStoreKey), "hex encoded AES-256 key for the token store (env "+envStoreKey+")")

	cmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newAccountsCmd(opts),
		newCardsCmd(opts),
		newTransactionsCmd(opts),
	)
	return cmd
}

// session, bir komut boyunca açık kalan client ve token store'u.
type session struct {
	client *client.Client
	store  *tokencache.SQLite
}

func (s *session) Close() error {
	return s.store.Close()
}

// open, token store'u açar ve client'ı kurar.
func (o *options) open() (*session, error) {
	key, err := o.resolveKey()
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(o.store); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	store, err := tokencache.OpenSQLite(o.store, key)
	if err != nil {
		return nil, err
	}

	c, err := client.New(o.server, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{client: c, store: store}, nil
}

// resolveKey, store anahtarını sırasıyla flag/env'den, sonra store'un yanındaki
// .key dosyasından okur. İkisi de yoksa yeni anahtar üretip 0600 ile yazar.
func (o *options) resolveKey() ([]byte, error) {
	if o.storeKey != "" {
		return crypto.ParseKey(o.storeKey)
	}

	keyPath := o.store + ".key"
	raw, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		return crypto.ParseKey(strings.TrimSpace(string(raw)))
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read store key: %w", err)
	}

	hexKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(keyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	if err := os.WriteFile(keyPath, []byte(hexKey+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write store key: %w", err)
	}
	return crypto.ParseKey(hexKey)
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bankcli-tokens.db"
	}
	return filepath.Join(dir, "bankcli", "tokens.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// describe, client hatalarını kullanıcıya okunur hale getirir.
func describe(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrAuthRequired):
		return errors.New("session expired, run \"bankcli login\"")
	case tokencache.IsCorrupt(err):
		return errors.New("token store cannot be decrypted with this key, run \"bankcli logout\" and log in again")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return errors.New(apiErr.Message)
	}
	return err
}
