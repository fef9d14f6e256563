// Package client, banking API için Go client'ıdır.
//
// Her korumalı istek authTransport'tan geçer: geçerli access token eklenir,
// süresi dolmak üzereyse önce refresh yapılır. Token'lar tokencache.Cache
// içinde saklanır.
//
//	c, _ := client.New("http://localhost:3001", tokencache.NewMemory())
//	_, _ = c.Login(ctx, "test@test.test", "password@123")
//	accounts, _ := c.Accounts(ctx)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tiersept/example-app/client/tokencache"
	"github.com/tiersept/example-app/models"
	"github.com/tiersept/example-app/pkg"
)

// maxResponseBytes, yanıt gövdesi üst sınırı.
const maxResponseBytes = 4 << 20

// Client, API client'ı. Goroutine-safe.
type Client struct {
	baseURL  string
	basePath string // baseURL'in path kısmı, ör: "/api"; yoksa ""
	cache    tokencache.Cache
	buffer   time.Duration
	now      func() time.Time

	authed *http.Client // authTransport üzerinden
	plain  *http.Client // doğrudan base transport
	group  singleflight.Group
}

// Option, Client ayarı.
type Option func(*Client)

// WithTransport, alttaki RoundTripper'ı değiştirir (varsayılan http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.plain.Transport = rt
	}
}

// WithTimeout, istek başına toplam süre sınırı.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.plain.Timeout = d
	}
}

// WithRefreshBuffer, proaktif refresh penceresini değiştirir.
func WithRefreshBuffer(d time.Duration) Option {
	return func(c *Client) {
		c.buffer = d
	}
}

// WithClock, zaman kaynağını değiştirir (testler için).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New, baseURL'e bağlanan bir client oluşturur.
func New(baseURL string, cache tokencache.Cache, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if cache == nil {
		return nil, errors.New("token cache is required")
	}

	c := &Client{
		baseURL:  strings.TrimRight(u.String(), "/"),
		basePath: strings.TrimRight(u.Path, "/"),
		cache:    cache,
		buffer:   DefaultRefreshBuffer,
		now:      time.Now,
		plain:    &http.Client{Transport: http.DefaultTransport, Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.authed = &http.Client{
		Transport: &authTransport{client: c, base: c.plain.Transport},
		Timeout:   c.plain.Timeout,
	}
	return c, nil
}

// Login, credential'ları gönderir ve dönen çifti cache'e yazar.
func (c *Client) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.send(ctx, c.authed, http.MethodPost, "/login", nil, req, &pair); err != nil {
		return nil, err
	}
	if !pair.Complete() {
		return nil, errors.New("login response is missing a token")
	}

	if err := c.cache.Set(ctx, &pair); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}
	return &pair, nil
}

// Logout, yerel token'ları siler. Sunucu tarafında oturum olmadığı için
// ağ çağrısı yapılmaz.
func (c *Client) Logout(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// Refresh, cache'teki refresh token'la hemen yeni bir çift alır.
// Cache boşsa ErrAuthRequired.
func (c *Client) Refresh(ctx context.Context) (*models.TokenPair, error) {
	pair, err := c.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, ErrAuthRequired
	}

	fresh, err := c.exchange(ctx, pair.RefreshToken)
	if err != nil {
		if clearErr := c.cache.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthRequired, err)
	}
	if err := c.cache.Set(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Accounts, GET /accounts.
func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.send(ctx, c.authed, http.MethodGet, "/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Cards, GET /cards.
func (c *Client) Cards(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := c.send(ctx, c.authed, http.MethodGet, "/cards", nil, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// TransactionPage, bir sayfa hareket ve sunucunun bildirdiği toplam.
type TransactionPage struct {
	Items []models.Transaction
	Total int
}

// Transactions, GET /transactions. Boş alanlar sunucu varsayılanlarını kullanır.
func (c *Client) Transactions(ctx context.Context, q models.TransactionQuery) (*TransactionPage, error) {
	query := url.Values{}
	for k, v := range q.Values() {
		query.Set(k, v)
	}

	page := &TransactionPage{}
	header := http.Header{}
	if err := c.send(ctx, c.authed, http.MethodGet, "/transactions", query, nil, &page.Items, header); err != nil {
		return nil, err
	}

	page.Total = len(page.Items)
	if raw := header.Get("X-Total-Count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Total = n
		}
	}
	return page, nil
}

// send, JSON isteği gönderir ve 2xx yanıtı out'a çözer.
// 2xx dışı yanıt *APIError olur. respHeader verilirse yanıt header'ları kopyalanır.
func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, query url.Values, body, out any, respHeader ...http.Header) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		// *url.Error içinden ErrAuthRequired'ı açığa çıkar.
		if errors.Is(err, ErrAuthRequired) {
			return ErrAuthRequired
		}
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody pkg.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	for _, h := range respHeader {
		for k, v := range resp.Header {
			h[k] = v
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
