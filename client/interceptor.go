package client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tiersept/example-app/models"
)

// DefaultRefreshBuffer, access token'ın süresi dolmadan bu kadar önce yenilenir.
const DefaultRefreshBuffer = time.Minute

// refreshTimeout, paylaşılan refresh çağrısının üst süresi.
const refreshTimeout = 15 * time.Second

// publicPaths, token eklenmeden geçen route'lar.
var publicPaths = map[string]bool{
	"/login":  true,
	"/logout": true,
}

// authTransport, her isteğe geçerli bir access token ekleyen RoundTripper.
//
// Akış:
//  1. public path → olduğu gibi gönder
//  2. cache boş → Authorization olmadan gönder
//  3. token süresi buffer'dan uzaksa → ekle, gönder
//  4. değilse refresh: başarılı → cache'i güncelle, yeni token'la gönder;
//     başarısız → cache'i temizle, istek gönderilmeden ErrAuthRequired
type authTransport struct {
	client *Client
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if publicPaths[t.client.route(req.URL.Path)] {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	pair, err := t.client.cache.Get(ctx)
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}
	if pair == nil {
		return t.base.RoundTrip(req)
	}

	token := pair.Token
	if t.client.expiring(token) {
		fresh, err := t.client.refreshShared(ctx, pair.RefreshToken)
		if err != nil {
			closeBody(req)
			return nil, err
		}
		token = fresh.Token
	}

	// RoundTripper orijinal request'i değiştirmemeli.
	out := req.Clone(ctx)
	out.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(out)
}

// route, istek path'inden baseURL'in path önekini atar.
// "http://host/api" ile "/api/login" → "/login".
func (c *Client) route(path string) string {
	if c.basePath == "" {
		return path
	}
	if rest, ok := strings.CutPrefix(path, c.basePath); ok && (rest == "" || rest[0] == '/') {
		return rest
	}
	return path
}

// closeBody, gönderilmeyen isteğin body'sini kapatır (RoundTripper kontratı).
func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}

// expiring, token'ın exp'i now+buffer'dan önceyse true döner.
//
// İmza doğrulanmaz: client secret'ı bilmez, sadece exp'i okur.
// Çözülemeyen token veya exp'siz token süresi dolmuş sayılır.
func (c *Client) expiring(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(c.now().Add(c.buffer))
}

// refreshShared, eşzamanlı refresh'leri tek bir çağrıda birleştirir.
// Tüm bekleyenler aynı sonucu alır. Hata durumunda cache temizlenir ve
// ErrAuthRequired döner.
func (c *Client) refreshShared(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		// İlk çağıranın iptali diğer bekleyenleri düşürmesin.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		// Az önce tamamlanmış bir refresh cache'i güncellemiş olabilir.
		if cached, err := c.cache.Get(rctx); err == nil && cached != nil && !c.expiring(cached.Token) {
			return cached, nil
		} else if err == nil && cached != nil {
			refreshToken = cached.RefreshToken
		}

		pair, err := c.exchange(rctx, refreshToken)
		if err != nil {
			log.Printf("[client] token refresh failed: %v", err)
			if clearErr := c.cache.Clear(rctx); clearErr != nil {
				log.Printf("[client] failed to clear token cache: %v", clearErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrAuthRequired, err)
		}

		if err := c.cache.Set(rctx, pair); err != nil {
			return nil, fmt.Errorf("failed to store refreshed tokens: %w", err)
		}
		return pair, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TokenPair), nil
}

// exchange, refresh token'ı POST /refresh-token ile yeni bir çifte çevirir.
// Interceptor'dan geçmez.
func (c *Client) exchange(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token cached")
	}

	var pair models.TokenPair
	if err := c.send(ctx, c.plain, http.MethodPost, "/refresh-token", nil, models.RefreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return nil, err
	}
	if !pair.Complete() {
		return nil, fmt.Errorf("refresh response is missing a token")
	}
	return &pair, nil
}
