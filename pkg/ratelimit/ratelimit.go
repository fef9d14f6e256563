// Package ratelimit: LoginLimiter: POST /login için IP bazlı brute-force koruması.
//
// Tasarım:
//   - Her IP için sabit pencere (fixed window) içinde deneme sayısı tutulur.
//   - Pencere içinde maxAttempts aşılırsa istek reddedilir (429).
//   - Başarılı login sonrası Reset() ile sayaç sıfırlanır.
//   - Arka plan goroutine'i süresi dolmuş bucket'ları temizler.
//
// pkg/ratelimit proje içi hiçbir pakete bağımlı değildir (leaf dependency),
// böylece handlers ile middleware arasında import cycle oluşmaz.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// bucket, bir IP için sayaç ve pencere başlangıcı.
type bucket struct {
	count       int
	windowStart time.Time
}

// LoginLimiter, IP bazlı login rate limiter.
//
//	limiter := ratelimit.NewLoginLimiter(5, 2*time.Minute)
//	defer limiter.Stop()
//	if !limiter.Allow(ip) { return 429 }
//	limiter.Reset(ip) // başarılı login'de
type LoginLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewLoginLimiter, limiter oluşturur ve temizleme goroutine'ini başlatır.
// maxAttempts <= 0 ise limiter hiçbir isteği engellemez.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	rl := &LoginLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, IP'nin yeni bir login denemesi yapıp yapamayacağını söyler.
// Her çağrı sayacı artırır: deneme başarılı olsun olmasın.
func (rl *LoginLimiter) Allow(ip string) bool {
	if rl.maxAttempts <= 0 {
		return true
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.windowStart) > rl.window {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= rl.maxAttempts
}

// Reset, başarılı login sonrası IP sayacını siler.
func (rl *LoginLimiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, ip)
}

// RetryAfterSeconds, Retry-After header'ı için kalan bekleme süresi (saniye).
func (rl *LoginLimiter) RetryAfterSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		return 0
	}

	remaining := rl.window - rl.now().Sub(b.windowStart)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Stop, temizleme goroutine'ini durdurur. Birden fazla çağrılabilir.
func (rl *LoginLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *LoginLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// ExtractIP, request'ten client IP'sini çıkarır.
// Öncelik: X-Forwarded-For (ilk değer) → X-Real-IP → RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir hale getirir: 120 → "2 minute(s)".
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
