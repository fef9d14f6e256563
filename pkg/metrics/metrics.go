// Package metrics: Prometheus metrikleri.
//
// Global default registry yerine her Metrics kendi registry'sini taşır;
// testler birbirini etkilemeden yeni instance oluşturabilir.
// Tüm method'lar nil receiver ile güvenle çağrılabilir: metrics
// verilmemiş bir service/middleware no-op davranır.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Guard kararları: middleware.AuthMiddleware tarafından raporlanır.
const (
	GuardAuthorized      = "authorized"
	GuardUnauthenticated = "unauthenticated"
	GuardForbidden       = "forbidden"
)

// Token üretim sebepleri.
const (
	IssueLogin   = "login"
	IssueRefresh = "refresh"
)

// Metrics, uygulamanın tüm Prometheus collector'larını tutar.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	guardDecisions *prometheus.CounterVec
	tokensIssued   *prometheus.CounterVec
	loginFailures  prometheus.Counter
}

// New, collector'ları oluşturur ve private registry'ye kaydeder.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_auth_guard_decisions_total",
			Help: "Access-token guard decisions on protected routes.",
		}, []string{"outcome"}),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_tokens_issued_total",
			Help: "Token pairs issued, by reason.",
		}, []string{"reason"}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bank_login_failures_total",
			Help: "Rejected login attempts (bad credentials).",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.guardDecisions,
		m.tokensIssued,
		m.loginFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler, /metrics endpoint'i için exposition handler'ı döner.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry, testlerde collector değerlerini okumak için.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest, tamamlanan bir HTTP isteğini kaydeder.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// GuardDecision, guard sonucunu sayar (GuardAuthorized, GuardUnauthenticated, GuardForbidden).
func (m *Metrics) GuardDecision(outcome string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(outcome).Inc()
}

// TokensIssued, başarılı bir TokenPair üretimini sayar.
func (m *Metrics) TokensIssued(reason string) {
	if m == nil {
		return
	}
	m.tokensIssued.WithLabelValues(reason).Inc()
}

// LoginFailed, hatalı credential ile yapılan login denemesini sayar.
func (m *Metrics) LoginFailed() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}
