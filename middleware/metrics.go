package middleware

import (
	"net/http"
	"time"

	"github.com/tiersept/example-app/pkg/metrics"
)

// unmatchedRoute, hiçbir pattern'e uymayan istekler için etiket.
// Ham path kullanılmaz: label kardinalitesi sınırsız büyür.
const unmatchedRoute = "unmatched"

// statusRecorder, handler'ın yazdığı status code'u yakalar.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Metrics, ServeMux'u sararak her isteğin route/method/status/süresini kaydeder.
//
// Route etiketi ServeMux'un eşleştirdiği pattern'dir (r.Pattern); mux
// ServeHTTP sırasında bunu aynı request üzerine yazar.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			m.ObserveRequest(route, r.Method, rec.status, time.Since(start))
		})
	}
}
