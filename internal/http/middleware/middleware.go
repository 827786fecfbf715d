// Package middleware wraps the router with request logging and
// Prometheus-format request metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Metrics returns a middleware counting requests and timing them into set,
// labelled by method, route pattern and status.
func Metrics(set *metrics.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			// Deferred so requests aborted with a panic are still counted.
			defer func() {
				labels := `{method="` + method(r) + `",path="` + route(r) + `",status="` + strconv.Itoa(rec.Status()) + `"}`
				set.GetOrCreateCounter("http_requests_total" + labels).Inc()
				set.GetOrCreateHistogram("http_request_duration_seconds" + labels).UpdateDuration(start)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// Logger returns a middleware logging one line per finished request.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			defer func() {
				log.LogAttrs(r.Context(), slog.LevelInfo,
					joinSpace(r.Method, r.URL.Path, r.Proto),
					slog.String("from", r.RemoteAddr),
					slog.String("ua", r.UserAgent()),
					slog.Int("status", rec.Status()),
					slog.Duration("dur", time.Since(start)),
				)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// Chain applies mws to h so that the first one is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// route is the matched ServeMux pattern, which keeps label cardinality
// bounded regardless of the ids in the URL.
func route(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}

// method is the request method when it matched a route, "other" otherwise,
// so arbitrary client-sent methods cannot add new series.
func method(r *http.Request) string {
	if r.Pattern == "" {
		return "other"
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return r.Method
	default:
		return "other"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Status is the status sent so far; 200 if the handler wrote nothing.
func (w *statusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func joinSpace(elems ...string) string { return strings.Join(elems, " ") }
