package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// statusRecorder captures the status code a handler writes so the outer
// wrappers can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// routeLabel collapses per-request path segments (order ids, action ids) into
// their route pattern so metric cardinality stays bounded.
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/orders/"):
		return "/v1/orders/{id}/transitions"
	case strings.HasPrefix(path, "/v1/transitions/"):
		if strings.HasSuffix(path, "/decline") {
			return "/v1/transitions/{id}/decline"
		}
		if strings.HasSuffix(path, "/confirm") {
			return "/v1/transitions/{id}/confirm"
		}
		return "/v1/transitions/{id}"
	default:
		return path
	}
}

// WithMetrics records a count and duration per request under its route
// pattern.
func WithMetrics(next http.Handler, metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		metrics.RecordRequest(r.Context(), r.Method, routeLabel(r.URL.Path), rec.status, time.Since(start).Seconds())
	})
}

// WithLogging emits one structured line per request, carrying both the raw
// path and the collapsed route the metrics use.
func WithLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", routeLabel(r.URL.Path),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// WithRecovery converts panics into 500 responses.
func WithRecovery(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "error", rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
