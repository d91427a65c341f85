package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/observability"
)

// ObservabilityMiddleware adds OpenTelemetry tracing and metrics to HTTP requests
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Use route pattern instead of raw path to avoid high cardinality
			route := r.Pattern
			if route == "" {
				route = r.URL.Path
			}

			// Start a new span
			ctx, span := observability.StartSpan(r.Context(), route)
			defer span.End()

			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			// Create a response writer wrapper to capture status code
			rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rw, r.WithContext(ctx))
			duration := time.Since(start)

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, duration)
			observability.SetSpanAttributes(span, attribute.Int("http.status_code", rw.statusCode))

			// Mutations on the dashboard tables get their own counter.
			if rw.statusCode < 400 && isMutation(r.Method, r.URL.Path) {
				observability.RecordMutationMetric(ctx, metrics, mutationTable(r.URL.Path), r.Method)
			}
		})
	}
}

func isMutation(method, path string) bool {
	switch method {
	case http.MethodPatch, http.MethodDelete:
	case http.MethodPost:
		return strings.HasPrefix(path, "/api/update-service-lines")
	default:
		return false
	}
	return strings.HasPrefix(path, "/api/update-") || strings.HasPrefix(path, "/api/delete-")
}

func mutationTable(path string) string {
	switch {
	case strings.Contains(path, "master-data"):
		return "master_data"
	case strings.Contains(path, "provider-alert"):
		return "provider_alerts"
	case strings.Contains(path, "bill"):
		return "bills"
	default:
		return "mixed"
	}
}

// statusWriter wraps http.ResponseWriter to capture status code
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
