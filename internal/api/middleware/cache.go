package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ratewatch/medicaid-rates-backend/internal/domain/providers"
	"github.com/ratewatch/medicaid-rates-backend/internal/infrastructure/observability"
)

// CacheConfig holds per-route response caching settings. Group names tie a
// cached feed to the mutation endpoints that edit its underlying table, so a
// successful edit expires the feed immediately instead of waiting out the TTL.
type CacheConfig struct {
	TTLSeconds int
	Group      string
	Enabled    bool
}

// cacheGroups maps each mutation path to the cache groups it stales.
// delete-master-data dispatches on a table field, so it touches all three.
var cacheGroups = map[string][]string{
	"/api/update-master-data":    {"rates"},
	"/api/delete-master-data":    {"rates", "alerts", "bills"},
	"/api/update-service-lines":  {"alerts", "bills"},
	"/api/update-provider-alert": {"alerts"},
	"/api/update-bill":           {"bills"},
	"/api/service-categories":    {"categories"},
}

// CacheMiddleware caches GET responses for the read-heavy dashboard feeds.
// Every cache key carries its group's generation number; bumping the
// generation on a mutation orphans the old entries, which then age out on
// their own TTL.
type CacheMiddleware struct {
	cache        providers.CacheProvider
	metrics      *observability.Metrics
	routeConfigs map[string]CacheConfig
}

// NewCacheMiddleware creates a new cache middleware
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics) *CacheMiddleware {
	return &CacheMiddleware{
		cache:   cache,
		metrics: metrics,
		routeConfigs: map[string]CacheConfig{
			"/api/state-payment-comparison": {TTLSeconds: 300, Group: "rates", Enabled: true},
			"/api/comments_table":           {TTLSeconds: 300, Group: "rates", Enabled: true},
			"/api/rate-updates":             {TTLSeconds: 600, Group: "alerts", Enabled: true},
			"/api/legislative-updates":      {TTLSeconds: 600, Group: "bills", Enabled: true},
			"/api/service-categories":       {TTLSeconds: 1800, Group: "categories", Enabled: true},
		},
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodGet {
			m.serveMutation(w, r, next)
			return
		}

		config, cached := m.routeConfigs[r.URL.Path]
		if !cached || !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		cacheKey := m.cacheKey(r, config.Group)

		if body, err := m.cache.Get(r.Context(), cacheKey); err == nil {
			m.recordLookup(r, true)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		m.recordLookup(r, false)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}

		next.ServeHTTP(recorder, r)

		// Only cache successful responses
		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(r.Context(), cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache response")
			}
		}
	})
}

// serveMutation runs a non-GET request and, when it succeeds, bumps the
// generation of every cache group the endpoint writes to. Readers pick up
// the new generation on their next request, so a PATCHed rate shows up on
// the very next fetch.
func (m *CacheMiddleware) serveMutation(w http.ResponseWriter, r *http.Request, next http.Handler) {
	groups := cacheGroups[r.URL.Path]
	if len(groups) == 0 {
		next.ServeHTTP(w, r)
		return
	}

	sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
	next.ServeHTTP(sw, r)

	if sw.statusCode >= 400 {
		return
	}
	for _, group := range groups {
		if err := m.bumpGeneration(r.Context(), group); err != nil {
			log.Warn().Err(err).Str("group", group).Msg("Failed to expire cache group")
		}
	}
}

// generation returns the current generation counter of a cache group.
func (m *CacheMiddleware) generation(r *http.Request, group string) int {
	raw, err := m.cache.Get(r.Context(), generationKey(group))
	if err != nil {
		return 0
	}
	gen, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0
	}
	return gen
}

// bumpGeneration advances a group's counter. The counter never expires; the
// entries written under older generations simply become unreachable.
func (m *CacheMiddleware) bumpGeneration(ctx context.Context, group string) error {
	next := 1
	if raw, err := m.cache.Get(ctx, generationKey(group)); err == nil {
		if gen, convErr := strconv.Atoi(string(raw)); convErr == nil {
			next = gen + 1
		}
	}
	return m.cache.Set(ctx, generationKey(group), []byte(strconv.Itoa(next)), 0)
}

func generationKey(group string) string {
	return "http:cache:gen:" + group
}

// cacheKey hashes method, path, query, and the group generation.
func (m *CacheMiddleware) cacheKey(r *http.Request, group string) string {
	key := fmt.Sprintf("%s:%s:g%d", r.Method, r.URL.Path, m.generation(r, group))
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}

	hash := sha256.Sum256([]byte(key))
	return "http:cache:" + hex.EncodeToString(hash[:])
}

func (m *CacheMiddleware) recordLookup(r *http.Request, hit bool) {
	if m.metrics == nil {
		return
	}
	observability.RecordCacheMetric(r.Context(), m.metrics, r.URL.Path, hit)
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}

	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
