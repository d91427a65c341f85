package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/medicaid-rates-backend/internal/api/middleware"
)

type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (s *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.entries[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (s *stubCache) Set(_ context.Context, key string, value []byte, _ int) error {
	s.entries[key] = value
	return nil
}

func (s *stubCache) Delete(_ context.Context, key string) error {
	delete(s.entries, key)
	return nil
}

func (s *stubCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.entries[key]
	return ok, nil
}

// rateBackend serves a comparison feed backed by a single mutable rate, the
// way the real handlers sit behind the cache middleware.
func rateBackend(rate *string, patchStatus int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state-payment-comparison", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[{"rate":%q}]}`, *rate)
	})
	mux.HandleFunc("PATCH /api/update-master-data", func(w http.ResponseWriter, r *http.Request) {
		if patchStatus >= 400 {
			w.WriteHeader(patchStatus)
			return
		}
		*rate = "$55.00"
		fmt.Fprint(w, `{"data":{"rate":"$55.00"}}`)
	})
	return mux
}

func doRequest(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCacheMiddleware_UpdateExpiresComparisonCache(t *testing.T) {
	rate := "$25.00"
	handler := middleware.NewCacheMiddleware(newStubCache(), nil).
		Middleware(rateBackend(&rate, http.StatusOK))

	first := doRequest(handler, "GET", "/api/state-payment-comparison")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Contains(t, first.Body.String(), "$25.00")

	second := doRequest(handler, "GET", "/api/state-payment-comparison")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Contains(t, second.Body.String(), "$25.00")

	patch := doRequest(handler, "PATCH", "/api/update-master-data")
	require.Equal(t, http.StatusOK, patch.Code)

	// The refetch after an edit must see the new rate, not the cached row
	third := doRequest(handler, "GET", "/api/state-payment-comparison")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Contains(t, third.Body.String(), "$55.00")
}

func TestCacheMiddleware_FailedMutationKeepsCache(t *testing.T) {
	rate := "$25.00"
	handler := middleware.NewCacheMiddleware(newStubCache(), nil).
		Middleware(rateBackend(&rate, http.StatusBadRequest))

	doRequest(handler, "GET", "/api/state-payment-comparison")
	doRequest(handler, "PATCH", "/api/update-master-data")

	refetch := doRequest(handler, "GET", "/api/state-payment-comparison")
	assert.Equal(t, "HIT", refetch.Header().Get("X-Cache"))
	assert.Contains(t, refetch.Body.String(), "$25.00")
}

func TestCacheMiddleware_UnrelatedMutationKeepsFeedCache(t *testing.T) {
	cache := newStubCache()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rate-updates", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"count":0}`)
	})
	mux.HandleFunc("PATCH /api/update-master-data", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(mux)

	doRequest(handler, "GET", "/api/rate-updates")
	doRequest(handler, "PATCH", "/api/update-master-data")

	refetch := doRequest(handler, "GET", "/api/rate-updates")
	assert.Equal(t, "HIT", refetch.Header().Get("X-Cache"))
}

func TestCacheMiddleware_QueryStringsCacheSeparately(t *testing.T) {
	handler := middleware.NewCacheMiddleware(newStubCache(), nil).
		Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"state":%q}`, r.URL.Query().Get("state"))
		}))

	ohio := doRequest(handler, "GET", "/api/state-payment-comparison?state=OHIO")
	alaska := doRequest(handler, "GET", "/api/state-payment-comparison?state=ALASKA")

	assert.Equal(t, "MISS", ohio.Header().Get("X-Cache"))
	assert.Equal(t, "MISS", alaska.Header().Get("X-Cache"))
	assert.True(t, strings.Contains(alaska.Body.String(), "ALASKA"))
}
