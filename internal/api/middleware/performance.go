package middleware

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
)

// gzipPool reuses writers across requests. Level 5 trades a little ratio for
// latency, which suits JSON feeds of a few hundred KB.
var gzipPool = sync.Pool{
	New: func() interface{} {
		gz, _ := gzip.NewWriterLevel(io.Discard, 5)
		return gz
	},
}

// Compression gzips responses for clients that accept it.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipPool.Get().(*gzip.Writer)
		defer gzipPool.Put(gz)
		gz.Reset(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length") // length changes under compression

		next.ServeHTTP(&gzipWriter{ResponseWriter: w, gz: gz}, r)
	})
}

type gzipWriter struct {
	http.ResponseWriter
	gz io.Writer
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	return w.gz.Write(b)
}

func (w *gzipWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("ResponseWriter does not support Hijack")
}

// ETag buffers successful GET responses, hashes the body, and answers 304
// when the client already holds the current version. The dashboard polls its
// feeds, so most of those polls collapse to an empty response.
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		rec := &etagRecorder{ResponseWriter: w, buffer: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		if rec.statusCode != 0 && rec.statusCode != http.StatusOK {
			w.WriteHeader(rec.statusCode)
			w.Write(rec.buffer.Bytes())
			return
		}

		sum := sha256.Sum256(rec.buffer.Bytes())
		etag := `"` + hex.EncodeToString(sum[:16]) + `"`
		w.Header().Set("ETag", etag)

		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Cache-Control", "private, must-revalidate")
		if rec.statusCode > 0 {
			w.WriteHeader(rec.statusCode)
		}
		w.Write(rec.buffer.Bytes())
	})
}

// etagRecorder holds back the response until the hash is known.
type etagRecorder struct {
	http.ResponseWriter
	buffer     *bytes.Buffer
	statusCode int
}

func (r *etagRecorder) Write(b []byte) (int, error) {
	return r.buffer.Write(b)
}

func (r *etagRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
}

// cachePolicies pairs path prefixes with browser cache lifetimes. The
// taxonomy barely changes; the feeds refresh on an ingestion cadence; the
// comparison table is editable and so gets the shortest window.
var cachePolicies = []struct {
	prefix string
	value  string
}{
	{"/api/service-categories", "public, max-age=600, must-revalidate"},
	{"/api/rate-updates", "public, max-age=300, must-revalidate"},
	{"/api/legislative-updates", "public, max-age=300, must-revalidate"},
	{"/api/state-payment-comparison", "public, max-age=120, must-revalidate"},
}

// CacheControl stamps a Cache-Control header chosen by path prefix.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := "private, no-cache, must-revalidate"
		for _, policy := range cachePolicies {
			if strings.HasPrefix(r.URL.Path, policy.prefix) {
				header = policy.value
				break
			}
		}
		w.Header().Set("Cache-Control", header)

		next.ServeHTTP(w, r)
	})
}

// ResponseOptimization chains CacheControl, ETag, and Compression.
func ResponseOptimization(next http.Handler) http.Handler {
	return CacheControl(ETag(Compression(next)))
}
