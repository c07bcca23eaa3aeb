package http_test

import (
	"context"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolindex/toolindex"
	toolhttp "github.com/toolindex/toolindex/http"
)

func newTestClient(opts ...toolhttp.Option) *toolhttp.Client {
	base := []toolhttp.Option{
		toolhttp.WithRequestDelay(0),
		toolhttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}),
	}
	return toolhttp.NewClient(append(base, opts...)...)
}

func TestClient_FetchReturnsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	client := newTestClient()
	html, err := client.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "hello")
}

func TestClient_FetchSetsBrowserHeaders(t *testing.T) {
	t.Parallel()

	var ua, accept string
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	client := newTestClient()
	_, err := client.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
	assert.Contains(t, accept, "text/html")
}

func TestClient_FetchRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(gohttp.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	client := newTestClient()
	html, err := client.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "recovered")
	assert.Equal(t, int64(3), calls.Load())
}

func TestClient_FetchExhaustionReturnsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.WriteHeader(gohttp.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient()
	_, err := client.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, toolindex.ETRANSIENT, toolindex.ErrorCode(err))
}

func TestClient_FetchDoesNotRetryNotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		calls.Add(1)
		w.WriteHeader(gohttp.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient()
	_, err := client.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load(), "4xx responses should not be retried")
}

func TestClient_FetchRetriesRateLimited(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(gohttp.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := newTestClient()
	html, err := client.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "ok", html)
}

func TestClient_FetchHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client := newTestClient()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestClient_FetchDecodesNonUTF8(t *testing.T) {
	t.Parallel()

	// "café" encoded as ISO-8859-1: é is 0xE9.
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
	}))
	defer srv.Close()

	client := newTestClient()
	html, err := client.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "café", html)
}
