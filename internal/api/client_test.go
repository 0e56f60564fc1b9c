// internal/api/client_test.go
package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:5000")

	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:5000", c.baseURL)
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 10*time.Minute, c.cacheTTL)
	assert.NotNil(t, c.breaker)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:5000/")
	assert.Equal(t, "http://localhost:5000", c.baseURL)
	assert.Equal(t, "http://localhost:5000/events/3788741.json", c.EventsURL("3788741"))
}

func TestNew_Options(t *testing.T) {
	c := New("http://x", WithTimeout(5*time.Second), WithCacheTTL(0), WithLogger(nil))
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Zero(t, c.cacheTTL)
	assert.NotNil(t, c.logger)
}

func TestHealthcheck_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL).Healthcheck(context.Background()))
}

func TestHealthcheck_ServerDown(t *testing.T) {
	c := New("http://localhost:59999") // unlikely to be listening
	assert.Error(t, c.Healthcheck(context.Background()))
}

func TestHealthcheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Error(t, New(server.URL).Healthcheck(context.Background()))
}

func TestFetchEvents_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/3788741.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[{"id":"a"}]`))
	}))
	defer server.Close()

	body, err := New(server.URL).FetchEvents(context.Background(), "3788741")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(body))
}

func TestFetchEvents_EmptyID(t *testing.T) {
	_, err := New("http://x").FetchEvents(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyMatchID)
}

func TestFetchEvents_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).FetchEvents(context.Background(), "1")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, err.Error(), "returned status 404")
}

func TestFetchEvents_CachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := New(server.URL, WithCacheTTL(time.Minute))
	c.now = func() time.Time { return now }

	ctx := context.Background()
	_, err := c.FetchEvents(ctx, "7")
	require.NoError(t, err)
	_, err = c.FetchEvents(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	now = now.Add(2 * time.Minute)
	_, err = c.FetchEvents(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "expired entry refetched")

	_, err = c.FetchEvents(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load(), "cache is per match")
}

func TestFetchEvents_NoCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, WithCacheTTL(0))
	for i := 0; i < 3; i++ {
		_, err := c.FetchEvents(context.Background(), "7")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchEvents_BreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.FetchEvents(ctx, "7")
		require.Error(t, err)
	}

	_, err := c.FetchEvents(ctx, "7")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), hits.Load(), "open breaker short-circuits")
}

func TestFetchEvents_NotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL)
	for i := 0; i < 5; i++ {
		_, err := c.FetchEvents(context.Background(), "404")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, c.breaker.State())
}
