// internal/api/client.go
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// ErrEmptyMatchID is returned when FetchEvents is called without a match.
var ErrEmptyMatchID = errors.New("match id is empty")

// StatusError reports a non-200 response from the event source.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

type cacheEntry struct {
	body    []byte
	fetched time.Time
}

// Client fetches match event feeds from an open-data style HTTP source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger

	mu       sync.Mutex
	cache    map[string]cacheEntry
	cacheTTL time.Duration
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCacheTTL sets how long fetched feeds are served from memory. Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) { c.cacheTTL = d }
}

// WithLogger sets the logger used for breaker state changes and cache hits.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		cache:      make(map[string]cacheEntry),
		cacheTTL:   10 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "event-feed",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// A 404 means the match does not exist, not that the source is down.
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn("Event feed circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Healthcheck checks if the event source is reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}

// EventsURL returns the feed location for a match.
func (c *Client) EventsURL(matchID string) string {
	return fmt.Sprintf("%s/events/%s.json", c.baseURL, matchID)
}

// FetchEvents returns the raw event feed of a match, from cache when fresh.
func (c *Client) FetchEvents(ctx context.Context, matchID string) ([]byte, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, ErrEmptyMatchID
	}

	if body, ok := c.cached(matchID); ok {
		c.logger.Debug("Serving event feed from cache", "match", matchID)
		return body, nil
	}

	res, err := c.breaker.Execute(func() (any, error) {
		return c.get(ctx, c.EventsURL(matchID))
	})
	if err != nil {
		return nil, fmt.Errorf("fetching events for match %s: %w", matchID, err)
	}
	body := res.([]byte)

	c.store(matchID, body)
	c.logger.Debug("Fetched event feed", "match", matchID, "bytes", len(body))
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (c *Client) cached(matchID string) ([]byte, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[matchID]
	if !ok || c.now().Sub(entry.fetched) > c.cacheTTL {
		return nil, false
	}
	return entry.body, true
}

func (c *Client) store(matchID string, body []byte) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[matchID] = cacheEntry{body: body, fetched: c.now()}
}
