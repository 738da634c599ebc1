package virustotal

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/vtmaltego/pkg/buildinfo"
	"github.com/matzehuels/vtmaltego/pkg/cache"
	"github.com/matzehuels/vtmaltego/pkg/errors"
	"github.com/matzehuels/vtmaltego/pkg/graph"
	"github.com/matzehuels/vtmaltego/pkg/httputil"
	"github.com/matzehuels/vtmaltego/pkg/observability"
)

const (
	// DefaultBaseURL is the VirusTotal API v3 root.
	DefaultBaseURL = "https://www.virustotal.com/api/v3"

	// APIKeyEnv is the environment variable holding the API key.
	APIKeyEnv = "VIRUSTOTAL_API_KEY"

	// PublicRateLimit is the public API quota in requests per minute.
	PublicRateLimit = 4.0

	// DefaultCacheTTL is how long cached URL objects stay valid.
	DefaultCacheTTL = 24 * time.Hour

	apiKeyHeader = "x-apikey"
)

// Client fetches graphs and URL objects from VirusTotal.
// A Client is safe for sequential use; the exporter never issues
// concurrent requests.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
	timeout    time.Duration
	attempts   int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey overrides the key read from VIRUSTOTAL_API_KEY.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL points the client at another API root (tests, proxies).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default
// (no timeout).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit spaces requests to perMinute requests per minute.
// Zero or negative disables throttling.
func WithRateLimit(perMinute float64) Option {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perMinute/60), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithRetries allows n additional attempts for transport errors and 5xx
// responses, with exponential backoff.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.attempts = max(n, 0) + 1
	}
}

// WithCache caches URL objects in cc for ttl.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cc != nil {
			c.cache = cc
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates a client. The API key defaults to $VIRUSTOTAL_API_KEY.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{},
		baseURL:    DefaultBaseURL,
		apiKey:     os.Getenv(APIKeyEnv),
		cache:      cache.NewNullCache(),
		cacheTTL:   DefaultCacheTTL,
		attempts:   1,
		retryDelay: httputil.DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// GetGraph fetches a graph by ID and returns its attributes.
// Graphs are never cached since they can be edited at any time.
func (c *Client) GetGraph(ctx context.Context, id string) (*graph.Graph, error) {
	if err := errors.ValidateIdentifier("graph", id); err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "/graphs/"+id)
	if err != nil {
		return nil, err
	}
	return graph.Decode(bytes.NewReader(body))
}

// GetFullURL resolves a URL identifier (the SHA-256 used as a URL node's
// entity ID) into the URL string and its title.
func (c *Client) GetFullURL(ctx context.Context, id string) (*graph.URL, error) {
	if err := errors.ValidateIdentifier("url", id); err != nil {
		return nil, err
	}

	key := cache.Key("vt", "urls", id)
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		if u, err := graph.DecodeURL(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, key)
			return u, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, key)

	body, err := c.get(ctx, "/urls/"+id)
	if err != nil {
		return nil, err
	}
	u, err := graph.DecodeURL(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(body))
	}
	return u, nil
}

// get performs a GET against path, retrying as configured, and returns
// the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "%s is not set", APIKeyEnv)
	}

	var body []byte
	err := httputil.Retry(ctx, c.attempts, c.retryDelay, func() error {
		var err error
		body, err = c.do(ctx, path)
		return err
	})
	if err != nil {
		var re *httputil.RetryableError
		if stderrors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", path)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, path); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", path))
	}
	return body, nil
}

// checkStatus maps unsuccessful statuses (>= 400) to coded errors.
func checkStatus(resp *http.Response, path string) error {
	code := resp.StatusCode
	if code < http.StatusBadRequest {
		return nil
	}

	se := &StatusError{StatusCode: code}
	var body apiErrorBody
	if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body) == nil && body.Error != nil {
		se.APICode = body.Error.Code
		se.Message = body.Error.Message
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.Wrap(errors.ErrCodeUnauthorized, se, "GET %s", path)
	case code == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, se, "GET %s", path)
	case code == http.StatusTooManyRequests:
		return errors.Wrap(errors.ErrCodeRateLimited, se, "GET %s", path)
	case code >= 500:
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, se, "GET %s", path))
	default:
		return errors.Wrap(errors.ErrCodeNetwork, se, "GET %s", path)
	}
}
