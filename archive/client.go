package archive

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/archiver-cli/archiver/constant"
	"github.com/archiver-cli/archiver/internal/cache"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/network"
	"github.com/archiver-cli/archiver/where"
	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// Limiter hands out request permits. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Client talks to the archive. It is safe for concurrent use.
type Client struct {
	baseURL     string
	callback    string
	rows        int
	maxAttempts int
	httpClient  *http.Client
	limiter     Limiter
	newBackOff  func() backoff.BackOff
	details     DetailsCache
}

// DetailsCache keeps item details between runs. *cache.Store satisfies it.
type DetailsCache interface {
	Read(key string, target any) bool
	Write(key string, data any) error
}

type Option func(*Client)

// WithBaseURL points the client at another archive host, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLimiter(limiter Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithBackOff replaces the delay policy between collection search attempts.
// The factory is called once per search.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = factory
	}
}

// WithMaxAttempts bounds the number of collection search attempts, including the first one.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithRows(rows int) Option {
	return func(c *Client) {
		if rows > 0 {
			c.rows = rows
		}
	}
}

func WithCallback(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.callback = name
		}
	}
}

// WithDetailsCache serves item details from the cache while they are fresh.
func WithDetailsCache(details DetailsCache) Option {
	return func(c *Client) {
		c.details = details
	}
}

// NewClient creates a client with the built-in defaults, overridden by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     constant.ArchiveBaseURL,
		callback:    constant.SearchCallback,
		rows:        constant.SearchRows,
		maxAttempts: 3,
		httpClient:  network.Client,
		limiter:     rate.NewLimiter(rate.Limit(2), 1),
		newBackOff:  NewBackOff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewFromConfig creates a client configured from the archive and fetch sections of the config.
func NewFromConfig(opts ...Option) *Client {
	rps := viper.GetFloat64(key.FetchRequestsPerSecond)
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	burst := viper.GetInt(key.FetchBurst)
	if burst < 1 {
		burst = 1
	}

	base := []Option{
		WithBaseURL(viper.GetString(key.ArchiveBaseURL)),
		WithCallback(viper.GetString(key.ArchiveCallback)),
		WithRows(viper.GetInt(key.ArchiveSearchRows)),
		WithMaxAttempts(viper.GetInt(key.FetchMaxAttempts)),
		WithLimiter(rate.NewLimiter(limit, burst)),
	}

	if hours := viper.GetInt(key.ArchiveDetailsCacheHours); hours > 0 {
		store := cache.New(where.Details(), time.Duration(hours)*time.Hour)
		go store.CollectGarbage()
		base = append(base, WithDetailsCache(store))
	}

	return NewClient(append(base, opts...)...)
}

// NewBackOff is the default delay policy: 1s, 2s, 4s and so on, without jitter.
func NewBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
