package assessrec

import (
	"time"

	"go.uber.org/zap"
)

// clientConfig collects Client construction settings.
type clientConfig struct {
	catalogPath   string
	items         []Item
	fetchDisabled bool
	fetchTimeout  time.Duration
	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	testCases     []TestCase
	logger        *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithCatalogFile loads the catalog from a JSON file.
func WithCatalogFile(path string) Option {
	return func(c *clientConfig) { c.catalogPath = path }
}

// WithItems supplies catalog items directly.
func WithItems(items []Item) Option {
	return func(c *clientConfig) { c.items = items }
}

// WithoutFetch disables URL content fetching; url arguments are ignored.
func WithoutFetch() Option {
	return func(c *clientConfig) { c.fetchDisabled = true }
}

// WithFetchTimeout bounds a single URL fetch attempt.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.fetchTimeout = timeout }
}

// WithRedisCache caches fetched URL content in Redis.
func WithRedisCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithTestCases supplies the labeled relevance set for Evaluate.
func WithTestCases(cases []TestCase) Option {
	return func(c *clientConfig) { c.testCases = cases }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
