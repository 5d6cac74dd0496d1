package tfidx

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "valkey", "redis" or "postgres"
	addrs      []string
	password   string
	standalone bool
	dsn        string

	corpusSize       int
	keyPrefix        string
	loadTimeout      time.Duration
	retryInterval    time.Duration
	fetchConcurrency int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to read the snapshot from Valkey.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to read the snapshot from Redis.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres configures the client to read the snapshot from PostgreSQL.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithCorpusSize sets the expected number of documents. Default: 2500.
func WithCorpusSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpusSize = n
	})
}

// WithKeyPrefix sets the Valkey/Redis key prefix. Default: "tfidx:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLoadTimeout bounds a single background load attempt.
func WithLoadTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.loadTimeout = d
	})
}

// WithRetryInterval sets the pause between failed background loads.
// Zero disables retries after the first attempt.
func WithRetryInterval(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.retryInterval = d
	})
}

// WithFetchConcurrency limits parallel field fetches during a load.
func WithFetchConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchConcurrency = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
