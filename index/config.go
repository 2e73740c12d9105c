package index

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// StoreKind selects the vector store backing an index.
type StoreKind string

const (
	// StoreFlat keeps vectors in a contiguous slice and scans them exhaustively.
	StoreFlat StoreKind = "flat"

	// StoreChromem keeps vectors in an in-memory chromem-go collection.
	StoreChromem StoreKind = "chromem"
)

// Config holds tunables for building an index.
type Config struct {
	// BatchSize is the number of texts sent to the embedder per request.
	BatchSize int

	// Concurrency is the number of batches embedded in parallel.
	Concurrency int

	// MaxRetries is the number of attempts per batch before the build fails.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff between attempts.
	RetryDelay time.Duration

	// RequestsPerSecond caps embedding requests. Zero means unlimited.
	RequestsPerSecond float64

	// Store selects the vector store.
	Store StoreKind
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:   32,
		Concurrency: max(1, runtime.NumCPU()/2),
		MaxRetries:  3,
		RetryDelay:  time.Second,
		Store:       StoreFlat,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return errors.New("index config: BatchSize must be at least 1")
	}
	if c.Concurrency < 1 {
		return errors.New("index config: Concurrency must be at least 1")
	}
	if c.MaxRetries < 1 {
		return errors.New("index config: MaxRetries must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("index config: RetryDelay cannot be negative")
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("index config: RequestsPerSecond cannot be negative")
	}
	switch c.Store {
	case StoreFlat, StoreChromem:
	default:
		return fmt.Errorf("index config: %w %q", ErrUnknownStore, c.Store)
	}
	return nil
}

type buildOptions struct {
	config         Config
	logger         *slog.Logger
	progress       io.Writer
	reportInterval int
}

// Option configures an index build.
type Option func(*buildOptions) error

// WithConfig replaces all tunables at once.
func WithConfig(cfg *Config) Option {
	return func(o *buildOptions) error {
		if cfg == nil {
			return errors.New("index config cannot be nil")
		}
		o.config = *cfg
		return nil
	}
}

// WithBatchSize sets the number of texts per embedding request.
func WithBatchSize(size int) Option {
	return func(o *buildOptions) error {
		o.config.BatchSize = size
		return nil
	}
}

// WithConcurrency sets the number of batches embedded in parallel.
func WithConcurrency(n int) Option {
	return func(o *buildOptions) error {
		o.config.Concurrency = n
		return nil
	}
}

// WithRetry sets the attempt count and base backoff delay per batch.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(o *buildOptions) error {
		o.config.MaxRetries = maxAttempts
		o.config.RetryDelay = baseDelay
		return nil
	}
}

// WithRateLimit caps embedding requests per second. Zero disables the limit.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(o *buildOptions) error {
		o.config.RequestsPerSecond = requestsPerSecond
		return nil
	}
}

// WithStore selects the vector store.
func WithStore(kind StoreKind) Option {
	return func(o *buildOptions) error {
		o.config.Store = kind
		return nil
	}
}

// WithProgress reports build progress to w every reportInterval texts.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(o *buildOptions) error {
		o.progress = w
		o.reportInterval = reportInterval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}
