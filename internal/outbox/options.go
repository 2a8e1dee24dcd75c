package outbox

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	interval    time.Duration
	batchSize   int
	lockTimeout time.Duration
	maxAttempts int
	backoff     func(retries int) time.Duration
	now         func() time.Time
	workerID    string
}

func defaultOptions() *Config {
	return applyOptions(&Config{},
		WithInterval(5*time.Second),
		WithBatchSize(50),
		WithLockTimeout(time.Minute),
		WithMaxAttempts(10),
		WithExponentialBackoff(time.Second, 5*time.Minute),
		WithClock(time.Now),
		WithWorkerID(defaultWorkerID()),
	)
}

func applyOptions(cfg *Config, options ...Option) *Config {
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

type Option func(*Config)

// WithInterval sets the delay between two polls.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithBatchSize caps the number of messages claimed per poll.
func WithBatchSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithLockTimeout sets how long a claim may be held before the stale lock
// sweep hands the message to another worker. Zero disables the sweep.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.lockTimeout = d
	}
}

// WithMaxAttempts moves a message to the dead-letter state after n failed
// publishes. Zero retries forever.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.maxAttempts = n
	}
}

// WithBackoff provides the delay before the next attempt given the number of
// failed attempts so far.
func WithBackoff(backoff func(retries int) time.Duration) Option {
	return func(c *Config) {
		c.backoff = backoff
	}
}

// WithFixedBackoff waits the same amount of time after every failure.
func WithFixedBackoff(d time.Duration) Option {
	return WithBackoff(func(int) time.Duration {
		return d
	})
}

// WithExponentialBackoff doubles the delay with each failure, up to ceiling.
func WithExponentialBackoff(base, ceiling time.Duration) Option {
	return WithBackoff(func(retries int) time.Duration {
		if retries < 1 {
			retries = 1
		}
		if retries > 30 {
			return ceiling
		}
		d := base * time.Duration(1<<(retries-1))
		if ceiling > 0 && d > ceiling {
			return ceiling
		}
		return d
	})
}

func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}

func WithWorkerID(id string) Option {
	return func(c *Config) {
		if id != "" {
			c.workerID = id
		}
	}
}

func defaultWorkerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "outbox"
	}
	return fmt.Sprintf("%s-%d-%s", host, os.Getpid(), uuid.NewString()[:8])
}
