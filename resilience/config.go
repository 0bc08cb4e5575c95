package resilience

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Process-wide defaults, matching the environment defaults below.
const (
	DefaultPoolSize    = 8
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultBackoffMax  = 4 * time.Second
)

// Environment variables recognized by ConfigFromEnv.
const (
	EnvPoolSize    = "RELIABILITY_MAX_WORKERS"
	EnvTimeout     = "OPERATION_TIMEOUT_SECONDS"
	EnvMaxAttempts = "OPERATION_MAX_ATTEMPTS"
	EnvBackoffBase = "RETRY_BACKOFF_BASE"
	EnvBackoffMax  = "RETRY_BACKOFF_MAX"
)

// Config carries the process-wide executor defaults. It is constructed once
// at startup and handed to NewExecutor; there is no ambient global state, so
// tests can build independent executors with independent policies.
type Config struct {
	// PoolSize is the upper bound on concurrent in-flight operations.
	PoolSize int

	// Timeout is the default per-attempt timeout.
	Timeout time.Duration

	// MaxAttempts is the default total attempt budget, first attempt
	// included.
	MaxAttempts int

	// BackoffBase is the default delay before the second attempt.
	BackoffBase time.Duration

	// BackoffMax is the default cap on inter-attempt delay.
	BackoffMax time.Duration
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		PoolSize:    DefaultPoolSize,
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		BackoffBase: DefaultBackoffBase,
		BackoffMax:  DefaultBackoffMax,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// the built-in defaults for anything unset or unparseable. Call LoadDotenv
// first if the values live in a .env file.
func ConfigFromEnv() Config {
	return Config{
		PoolSize:    envInt(EnvPoolSize, DefaultPoolSize),
		Timeout:     envSeconds(EnvTimeout, DefaultTimeout),
		MaxAttempts: envInt(EnvMaxAttempts, DefaultMaxAttempts),
		BackoffBase: envSeconds(EnvBackoffBase, DefaultBackoffBase),
		BackoffMax:  envSeconds(EnvBackoffMax, DefaultBackoffMax),
	}
}

// LoadDotenv loads environment variables from the given .env files (or
// ".env" in the working directory when none are named). A missing file is
// not an error; existing process environment always wins.
func LoadDotenv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.PoolSize < 1 {
		return fmt.Errorf("pool size must be at least 1, got %d", c.PoolSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.BackoffBase < 0 {
		return fmt.Errorf("backoff base must not be negative, got %s", c.BackoffBase)
	}
	if c.BackoffMax < 0 {
		return fmt.Errorf("backoff max must not be negative, got %s", c.BackoffMax)
	}
	return nil
}

// policy converts the config's default knobs into a per-call Policy.
func (c Config) policy() Policy {
	return Policy{
		Timeout:     c.Timeout,
		MaxAttempts: c.MaxAttempts,
		BackoffBase: c.BackoffBase,
		BackoffMax:  c.BackoffMax,
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// envSeconds reads a float number of seconds.
func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}
