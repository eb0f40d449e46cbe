// Package config resolves CLI defaults from STRETCH_* environment
// variables, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("config: invalid value")

// DefaultEnvFile is loaded when Load is called without explicit files. A
// missing default file is not an error.
const DefaultEnvFile = ".env"

// Config holds the resolved defaults.
type Config struct {
	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	TimeFactor float64
	Cheaper    bool
	Exact      bool
	BitDepth   int
	SampleRate float64
}

// Default returns the built-in defaults used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:      "info",
		LogFormat:     "console",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
		TimeFactor:    1,
		BitDepth:      16,
		SampleRate:    44100,
	}
}

// Load reads envFiles (or DefaultEnvFile when none are given) into the
// process environment without overriding variables that are already set,
// then resolves every STRETCH_* value.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", DefaultEnvFile, err)
		}
	} else {
		err := godotenv.Load(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("config: failed to load env files: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv resolves the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := Default()

	var errs []error

	cfg.LogLevel = getEnv("STRETCH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("STRETCH_LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = getEnv("STRETCH_LOG_FILE", cfg.LogFile)
	cfg.LogMaxSizeMB = getEnvInt("STRETCH_LOG_MAX_SIZE", cfg.LogMaxSizeMB, &errs)
	cfg.LogMaxBackups = getEnvInt("STRETCH_LOG_MAX_BACKUPS", cfg.LogMaxBackups, &errs)
	cfg.LogMaxAgeDays = getEnvInt("STRETCH_LOG_MAX_AGE", cfg.LogMaxAgeDays, &errs)
	cfg.LogCompress = getEnvBool("STRETCH_LOG_COMPRESS", cfg.LogCompress, &errs)

	cfg.TimeFactor = getEnvFloat("STRETCH_TIME_FACTOR", cfg.TimeFactor, &errs)
	cfg.Cheaper = getEnvBool("STRETCH_CHEAPER", cfg.Cheaper, &errs)
	cfg.Exact = getEnvBool("STRETCH_EXACT", cfg.Exact, &errs)
	cfg.BitDepth = getEnvInt("STRETCH_BIT_DEPTH", cfg.BitDepth, &errs)
	cfg.SampleRate = getEnvFloat("STRETCH_SAMPLE_RATE", cfg.SampleRate, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &cfg, nil
}

// getEnv returns the variable's value, or fallback when unset or empty.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, key, value))
		return fallback
	}

	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidValue, key, value))
		return fallback
	}

	return f
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidValue, key, value))
		return fallback
	}

	return b
}
