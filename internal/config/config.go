// Package config loads runtime settings for the check-in handlers from the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"checkin-example-app/internal/checkin"
)

type Config struct {
	TableName string        `envconfig:"STORE_TABLE_NAME" required:"true"`
	Region    string        `envconfig:"REGION" required:"true"`
	Endpoint  string        `envconfig:"STORE_ENDPOINT"`
	Timeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"10s"`

	PatientCount  int    `envconfig:"PATIENT_COUNT" default:"10"`
	PatientPrefix string `envconfig:"PATIENT_PREFIX" default:"patient"`

	ReadConcurrency int    `envconfig:"READ_CONCURRENCY" default:"1"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	Port            int    `envconfig:"PORT" default:"3000"`
}

// Load reads Config from the environment and validates it.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("failed to process config env vars: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.TableName) == "" {
		errs = append(errs, errors.New("STORE_TABLE_NAME must not be empty"))
	}
	if strings.TrimSpace(c.Region) == "" {
		errs = append(errs, errors.New("REGION must not be empty"))
	}
	if c.PatientCount < 1 {
		errs = append(errs, fmt.Errorf("PATIENT_COUNT must be positive, got %d", c.PatientCount))
	}
	if c.ReadConcurrency < 1 {
		errs = append(errs, fmt.Errorf("READ_CONCURRENCY must be positive, got %d", c.ReadConcurrency))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("STORE_TIMEOUT must not be negative, got %s", c.Timeout))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Identifiers is the fixed identifier set, PatientPrefix-1 .. PatientPrefix-N.
func (c *Config) Identifiers() []string {
	return checkin.Identifiers(c.PatientPrefix, c.PatientCount)
}

// Logger returns a JSON slog logger on stdout at the configured level.
func (c *Config) Logger() *slog.Logger {
	return NewLogger(os.Stdout, c.LogLevel)
}

func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", s)
}
