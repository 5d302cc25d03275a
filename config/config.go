// Package config loads slidesearch settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Data backends.
const (
	BackendEmbedded = "embedded"
	BackendCSV      = "csv"
	BackendBadger   = "badger"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the slidesearch configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Search  SearchConfig  `yaml:"search"`
	Deck    DeckConfig    `yaml:"deck"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig selects where tables are read from.
type DataConfig struct {
	Backend    string `yaml:"backend" validate:"oneof=embedded csv badger"`
	Dir        string `yaml:"dir" validate:"required_if=Backend csv"`
	BadgerPath string `yaml:"badger_path" validate:"required_if=Backend badger"`
	Watch      bool   `yaml:"watch"` // invalidate cached tables when files in Dir change
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	MaxResults          int     `yaml:"max_results" validate:"min=0"`
	MaxResultsPerDomain int     `yaml:"max_results_per_domain" validate:"min=0"`
	K1                  float64 `yaml:"k1" validate:"gte=0"`
	B                   float64 `yaml:"b" validate:"gte=0,lte=1"`
}

// DeckConfig holds the default slide position for context queries.
type DeckConfig struct {
	TotalSlides int `yaml:"total_slides" validate:"min=1"`
	Position    int `yaml:"position" validate:"min=1,ltefield=TotalSlides"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			Backend: BackendEmbedded,
		},
		Search: SearchConfig{
			MaxResults:          3,
			MaxResultsPerDomain: 2,
			K1:                  1.5,
			B:                   0.75,
		},
		Deck: DeckConfig{
			TotalSlides: 9,
			Position:    1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
// Keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Data.Watch && c.Data.Backend != BackendCSV {
		return fmt.Errorf("%w: data.watch requires the %s backend", ErrInvalidConfig, BackendCSV)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	return ParseLevel(c.Logging.Level)
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
