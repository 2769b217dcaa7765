package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/PauloHFS/gollama/internal/ollama"
	"github.com/PauloHFS/gollama/internal/validator"
)

type Config struct {
	Ollama         ollama.Settings
	OptionsFile    string
	LogLevel       string  `validate:"oneof=debug info warn error"`
	TracesExporter string  `validate:"oneof=none stdout otlp-http otlp-grpc"`
	RateLimit      float64 `validate:"gte=0"` // requests per second, 0 = unlimited
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := getEnvDuration("OLLAMA_TIMEOUT", ollama.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	rateLimit, err := getEnvFloat("OLLAMA_RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Ollama: ollama.Settings{
			BaseURL: getEnv("OLLAMA_BASE_URL", ollama.DefaultBaseURL),
			Model:   getEnv("OLLAMA_MODEL", ollama.DefaultModel),
			Timeout: timeout,
		},
		OptionsFile:    os.Getenv("OLLAMA_OPTIONS_FILE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TracesExporter: getEnv("OTEL_TRACES_EXPORTER", "none"),
		RateLimit:      rateLimit,
	}

	if cfg.OptionsFile != "" {
		opts, err := LoadOptions(cfg.OptionsFile)
		if err != nil {
			return nil, err
		}
		cfg.Ollama.Options = opts
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.Join(validator.Describe(validator.Validate(c)))
}

// LoadOptions reads default generation options from a YAML file. Unknown keys
// are rejected so that a typo does not silently fall back to server defaults.
func LoadOptions(path string) (*ollama.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open options file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var opts ollama.Options
	if err := dec.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	return &opts, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
