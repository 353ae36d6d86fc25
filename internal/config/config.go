package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/NivBraz/epigram/pkg/dictionary"
)

// DefaultPath is read when no config file is given; it may be absent.
const DefaultPath = "epigram.yaml"

// EnvPrefix prefixes every environment override, e.g. EPIGRAM_COUNT
const EnvPrefix = "EPIGRAM_"

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	// Dictionary is a file path, "-" for stdin or empty for the built-in dictionary
	Dictionary       string `yaml:"dictionary" env:"DICTIONARY"`
	DictionaryFormat string `yaml:"dictionaryFormat" env:"DICTIONARY_FORMAT"`

	Count    int  `yaml:"count" env:"COUNT"`
	Infinite bool `yaml:"infinite" env:"INFINITE"`
	// Seed makes output reproducible; zero picks a random seed
	Seed int64 `yaml:"seed" env:"SEED"`
	// RescanLimit enables textual substitution with the given limit
	RescanLimit int  `yaml:"rescanLimit" env:"RESCAN_LIMIT"`
	Watch       bool `yaml:"watch" env:"WATCH"`

	Rate       RateConfig       `yaml:"rate" envPrefix:"RATE_"`
	HTTPClient HTTPClientConfig `yaml:"httpClient" envPrefix:"HTTP_"`
	Output     OutputConfig     `yaml:"output" envPrefix:"OUTPUT_"`
}

type RateConfig struct {
	// PhrasesPerSecond throttles output; zero means unlimited
	PhrasesPerSecond float64 `yaml:"phrasesPerSecond" env:"PHRASES_PER_SECOND"`
	Burst            int     `yaml:"burst" env:"BURST"`
}

type HTTPClientConfig struct {
	Timeout           int    `yaml:"timeout" env:"TIMEOUT"`
	MaxRetries        int    `yaml:"maxRetries" env:"MAX_RETRIES"`
	UserAgent         string `yaml:"userAgent" env:"USER_AGENT"`
	RequestsPerSecond int    `yaml:"requestsPerSecond" env:"REQUESTS_PER_SECOND"`
	Burst             int    `yaml:"burst" env:"BURST"`
}

type OutputConfig struct {
	Format   string `yaml:"format" env:"FORMAT"`
	Progress bool   `yaml:"progress" env:"PROGRESS"`
}

// Load reads the configuration from path, then applies .env and environment
// overrides and defaults. An empty path reads DefaultPath if it exists.
func Load(path string) (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	// Count is preset rather than defaulted so an explicit zero survives
	cfg := Config{Count: 1}
	if err := decodeFile(&cfg, path); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	// Set default values
	setDefaults(&cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	optional := path == ""
	if optional {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error decoding config: %w", err)
	}
	return nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{Count: 1}
	setDefaults(cfg)
	return cfg
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Rate.Burst == 0 {
		cfg.Rate.Burst = 1
	}
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 30
	}
	if cfg.HTTPClient.MaxRetries == 0 {
		cfg.HTTPClient.MaxRetries = 3
	}
	if cfg.HTTPClient.RequestsPerSecond == 0 {
		cfg.HTTPClient.RequestsPerSecond = 5
	}
	if cfg.HTTPClient.Burst == 0 {
		cfg.HTTPClient.Burst = 2
	}
	if cfg.HTTPClient.UserAgent == "" {
		cfg.HTTPClient.UserAgent = "epigram/1.0"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = OutputText
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	if c.RescanLimit < 0 {
		return fmt.Errorf("rescanLimit must not be negative")
	}
	if c.Rate.PhrasesPerSecond < 0 {
		return fmt.Errorf("phrasesPerSecond must not be negative")
	}
	if c.Rate.Burst <= 0 {
		return fmt.Errorf("rate burst must be positive")
	}
	if c.HTTPClient.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.HTTPClient.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if _, err := dictionary.ParseFormat(c.DictionaryFormat); err != nil {
		return err
	}
	if c.Output.Format != OutputText && c.Output.Format != OutputJSON {
		return fmt.Errorf("output format must be %q or %q, got %q", OutputText, OutputJSON, c.Output.Format)
	}
	if c.Watch && (c.Dictionary == "" || c.Dictionary == "-") {
		return fmt.Errorf("watch requires a dictionary file")
	}
	return nil
}
