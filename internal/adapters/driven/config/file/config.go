// Package file loads application configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Embedder kinds.
const (
	EmbedderTFIDF  = "tfidf"
	EmbedderOpenAI = "openai"
	EmbedderOllama = "ollama"
)

// Config is the application configuration.
type Config struct {
	// IndexDir is where index artifacts live.
	IndexDir string `toml:"index_dir"`

	Embedder EmbedderConfig `toml:"embedder"`
	Index    IndexConfig    `toml:"index"`
	Server   ServerConfig   `toml:"server"`
}

// EmbedderConfig selects and configures the embedding backend.
type EmbedderConfig struct {
	// Kind is one of tfidf, openai, ollama.
	Kind string `toml:"kind"`

	// Model is the embedding model name for remote backends.
	Model string `toml:"model"`

	// BaseURL overrides the backend API URL.
	BaseURL string `toml:"base_url"`

	// Dimensions overrides the embedding dimension for remote backends.
	Dimensions int `toml:"dimensions"`

	// TimeoutSeconds is the per-request timeout for remote backends.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// IndexConfig configures the vector index.
type IndexConfig struct {
	// Kind is one of bruteforce, vptree.
	Kind string `toml:"kind"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// RateLimit is requests per second per server; 0 disables limiting.
	RateLimit float64 `toml:"rate_limit"`

	// RateBurst is the limiter burst size.
	RateBurst int `toml:"rate_burst"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		IndexDir: "artifacts",
		Embedder: EmbedderConfig{
			Kind:           EmbedderTFIDF,
			TimeoutSeconds: 60,
		},
		Index: IndexConfig{
			Kind: "bruteforce",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 10,
			RateBurst: 20,
		},
	}
}

// Load reads configuration from path, applying defaults for anything the
// file leaves unset. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Embedder.Kind {
	case EmbedderTFIDF, EmbedderOpenAI, EmbedderOllama:
	default:
		return fmt.Errorf("unknown embedder kind %q", c.Embedder.Kind)
	}
	switch c.Index.Kind {
	case "bruteforce", "vptree":
	default:
		return fmt.Errorf("unknown index kind %q", c.Index.Kind)
	}
	if c.IndexDir == "" {
		return fmt.Errorf("index_dir must not be empty")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	return nil
}

// EmbedderTimeout returns the remote embedder request timeout.
func (c *Config) EmbedderTimeout() time.Duration {
	return time.Duration(c.Embedder.TimeoutSeconds) * time.Second
}
