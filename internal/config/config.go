package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/sparsegrid/codec"
	"github.com/hupe1980/sparsegrid/internal/resource"
	"github.com/hupe1980/sparsegrid/persistence"
)

// Environment variables holding object store credentials.
const (
	EnvAccessKey = "SPARSEGRID_ACCESS_KEY"
	EnvSecretKey = "SPARSEGRID_SECRET_KEY"
)

// Backend names accepted in StoreConfig.Backend.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendMinIO  = "minio"
	BackendS3     = "s3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of the sparsegrid command.
type Config struct {
	Store       StoreConfig       `yaml:"store"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Log         LogConfig         `yaml:"log"`
	Resources   resource.Config   `yaml:"resources"`
}

// StoreConfig selects where grids are kept.
type StoreConfig struct {
	Backend  string `yaml:"backend"` // local, memory, minio, s3
	Root     string `yaml:"root"`    // directory of the local backend
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Secure   bool   `yaml:"secure"`

	// CacheBytes keeps up to this many bytes of read blobs in memory. Zero
	// disables the cache.
	CacheBytes int64 `yaml:"cache_bytes"`

	// Read from the environment, never from the file.
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// PersistenceConfig controls how grids are written.
type PersistenceConfig struct {
	Compression string `yaml:"compression"`
	Codec       string `yaml:"codec"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendLocal,
			Root:    ".",
			Secure:  true,
		},
		Persistence: PersistenceConfig{
			Compression: persistence.CompressionLZ4.String(),
			Codec:       codec.Default.Name(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Resources: resource.Config{MaxWorkers: 4},
	}
}

// Load reads the YAML file at path over the defaults, applies the
// environment and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.Store.AccessKey = os.Getenv(EnvAccessKey)
	cfg.Store.SecretKey = os.Getenv(EnvSecretKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendLocal:
		if c.Store.Root == "" {
			return fmt.Errorf("%w: local backend needs a root", ErrInvalid)
		}
	case BackendMemory:
	case BackendMinIO:
		if c.Store.Endpoint == "" {
			return fmt.Errorf("%w: minio backend needs an endpoint", ErrInvalid)
		}
		fallthrough
	case BackendS3:
		if c.Store.Bucket == "" {
			return fmt.Errorf("%w: %s backend needs a bucket", ErrInvalid, c.Store.Backend)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalid, c.Store.Backend)
	}

	if c.Store.CacheBytes < 0 {
		return fmt.Errorf("%w: negative cache_bytes", ErrInvalid)
	}
	if _, err := c.Compression(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Codec(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Resources.MaxWorkers < 0 || c.Resources.MemoryLimitBytes < 0 || c.Resources.IOBytesPerSec < 0 {
		return fmt.Errorf("%w: negative resource limit", ErrInvalid)
	}
	return nil
}

// Compression returns the configured compression.
func (c *Config) Compression() (persistence.Compression, error) {
	return persistence.ParseCompression(c.Persistence.Compression)
}

// Codec returns the configured codec.
func (c *Config) Codec() (codec.Codec, error) {
	if c.Persistence.Codec == "" {
		return codec.Default, nil
	}
	cd, ok := codec.ByName(c.Persistence.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q, want one of %v", c.Persistence.Codec, codec.Names())
	}
	return cd, nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}
