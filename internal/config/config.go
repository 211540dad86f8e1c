// Package config loads the s7db configuration file.
//
// The file lives at $XDG_CONFIG_HOME/s7db/config.yaml (falling back to
// ~/.config/s7db/config.yaml). A missing file is not an error; every field
// has a default.
//
//	cache:
//	  backend: redis
//	  ttl: 168h
//	  redis:
//	    addr: localhost:6379
//	    prefix: "s7db:"
//	server:
//	  listen: ":8080"
//	output:
//	  dir: build/plc
//	defaults:
//	  optimized_access: false
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/s7db/pkg/errors"
)

const appName = "s7db"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Output   OutputConfig   `yaml:"output"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// CacheConfig selects and configures the source cache.
type CacheConfig struct {
	Backend string        `yaml:"backend"`
	Dir     string        `yaml:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig holds the connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// OutputConfig configures where generated sources are written.
type OutputConfig struct {
	// Dir is prepended to relative output paths. Empty means the working
	// directory.
	Dir string `yaml:"dir,omitempty"`
}

// DefaultsConfig holds block attribute defaults applied by the example
// command and by definitions that leave the attributes unset.
type DefaultsConfig struct {
	OptimizedAccess *bool `yaml:"optimized_access,omitempty"`
	OPCAccess       *bool `yaml:"opc_access,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     7 * 24 * time.Hour,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: appName + ":",
			},
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// DefaultCacheDir returns the file cache directory
// ($XDG_CACHE_HOME/s7db or ~/.cache/s7db).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.GetCode(err), "%s: %s", path, errors.UserMessage(err))
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache.backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	if c.Cache.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis.db cannot be negative")
	}
	if c.Server.Listen == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.listen cannot be empty")
	}
	return nil
}

// CacheDir returns the configured file cache directory or the default one.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write config %s", path)
	}
	return nil
}
