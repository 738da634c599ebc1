// Package config loads vtmaltego settings.
//
// Settings are resolved in order of increasing precedence: built-in
// defaults, the TOML file at [Path], the environment (after loading an
// optional .env file), and finally command-line flags, which the CLI applies
// on top of the returned [Config].
//
// Example config.toml:
//
//	api_key    = "..."
//	timeout    = "30s"
//	retries    = 2
//	rate_limit = 4      # requests per minute, 0 = unlimited
//	cache      = true
//	cache_ttl  = "24h"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/vtmaltego/pkg/errors"
	"github.com/matzehuels/vtmaltego/pkg/virustotal"
)

const (
	// AppName names the config and cache directories.
	AppName = "vtmaltego"

	// FileName is the config file name inside [Dir].
	FileName = "config.toml"

	// BaseURLEnv overrides the API root.
	BaseURLEnv = "VTMALTEGO_BASE_URL"
)

// Config holds everything that shapes an export run besides its arguments.
type Config struct {
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
	Retries int           `toml:"retries"`

	// RateLimit is in requests per minute. Zero disables throttling.
	RateLimit float64 `toml:"rate_limit"`

	// Cache enables the URL lookup cache. Entries go to RedisAddr when set,
	// otherwise to the user cache directory.
	Cache     bool          `toml:"cache"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
	RedisAddr string        `toml:"redis_addr"`
}

// Default returns the built-in settings: one attempt per request, no
// timeout, no throttling and no cache.
func Default() Config {
	return Config{
		BaseURL:  virustotal.DefaultBaseURL,
		CacheTTL: virustotal.DefaultCacheTTL,
	}
}

// Dir returns the config directory, $XDG_CONFIG_HOME/vtmaltego or
// ~/.config/vtmaltego.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the file cache directory, $XDG_CACHE_HOME/vtmaltego or
// ~/.cache/vtmaltego.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file at path over the defaults. A missing file is
// not an error. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from files (default ".env") into the
// environment. Variables that are already set win, and missing files are
// ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides cfg with non-empty environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(virustotal.APIKeyEnv); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(BaseURLEnv); v != "" {
		c.BaseURL = v
	}
}

// Validate checks ranges and the base URL.
func (c Config) Validate() error {
	if err := errors.ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	switch {
	case c.Timeout < 0:
		return errors.New(errors.ErrCodeInvalidInput, "timeout cannot be negative")
	case c.Retries < 0:
		return errors.New(errors.ErrCodeInvalidInput, "retries cannot be negative")
	case c.RateLimit < 0:
		return errors.New(errors.ErrCodeInvalidInput, "rate_limit cannot be negative")
	case c.Cache && c.CacheTTL <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache_ttl must be positive when the cache is enabled")
	}
	return nil
}

// ClientOptions translates cfg into virustotal client options. The cache
// option is added by the caller, which owns the cache's lifetime.
func (c Config) ClientOptions() []virustotal.Option {
	opts := []virustotal.Option{
		virustotal.WithBaseURL(c.BaseURL),
		virustotal.WithRetries(c.Retries),
		virustotal.WithRateLimit(c.RateLimit),
	}
	if c.APIKey != "" {
		opts = append(opts, virustotal.WithAPIKey(c.APIKey))
	}
	if c.Timeout > 0 {
		opts = append(opts, virustotal.WithTimeout(c.Timeout))
	}
	return opts
}

// String renders cfg for debug logs with the API key masked.
func (c Config) String() string {
	key := "unset"
	if c.APIKey != "" {
		key = "set"
	}
	return fmt.Sprintf("base_url=%s api_key=%s timeout=%s retries=%d rate_limit=%g cache=%t cache_ttl=%s redis=%q",
		c.BaseURL, key, c.Timeout, c.Retries, c.RateLimit, c.Cache, c.CacheTTL, c.RedisAddr)
}
