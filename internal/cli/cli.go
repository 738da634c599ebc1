// Package cli implements the vtmaltego command-line interface.
//
// The root command exports one VirusTotal graph to a Maltego CSV file:
//
//	vtmaltego <graph_id> <output_file>
//
// Subcommands:
//   - preview: render the graph as SVG or DOT before importing it
//   - cache: manage the optional URL lookup cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every API request, cache lookup and skipped node. Each run carries
// a random run ID in its log fields.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vtmaltego/internal/config"
	"github.com/matzehuels/vtmaltego/pkg/buildinfo"
	"github.com/matzehuels/vtmaltego/pkg/cache"
	"github.com/matzehuels/vtmaltego/pkg/errors"
	"github.com/matzehuels/vtmaltego/pkg/virustotal"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = config.AppName

	// usage is the error shown for a wrong argument count.
	usage = "usage: " + appName + " <graph_id> <output_file>"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	runID string
	cfg   config.Config
	flags globalFlags
}

// globalFlags are the persistent flags shared by every command. Zero values
// mean "not given"; only flags set on the command line override config.
type globalFlags struct {
	verbose   bool
	config    string
	baseURL   string
	timeout   time.Duration
	retries   int
	rateLimit float64
	cache     bool
	redis     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		runID:  uuid.NewString(),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " <graph_id> <output_file>",
		Short: "Export VirusTotal graphs to Maltego CSV",
		Long: `vtmaltego fetches a VirusTotal graph and writes it as a CSV file that Maltego
can import. File, IP address, domain and URL nodes become Maltego entities;
relationships between them become links.

The API key is read from VIRUSTOTAL_API_KEY (a .env file in the working
directory is loaded first) or from api_key in the config file.`,
		Example: `  vtmaltego g2b2c9a1f0e6d4f7a8e3b5c1d9f0a7e6 hooli.csv
  vtmaltego preview g2b2c9a1f0e6d4f7a8e3b5c1d9f0a7e6 -o hooli.svg`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              exportArgs,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], args[1])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.PersistentFlags()
	f.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	f.StringVar(&c.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/vtmaltego/config.toml)")
	f.StringVar(&c.flags.baseURL, "base-url", "", "VirusTotal API root")
	f.DurationVar(&c.flags.timeout, "timeout", 0, "per-request timeout (0 = none)")
	f.IntVar(&c.flags.retries, "retries", 0, "retries for network errors and 5xx responses")
	f.Float64Var(&c.flags.rateLimit, "rate-limit", 0, "max requests per minute (0 = unlimited, public API allows 4)")
	f.BoolVar(&c.flags.cache, "cache", false, "cache URL lookups")
	f.StringVar(&c.flags.redis, "redis", "", "cache URL lookups in Redis at host:port (implies --cache)")

	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// exportArgs accepts exactly a graph ID and an output file.
func exportArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New(errors.ErrCodeInvalidInput, usage)
	}
	return nil
}

// =============================================================================
// Setup
// =============================================================================

// setup resolves the configuration and attaches a run-scoped logger to the
// command context. It runs after argument validation and never touches the
// network.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}

	config.LoadDotEnv()
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger := c.Logger.With("run", c.runID[:8])
	registerLogHooks(logger)
	cmd.SetContext(withLogger(cmd.Context(), logger))
	logger.Debug("configuration", "settings", cfg.String())
	return nil
}

// loadConfig layers defaults, the config file, the environment and changed
// flags, in that order.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := c.flags.config
	if path == "" {
		p, err := config.Path()
		if err == nil {
			path = p
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = c.flags.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.flags.timeout
	}
	if flags.Changed("retries") {
		cfg.Retries = c.flags.retries
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = c.flags.rateLimit
	}
	if flags.Changed("cache") {
		cfg.Cache = c.flags.cache
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = c.flags.redis
		cfg.Cache = cfg.Cache || c.flags.redis != ""
	}

	return cfg, cfg.Validate()
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds a VirusTotal client from the resolved configuration.
// The returned close function releases the cache.
func (c *CLI) newClient(ctx context.Context) (*virustotal.Client, func()) {
	cc := c.openCache(ctx)
	opts := append(c.cfg.ClientOptions(), virustotal.WithCache(cc, c.cfg.CacheTTL))
	return virustotal.NewClient(opts...), func() { _ = cc.Close() }
}

// openCache returns the configured cache. An unreachable Redis or an
// unusable cache directory degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context) cache.Cache {
	logger := loggerFromContext(ctx)
	if !c.cfg.Cache {
		return cache.NewNullCache()
	}

	if c.cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.cfg.RedisAddr})
		if err != nil {
			logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache()
		}
		logger.Debug("using redis cache", "addr", rc.Addr())
		return rc
	}

	fc, err := openFileCache()
	if err != nil {
		logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	logger.Debug("using file cache", "dir", fc.Dir())
	return fc
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := config.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
