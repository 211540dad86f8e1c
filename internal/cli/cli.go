// Package cli implements the s7db command-line interface.
//
// Commands:
//   - generate: render definition files to S7 data-block sources
//   - example: write the reference demo block
//   - inspect: show the variables of a definition
//   - serve: run the HTTP API
//   - cache: manage the source cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a configuration file other than the default.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/s7db/internal/config"
	"github.com/matzehuels/s7db/pkg/buildinfo"
	"github.com/matzehuels/s7db/pkg/cache"
	"github.com/matzehuels/s7db/pkg/pipeline"
)

const appName = "s7db"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "s7db generates Siemens S7 data-block source files",
		Long: `s7db turns declarative data-block definitions (JSON, YAML or TOML) into
S7 source files that can be imported into a TIA Portal project.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "configuration file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.exampleCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// settings returns the loaded configuration, or the defaults when called
// outside a command run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.DefaultConfig()
	}
	return c.cfg
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, loggerFromContext(ctx))
	if ttl := c.settings().Cache.TTL; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.settings().Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	}
	dir, err := c.settings().CacheDir()
	if err != nil {
		loggerFromContext(ctx).Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
