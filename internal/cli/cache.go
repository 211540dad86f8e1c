package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/s7db/internal/config"
	"github.com/matzehuels/s7db/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the generated source cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ch.Close()

			var (
				count int
				where string
			)
			switch ch := ch.(type) {
			case *cache.FileCache:
				count, err = ch.Clear()
				where = ch.Dir()
			case *cache.RedisCache:
				count, err = ch.Clear(cmd.Context())
				where = c.settings().Cache.Redis.Addr
			default:
				printInfo("Cache is disabled")
				return nil
			}
			if err != nil {
				return err
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Location: %s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			switch cfg.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(stdout, "redis://%s/%d (prefix %q)\n", cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
			case config.BackendNone:
				printInfo("Cache is disabled")
			default:
				dir, err := cfg.CacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(stdout, dir)
			}
			return nil
		},
	}
}
