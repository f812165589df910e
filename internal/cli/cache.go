package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/qprimes/internal/cache"
	"github.com/dshills/qprimes/internal/config"
	"github.com/dshills/qprimes/internal/output"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached search results",
}

// openCache opens the configured cache. force opens it even when caching is
// disabled so stale entries can still be inspected or removed.
func openCache(force bool) (*cache.Cache, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	c, err := cache.New(cfg.Cache.Enabled || force, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return c, nil
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached search result",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache(true)
		if err != nil {
			return err
		}
		removed, err := c.Clear()
		if err != nil {
			fail("clearing cache: %v", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached results from %s\n", removed, c.Dir())
		return nil
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache(false)
		if err != nil {
			return err
		}
		if !c.Enabled() {
			fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled.")
			return nil
		}
		stats, err := c.GetStats()
		if err != nil {
			fail("reading cache stats: %v", err)
			return nil
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var cacheGetCmd = &cobra.Command{
	Use:   "get <N>",
	Short: "Print the cached result for bound N without searching",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bound, err := parseNatural(args[0])
		if err != nil {
			return err
		}
		c, err := openCache(true)
		if err != nil {
			return err
		}
		r, ok := c.Get(bound)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No cached result for N = %d\n", bound)
			return nil
		}
		report := output.NewReport(version, bound, r, nil)
		if err := (&output.TextWriter{}).Write(cmd.OutOrStdout(), report); err != nil {
			fail("writing output: %v", err)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheGetCmd)
}
