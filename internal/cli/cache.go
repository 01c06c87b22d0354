package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/dashreview/internal/cache"
	"github.com/dshills/dashreview/internal/config"
)

var flagCacheURLs bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the record of source archives found by availability checks",
}

// openProbeCache opens the configured cache. With force set it is opened
// even when caching is disabled, so records left by earlier runs can be managed.
func openProbeCache(force bool) (*cache.Cache, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, err
	}
	c, err := cache.New(force || cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return c, nil
}

// writeCacheSummary describes the recorded source archives, optionally
// listing each URL with the time it was last found.
func writeCacheSummary(w io.Writer, c *cache.Cache, listURLs bool) error {
	if !c.Enabled() {
		fmt.Fprintln(w, "Source availability results are not recorded (cache disabled).")
		return nil
	}
	sum, err := c.Summarize()
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}
	fmt.Fprintf(w, "Recorded source archives: %d (%d expired)\n", sum.Recorded, sum.Expired)
	if sum.TTL > 0 {
		fmt.Fprintf(w, "Records expire after %s\n", sum.TTL)
	} else {
		fmt.Fprintln(w, "Records never expire")
	}
	fmt.Fprintf(w, "Directory: %s\n", sum.Dir)
	if !listURLs {
		return nil
	}
	records, err := c.Records()
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}
	for _, r := range records {
		mark := ""
		if r.Expired {
			mark = " (expired)"
		}
		fmt.Fprintf(w, "  %s  %s%s\n", r.CheckedAt.Local().Format(time.DateTime), r.URL, mark)
	}
	return nil
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize recorded source archives",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openProbeCache(false)
		if err != nil {
			return err
		}
		return writeCacheSummary(os.Stdout, c, flagCacheURLs)
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget source archives whose record has expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openProbeCache(true)
		if err != nil {
			return err
		}
		n, err := c.Prune()
		if err != nil {
			return fmt.Errorf("pruning cache: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Removed %d expired record(s).\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recorded source archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openProbeCache(true)
		if err != nil {
			return err
		}
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Every source archive will be checked again on the next run.")
		return nil
	},
}

func init() {
	cacheShowCmd.Flags().BoolVar(&flagCacheURLs, "urls", false, "List every recorded URL")
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
