package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheFlags struct {
	olderThan time.Duration
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the compile cache",
	Long: `Manage the compile cache.

The cache maps a hash of the source document to its compiled output, so
unchanged sources skip recompilation.

Examples:
  # Show cache statistics
  kryonc cache stats

  # Drop everything
  kryonc cache clear

  # Drop entries unused for a week
  kryonc cache clear --older-than 168h`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached compile results",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().DurationVar(&cacheFlags.olderThan, "older-than", 0, "only remove entries unused for this long")
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		fmt.Println("cache is disabled")
		return nil
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.Len(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}

	fmt.Printf("Backend: %s\n", cfg.Cache.Backend)
	if cfg.Cache.Backend == "sqlite" {
		fmt.Printf("Path: %s\n", cfg.Cache.SQLite.Path)
	}
	fmt.Printf("Entries: %d\n", count)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		fmt.Println("cache is disabled")
		return nil
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// last_used has second resolution; nudge the cutoff past entries
	// written this second when clearing everything.
	cutoff := time.Now().Add(time.Second)
	if cacheFlags.olderThan > 0 {
		cutoff = time.Now().Add(-cacheFlags.olderThan)
	}

	removed, err := store.Cleanup(cmd.Context(), cutoff)
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Printf("Removed %d entries\n", removed)
	return nil
}
