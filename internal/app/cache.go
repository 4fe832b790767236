package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/pymigrate/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the formula metadata cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and age",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached formula metadata",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	RootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		return err
	}

	fmt.Printf("Cached formulae: %d\n", count)
	if count == 0 {
		return nil
	}

	oldest, err := db.OldestFetch()
	if err != nil {
		return err
	}
	fmt.Printf("Oldest entry: %d day(s) old\n", cache.DaysOld(oldest, time.Now()))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db, err := openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Clear(); err != nil {
		return err
	}
	fmt.Println("Formula cache cleared.")
	return nil
}
