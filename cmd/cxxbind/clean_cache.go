package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cxxbind/internal/driver"
)

var cleanCacheCmd = &cobra.Command{
	Use:   "clean-cache",
	Short: "Remove every cached run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleaned")
		return nil
	},
}
