package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cxxbind/internal/prof"
)

var profiling *prof.Session

// startProfiling enables the profilers named by the persistent flags.
func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	if profiling, err = prof.Start(opts); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

func stopProfiling() error {
	s := profiling
	profiling = nil
	if err := s.Stop(); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}
	return nil
}
