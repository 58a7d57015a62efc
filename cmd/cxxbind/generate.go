package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cxxbind/internal/config"
	"cxxbind/internal/driver"
)

var generateCmd = &cobra.Command{
	Use:   "generate [config]",
	Short: "Bind the headers described by a config file",
	Long: `Bind the headers described by a config file (cxxbind.toml, .yaml or
.yml). Without an argument the config is searched from the current directory
upwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addReportFlags(generateCmd)
	generateCmd.Flags().StringP("out", "o", "", "output directory (overrides module.output)")
	generateCmd.Flags().Bool("no-stub", false, "do not write the typing stub")
	generateCmd.Flags().Bool("dry-run", false, "bind and report without writing files")
}

func loadConfig(args []string) (*config.Config, error) {
	if len(args) > 0 && args[0] != "" {
		return config.Load(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Discover(wd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	ro, err := readReportFlags(cmd)
	if err != nil {
		return err
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	noStub, err := cmd.Flags().GetBool("no-stub")
	if err != nil {
		return fmt.Errorf("failed to get no-stub flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if out != "" {
		if cfg.Module.Output, err = filepath.Abs(out); err != nil {
			return err
		}
	}

	log := g.logger()
	defer func() { _ = log.Sync() }()
	opts, err := g.driverOptions(cfg, log)
	if err != nil {
		return err
	}

	res, runErr := driver.Run(cmd.Context(), opts)
	if res != nil {
		if err := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), res.Warnings, ro, cfg.Dir()); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		if g.timings {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timing.Summary())
		}
	}
	if runErr != nil {
		return runErr
	}
	if dryRun {
		return nil
	}

	dir := cfg.OutputDir()
	written, err := res.Write(dir, cfg.WantStub() && !noStub)
	if err != nil {
		return fmt.Errorf("failed to write bindings: %w", err)
	}
	if ro.format == "pretty" {
		fmt.Fprintln(cmd.OutOrStdout(), summaryLine(res, written, dir))
	}
	return nil
}
