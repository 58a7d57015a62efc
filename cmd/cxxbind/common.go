package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cxxbind/internal/config"
	"cxxbind/internal/diag"
	"cxxbind/internal/diagfmt"
	"cxxbind/internal/driver"
	"cxxbind/internal/logging"
	"cxxbind/internal/version"
)

const cacheApp = "cxxbind"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity      int
	logJSON        bool
	timings        bool
	maxDiagnostics int
	cache          bool
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	var (
		g   globalOptions
		err error
	)
	flags := cmd.Root().PersistentFlags()
	if g.verbosity, err = flags.GetCount("verbose"); err != nil {
		return g, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if g.logJSON, err = flags.GetBool("log-json"); err != nil {
		return g, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.cache, err = flags.GetBool("cache"); err != nil {
		return g, fmt.Errorf("failed to get cache flag: %w", err)
	}
	return g, nil
}

func (g globalOptions) logger() *zap.Logger {
	return logging.New(logging.Options{Verbosity: g.verbosity, JSON: g.logJSON})
}

func (g globalOptions) driverOptions(cfg *config.Config, log *zap.Logger) (driver.Options, error) {
	opts := driver.Options{
		Config:         cfg,
		Logger:         log,
		MaxDiagnostics: g.maxDiagnostics,
	}
	if g.cache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// reportOptions controls how warnings are printed.
type reportOptions struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|sarif)")
	cmd.Flags().String("path-mode", "auto", "how to print header paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func readReportFlags(cmd *cobra.Command) (reportOptions, error) {
	var ro reportOptions
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return ro, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "sarif":
		ro.format = format
	default:
		return ro, fmt.Errorf("unknown format: %s", format)
	}
	pm, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return ro, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(pm)
	if !ok {
		return ro, fmt.Errorf("unknown path-mode: %s", pm)
	}
	ro.pathMode = mode
	if ro.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return ro, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	return ro, nil
}

// printDiagnostics writes warnings of a run. JSON and SARIF go to out so
// they can be piped; the pretty form goes next to the logs.
func printDiagnostics(out, errOut io.Writer, diags []diag.Diagnostic, ro reportOptions, baseDir string) error {
	switch ro.format {
	case "json":
		return diagfmt.JSON(out, diags, diagfmt.JSONOpts{PathMode: ro.pathMode, BaseDir: baseDir, IncludeNotes: ro.withNotes})
	case "sarif":
		return diagfmt.Sarif(out, diags, diagfmt.SarifRunMeta{
			ToolName:       cacheApp,
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			PathMode:       ro.pathMode,
			BaseDir:        baseDir,
		})
	}
	if len(diags) == 0 {
		return nil
	}
	return diagfmt.Pretty(errOut, diags, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		PathMode:  ro.pathMode,
		BaseDir:   baseDir,
		ShowNotes: ro.withNotes,
		Summary:   true,
	})
}

var (
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	cachedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// summaryLine is the one-line report of a finished run.
func summaryLine(res *driver.Result, written []string, dir string) string {
	label := okStyle.Render("bound")
	if res.Cached {
		label = cachedStyle.Render("cached")
	}
	names := make([]string, 0, len(written))
	for _, p := range written {
		names = append(names, formatPathForOutput(dir, p))
	}
	detail := fmt.Sprintf("%d files, %s", len(written), diagfmt.Summary(res.Warnings))
	if res.Dropped > 0 {
		detail += fmt.Sprintf(", %d dropped", res.Dropped)
	}
	return fmt.Sprintf("%s %s %s %v", label, res.Module, dimStyle.Render("("+detail+")"), names)
}

func formatPathForOutput(baseDir, path string) string {
	if rel, err := filepath.Rel(baseDir, path); err == nil {
		return rel
	}
	return path
}
