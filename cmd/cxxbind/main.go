package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cxxbind/internal/errs"
	"cxxbind/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cxxbind",
	Short: "Generate Cython bindings for C++ headers",
	Long: `cxxbind reads the declarations of C++ headers and writes a Cython
declarations file, an implementation module and a typing stub for them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		useColor, err := colorEnabled(cmd)
		if err != nil {
			return err
		}
		color.NoColor = !useColor
		return startProfiling(cmd)
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return stopProfiling()
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(cleanCacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "log more (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of warnings to keep (0 = all)")
	rootCmd.PersistentFlags().Bool("cache", false, "reuse results of unchanged runs from the disk cache")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

// main executes the root command; any error exits with status 1.
func main() {
	err := rootCmd.Execute()
	// PersistentPostRunE не вызывается, если команда вернула ошибку
	if stopErr := stopProfiling(); err == nil {
		err = stopErr
	}
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	for _, hint := range errs.GetAllHints(err) {
		if hint != "" {
			fmt.Fprintf(w, "  hint: %s\n", hint)
		}
	}
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readUIMode("color", value)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	}
	return isTerminal(os.Stderr), nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
