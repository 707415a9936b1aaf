package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docspec",
	Short: "Generate executable test suites from documentation comments",
	Long: `docspec turns structured documentation comments in Go source trees
into one generated, executable test suite.

It performs the following core functions:
  - Tokenizing doc comments into prose, tags, and fenced code blocks
  - Folding tagged sections into scoped, named test cases
  - Nesting cases to mirror the package/type/member structure
  - Assembling one suite declaration across all input files`,
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docspec.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// GetConfigPath returns the configured config file path.
func GetConfigPath() string {
	return cfgFile
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// newLogger builds the CLI logger; verbose mode lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
