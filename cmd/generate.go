package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docspec/docspec/internal/config"
	"github.com/docspec/docspec/internal/generator"
	"github.com/spf13/cobra"
)

var generateStdout bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the test suite from documented sources",
	Long: `Generate the test suite from documented sources.

Parses every configured input file, compiles the documentation comments
into nested test cases, and writes the assembled suite to the configured
output path. Nothing is written when any input fails to compile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(GetConfigPath())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		gen := generator.New(cfg, newLogger())
		result, err := gen.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("generating suite: %w", err)
		}

		if generateStdout {
			fmt.Print(string(result.Source))
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(cfg.Output, result.Source, 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "Wrote %s (%d files, %d groups)\n",
				cfg.Output, result.Files, result.Groups)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "write the generated suite to stdout instead of the output path")
	rootCmd.AddCommand(generateCmd)
}
