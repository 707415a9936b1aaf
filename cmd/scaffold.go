package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	scaffoldOutput string
	scaffoldForce  bool
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <package>",
	Short: "Generate a starter config for a package",
	Long: `Generate a starter config for a package.

Creates a docspec.yml pre-filled for the given package path, with the
suite class name derived from the last path segment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffoldConfig(args[0])
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldOutput, "output", "docspec.yml", "output path for the config file")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "overwrite existing file if present")
	rootCmd.AddCommand(scaffoldCmd)
}

// ScaffoldData contains data for the scaffold template.
type ScaffoldData struct {
	Package   string // e.g., "internal/widget"
	ShortName string // e.g., "widget"
	ClassName string // e.g., "WidgetDocSuite"
}

// scaffoldConfig creates a starter configuration file for a package.
func scaffoldConfig(pkg string) error {
	if _, err := os.Stat(scaffoldOutput); err == nil && !scaffoldForce {
		return fmt.Errorf("file %s already exists (use --force to overwrite)", scaffoldOutput)
	}

	short := pkg
	if i := strings.LastIndex(short, "/"); i >= 0 {
		short = short[i+1:]
	}

	titleCaser := cases.Title(language.English)
	data := ScaffoldData{
		Package:   pkg,
		ShortName: short,
		ClassName: titleCaser.String(short) + "DocSuite",
	}

	tmpl, err := template.New("scaffold").Parse(defaultScaffoldTemplate())
	if err != nil {
		return fmt.Errorf("parsing default template: %w", err)
	}

	file, err := os.Create(scaffoldOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	fmt.Printf("Created %s\n", scaffoldOutput)
	return nil
}

// defaultScaffoldTemplate returns the built-in config template.
func defaultScaffoldTemplate() string {
	return `inputs:
  - "{{.Package}}/..."
output: "{{.Package}}/{{.ShortName}}_doc_suite_test.go"
package: "{{.ShortName}}"
class_name: "{{.ClassName}}"
super_types:
  - "github.com/stretchr/testify/suite.Suite"
extra_imports: []
dialect:
  source: "go"
  example: "block"
tags:
  - "example"
  - "note"
`
}
