package cmd

import (
	"fmt"

	"github.com/docspec/docspec/internal/runtime"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version, git commit, and build time of docspec.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(runtime.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
