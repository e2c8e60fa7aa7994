// cmd/aidocgen/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("aidocgen %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:           "aidocgen",
		Short:         "Document your code automatically using AI",
		Long:          "aidocgen — generate docstrings for Python source files using an LLM backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	rootCmd.AddCommand(genCmd())
	rootCmd.AddCommand(configureCmd())
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
