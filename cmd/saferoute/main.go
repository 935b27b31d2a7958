package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saferoute",
		Short: "Build and inspect type-safe route URLs",
		Long: `saferoute builds concrete paths from bracket-syntax route patterns
and decodes paths and query strings back into typed parameters.

Pattern syntax:

  /about            static segments
  /product/[id]     dynamic segment
  /files/[...path]  catch-all segment
  /docs/[[...s]]    optional catch-all segment`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		buildCmd(),
		parseCmd(),
		classifyCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
