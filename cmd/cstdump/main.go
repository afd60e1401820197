// Command cstdump parses script-language source and dumps the resulting
// concrete syntax tree, and doubles as a minimal Language Server Protocol
// front end for editors that just want re-parse-on-change.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cstdump",
		Short: "Parse and inspect script-language source trees",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
