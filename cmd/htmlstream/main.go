// Command htmlstream is a small CLI driver around the htmlstream
// library: it walks a path argument, parses each HTML file found, and
// prints either the materialized tree or the raw token stream.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:   "htmlstream",
		Short: "Parse HTML files with the htmlstream library",
	}

	rootCmd.AddCommand(newParseCmd(logger))
	rootCmd.AddCommand(newTokensCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
