package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/terawatthour/htmlstream"
)

func newParseCmd(logger *slog.Logger) *cobra.Command {
	flags := &parseFlags{casing: "lower"}

	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Materialize HTML file(s) and print the tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts = append(opts, htmlstream.WithLogger(logger))
			return runParse(logger, args[0], opts)
		},
	}
	flags.register(cmd)
	return cmd
}

func runParse(logger *slog.Logger, path string, opts []htmlstream.Option) error {
	files, err := discoverHTMLFiles(path)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	parser := htmlstream.New(opts...)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, file := range files {
		result, err := parser.ParseFile(file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		nodes, err := result.ToArray()
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		if perr := result.Err(); perr != nil {
			return fmt.Errorf("parse %s: %w", file, perr)
		}
		logger.Info("htmlstream: parsed file", "path", file, "nodes", len(nodes))
		if err := enc.Encode(nodes); err != nil {
			return fmt.Errorf("encode %s: %w", file, err)
		}
	}
	return nil
}
