package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/terawatthour/htmlstream/internal/decode"
	"github.com/terawatthour/htmlstream/internal/lexer"
	"github.com/terawatthour/htmlstream/internal/source"
)

func newTokensCmd(logger *slog.Logger) *cobra.Command {
	var ignoreSelfClosingSyntax bool

	cmd := &cobra.Command{
		Use:   "tokens <path>",
		Short: "Print the raw lexer token stream for HTML file(s), for debugging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(logger, args[0], ignoreSelfClosingSyntax)
		},
	}
	cmd.Flags().BoolVar(&ignoreSelfClosingSyntax, "ignore-self-closing-syntax", false, "treat '/>' on non-void elements as '>'")
	return cmd
}

func runTokens(logger *slog.Logger, path string, ignoreSelfClosingSyntax bool) error {
	files, err := discoverHTMLFiles(path)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	for _, file := range files {
		src, err := source.FromFile(file)
		if err != nil {
			return fmt.Errorf("open %s: %w", file, err)
		}
		dec, err := decode.New(src)
		if err != nil {
			_ = src.Close()
			return fmt.Errorf("read %s: %w", file, err)
		}

		fmt.Printf("== %s ==\n", file)
		ctx, cancel := context.WithCancel(context.Background())
		for tok := range lexer.Run(ctx, dec, lexer.Options{IgnoreSelfClosingSyntax: ignoreSelfClosingSyntax}, logger) {
			fmt.Printf("%-22s %s\n", tok.Kind(), tok.Pos())
		}
		cancel()
		_ = src.Close()
	}
	return nil
}
