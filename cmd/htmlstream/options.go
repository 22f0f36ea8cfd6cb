package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terawatthour/htmlstream"
)

// parseFlags are the parse subcommand's options, bound to cobra flags
// on that command.
type parseFlags struct {
	casing                  string
	ignoreSelfClosingSyntax bool
	stripComments           bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.casing, "casing", "lower", "tagname casing: lower, upper, or preserve")
	cmd.Flags().BoolVar(&f.ignoreSelfClosingSyntax, "ignore-self-closing-syntax", false, "treat '/>' on non-void elements as '>'")
	cmd.Flags().BoolVar(&f.stripComments, "strip-comments", false, "drop comment nodes")
}

func (f *parseFlags) options() ([]htmlstream.Option, error) {
	var casing htmlstream.TagNameCasing
	switch f.casing {
	case "lower":
		casing = htmlstream.CasingLower
	case "upper":
		casing = htmlstream.CasingUpper
	case "preserve":
		casing = htmlstream.CasingPreserve
	default:
		return nil, fmt.Errorf("unknown --casing %q (want lower, upper, or preserve)", f.casing)
	}
	return []htmlstream.Option{
		htmlstream.WithTagNameCasing(casing),
		htmlstream.WithIgnoreSelfClosingSyntax(f.ignoreSelfClosingSyntax),
		htmlstream.WithStripComments(f.stripComments),
	}, nil
}
