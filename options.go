package htmlstream

import (
	"log/slog"

	"github.com/terawatthour/htmlstream/internal/tree"
)

// TagNameCasing selects how opening and closing tagnames are
// normalized before they are compared or stored.
type TagNameCasing int

const (
	// CasingLower lowercases every tagname (the default).
	CasingLower TagNameCasing = iota
	// CasingUpper uppercases every tagname.
	CasingUpper
	// CasingPreserve keeps tagnames exactly as written; a closing tag
	// whose casing differs from its opening tag is treated as a stray
	// close.
	CasingPreserve
)

func (c TagNameCasing) toTree() tree.Casing {
	switch c {
	case CasingUpper:
		return tree.CasingUpper
	case CasingPreserve:
		return tree.CasingPreserve
	default:
		return tree.CasingLower
	}
}

// config is the resolved set of parser options, built by applying every
// Option in order over the defaults.
type config struct {
	casing                  TagNameCasing
	ignoreSelfClosingSyntax bool
	stripComments           bool
	logger                  *slog.Logger
}

func defaultConfig() config {
	return config{casing: CasingLower}
}

// Option configures a Parser. Apply as many as needed to New.
type Option func(*config)

// WithTagNameCasing sets the tagname casing transform. Default: lower.
func WithTagNameCasing(c TagNameCasing) Option {
	return func(cfg *config) { cfg.casing = c }
}

// WithIgnoreSelfClosingSyntax, when true, treats '/>' on non-void
// elements like a plain '>' (the element gets a body). Default: false.
func WithIgnoreSelfClosingSyntax(ignore bool) Option {
	return func(cfg *config) { cfg.ignoreSelfClosingSyntax = ignore }
}

// WithStripComments drops COMMENT nodes from the tree instead of
// emitting them. Default: false (comments are emitted).
func WithStripComments(strip bool) Option {
	return func(cfg *config) { cfg.stripComments = strip }
}

// WithLogger sets the logger used for lexer-level warnings (e.g. a
// decode error about to surface as a terminal error). Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}
