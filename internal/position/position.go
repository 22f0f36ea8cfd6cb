// Package position defines the shared source-location type used
// across the decode/lexer/tree layers and re-exported from the root
// package, keeping one canonical definition without an import cycle
// (the root package depends on internal/tree and internal/lexer,
// both of which need a Position type of their own).
package position

import "fmt"

// Position is a 1-based line/column location in the original input.
type Position struct {
	Line   uint32
	Column uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
