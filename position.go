package htmlstream

import "github.com/terawatthour/htmlstream/internal/position"

// Position is a 1-based line/column location in the original input.
type Position = position.Position
