package bubble2048

// BoardSize is the board dimension.
const BoardSize = 4

// Position is a cell coordinate on the board.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Add returns the position offset by v.
func (p Position) Add(v Position) Position {
	return Position{Row: p.Row + v.Row, Col: p.Col + v.Col}
}

// MergeSource is a value copy of a tile consumed by a merge.
// Position is where the tile stood before the move began.
type MergeSource struct {
	ID       TileID   `json:"id"`
	Value    int      `json:"value"`
	Position Position `json:"position"`
}

// Tile is a numbered tile with a stable identity.
// IsNew, MergedFrom and PreviousPosition describe the move that produced
// the tile and are only meaningful until the next turn starts.
type Tile struct {
	ID               TileID        `json:"id"`
	Value            int           `json:"value"`
	Position         Position      `json:"position"`
	IsNew            bool          `json:"is_new,omitempty"`
	MergedFrom       []MergeSource `json:"merged_from,omitempty"`
	PreviousPosition *Position     `json:"previous_position,omitempty"`
}

// source returns the merge-source copy of t.
func (t *Tile) source() MergeSource {
	pos := t.Position
	if t.PreviousPosition != nil {
		pos = *t.PreviousPosition
	}
	return MergeSource{ID: t.ID, Value: t.Value, Position: pos}
}

// neutral returns a copy of t with all per-turn annotations cleared.
func (t *Tile) neutral() *Tile {
	return &Tile{ID: t.ID, Value: t.Value, Position: t.Position}
}

// Grid holds at most one tile per cell. Tiles stored in a grid are never
// mutated once the grid has been handed out; operations build new grids.
type Grid [BoardSize][BoardSize]*Tile

// Board is the value-only view of a grid. Zero means empty.
type Board [BoardSize][BoardSize]int

// NewGrid returns an empty grid.
func NewGrid() Grid {
	return Grid{}
}

// At returns the tile at p, or nil for empty or out-of-bounds cells.
func (g *Grid) At(p Position) *Tile {
	if !p.InBounds() {
		return nil
	}
	return g[p.Row][p.Col]
}

// EmptyCells returns all empty positions in row-major order.
func EmptyCells(grid Grid) []Position {
	var cells []Position
	for row := range BoardSize {
		for col := range BoardSize {
			if grid[row][col] == nil {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}
	return cells
}

// CloneGrid deep-copies the grid, keeping tile ids, values and positions
// but dropping the per-turn annotations.
func CloneGrid(grid Grid) Grid {
	var clone Grid
	for row := range BoardSize {
		for col := range BoardSize {
			if t := grid[row][col]; t != nil {
				clone[row][col] = t.neutral()
			}
		}
	}
	return clone
}

// Tiles returns copies of all tiles in row-major order.
func Tiles(grid Grid) []Tile {
	var tiles []Tile
	for row := range BoardSize {
		for col := range BoardSize {
			if t := grid[row][col]; t != nil {
				tiles = append(tiles, copyTile(t))
			}
		}
	}
	return tiles
}

// ClearAnnotations returns the grid with every tile reset to neutral
// annotations. Values and positions are unchanged.
func ClearAnnotations(grid Grid) Grid {
	return CloneGrid(grid)
}

// BoardOf returns the value-only view of the grid.
func BoardOf(grid Grid) Board {
	var board Board
	for row := range BoardSize {
		for col := range BoardSize {
			if t := grid[row][col]; t != nil {
				board[row][col] = t.Value
			}
		}
	}
	return board
}

// GridFromBoard builds a grid from a value board, assigning fresh ids
// in row-major order.
func GridFromBoard(board Board, ids *IDGenerator) Grid {
	var grid Grid
	for row := range BoardSize {
		for col := range BoardSize {
			if v := board[row][col]; v != 0 {
				grid[row][col] = &Tile{
					ID:       ids.Next(),
					Value:    v,
					Position: Position{Row: row, Col: col},
				}
			}
		}
	}
	return grid
}

// copyTile returns a deep copy of t so callers cannot reach grid internals.
func copyTile(t *Tile) Tile {
	c := *t
	if t.MergedFrom != nil {
		c.MergedFrom = append([]MergeSource(nil), t.MergedFrom...)
	}
	if t.PreviousPosition != nil {
		prev := *t.PreviousPosition
		c.PreviousPosition = &prev
	}
	return c
}
