package bubble2048

import "strconv"

// TileID identifies a tile for as long as it stays on the board.
type TileID uint64

// String returns the id in "tile-N" form.
func (id TileID) String() string {
	return "tile-" + strconv.FormatUint(uint64(id), 10)
}

// IDGenerator hands out monotonically increasing tile ids.
// Each game session owns one; the zero value is ready to use.
type IDGenerator struct {
	last TileID
}

// Next returns a new id.
func (g *IDGenerator) Next() TileID {
	g.last++
	return g.last
}

// Reset restarts numbering. Only call it when no tiles from the previous
// numbering remain in use.
func (g *IDGenerator) Reset() {
	g.last = 0
}

// Last returns the most recently issued id, or zero.
func (g *IDGenerator) Last() TileID {
	return g.last
}
