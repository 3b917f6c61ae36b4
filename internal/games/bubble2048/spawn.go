package bubble2048

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// RNG is the randomness source used for spawning. *math/rand.Rand
// satisfies it.
type RNG interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// AddRandomTile places a new tile in a uniformly chosen empty cell.
// The tile is a 4 with probability spawn4Prob, otherwise a 2.
// On a full board the grid is returned unchanged with a nil tile.
func AddRandomTile(grid Grid, rng RNG, ids *IDGenerator, spawn4Prob float64) (Grid, *Tile) {
	empty := EmptyCells(grid)
	if len(empty) == 0 {
		return grid, nil
	}

	cell := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < spawn4Prob {
		value = 4
	}

	tile := &Tile{
		ID:       ids.Next(),
		Value:    value,
		Position: cell,
		IsNew:    true,
	}

	// Keep annotations of the existing tiles; only the cell changes.
	next := grid
	next[cell.Row][cell.Col] = tile

	spawned := copyTile(tile)
	return next, &spawned
}
