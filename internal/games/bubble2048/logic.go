package bubble2048

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// WinValue is the tile value that wins the game.
const WinValue = 2048

// Directions lists all valid directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection accepts direction names and their first letters
// ("up", "u", "LEFT", ...).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// vector returns the unit step for a direction.
func vector(dir Direction) Position {
	switch dir {
	case DirUp:
		return Position{Row: -1}
	case DirDown:
		return Position{Row: 1}
	case DirLeft:
		return Position{Col: -1}
	default:
		return Position{Col: 1}
	}
}

// traversal returns the row and column visiting order for a direction.
// Tiles nearest the destination wall are visited first so they claim
// the farthest slots and merge targets before trailing tiles.
func traversal(dir Direction) (rows, cols []int) {
	rows = make([]int, BoardSize)
	cols = make([]int, BoardSize)
	for i := range BoardSize {
		rows[i] = i
		cols[i] = i
	}
	if dir == DirDown {
		reverse(rows)
	}
	if dir == DirRight {
		reverse(cols)
	}
	return rows, cols
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// findFarthest walks from pos along vec while cells are empty.
// It returns the last empty cell reached and the first blocking cell;
// hasNext is false when the walk ran off the board.
func findFarthest(grid *Grid, pos, vec Position) (farthest, next Position, hasNext bool) {
	farthest = pos
	next = pos.Add(vec)
	for next.InBounds() && grid.At(next) == nil {
		farthest = next
		next = next.Add(vec)
	}
	return farthest, next, next.InBounds()
}

// MoveResult is the outcome of one move pass.
type MoveResult struct {
	Grid  Grid   `json:"-"`
	Tiles []Tile `json:"tiles"`
	Score int    `json:"score"`
	Moved bool   `json:"moved"`
}

// Move slides and merges every tile in the given direction.
// A destination cell accepts at most one merge per pass. An invalid
// direction leaves the board unchanged.
func Move(grid Grid, dir Direction, ids *IDGenerator) MoveResult {
	if !dir.Valid() {
		clone := CloneGrid(grid)
		return MoveResult{Grid: clone, Tiles: Tiles(clone)}
	}
	rows, cols := traversal(dir)
	return resolve(grid, vector(dir), rows, cols, ids)
}

// ShiftUp is the bubble pass: an upward move that skips row 0, whose
// tiles cannot travel further. It produces the same result as
// Move(grid, DirUp, ids).
func ShiftUp(grid Grid, ids *IDGenerator) MoveResult {
	rows := make([]int, 0, BoardSize-1)
	for row := 1; row < BoardSize; row++ {
		rows = append(rows, row)
	}
	_, cols := traversal(DirUp)
	return resolve(grid, vector(DirUp), rows, cols, ids)
}

// resolve applies one slide/merge pass over the given cells in order.
func resolve(grid Grid, vec Position, rows, cols []int, ids *IDGenerator) MoveResult {
	next := CloneGrid(grid)
	var merged [BoardSize][BoardSize]bool
	score := 0
	moved := false

	for _, row := range rows {
		for _, col := range cols {
			tile := next[row][col]
			if tile == nil {
				continue
			}
			origin := Position{Row: row, Col: col}
			farthest, target, hasNext := findFarthest(&next, origin, vec)

			if hasNext {
				other := next.At(target)
				if other != nil && other.Value == tile.Value && !merged[target.Row][target.Col] {
					prev := origin
					next[target.Row][target.Col] = &Tile{
						ID:               ids.Next(),
						Value:            tile.Value * 2,
						Position:         target,
						MergedFrom:       []MergeSource{tile.source(), other.source()},
						PreviousPosition: &prev,
					}
					next[row][col] = nil
					merged[target.Row][target.Col] = true
					score += tile.Value * 2
					moved = true
					continue
				}
			}

			if farthest != origin {
				prev := origin
				next[farthest.Row][farthest.Col] = &Tile{
					ID:               tile.ID,
					Value:            tile.Value,
					Position:         farthest,
					PreviousPosition: &prev,
				}
				next[row][col] = nil
				moved = true
			}
		}
	}

	return MoveResult{
		Grid:  next,
		Tiles: Tiles(next),
		Score: score,
		Moved: moved,
	}
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(grid Grid) bool {
	for row := range BoardSize {
		for col := range BoardSize {
			if grid[row][col] == nil {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any orthogonally adjacent tiles share a value.
func HasPossibleMerge(grid Grid) bool {
	for row := range BoardSize {
		for col := range BoardSize {
			tile := grid[row][col]
			if tile == nil {
				continue
			}
			if col < BoardSize-1 {
				if right := grid[row][col+1]; right != nil && right.Value == tile.Value {
					return true
				}
			}
			if row < BoardSize-1 {
				if below := grid[row+1][col]; below != nil && below.Value == tile.Value {
					return true
				}
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(grid Grid) bool {
	return HasEmptyCell(grid) || HasPossibleMerge(grid)
}

// HasReached returns true if any tile's value is at least target.
func HasReached(grid Grid, target int) bool {
	return MaxTile(grid) >= target
}

// HasWon returns true once a tile of WinValue or more exists.
func HasWon(grid Grid) bool {
	return HasReached(grid, WinValue)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(grid Grid) int {
	maxVal := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if t := grid[row][col]; t != nil && t.Value > maxVal {
				maxVal = t.Value
			}
		}
	}
	return maxVal
}

// SumValues returns the sum of all tile values.
func SumValues(grid Grid) int {
	sum := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if t := grid[row][col]; t != nil {
				sum += t.Value
			}
		}
	}
	return sum
}
