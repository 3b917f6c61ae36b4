package bubble2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/bubble2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// tileColors maps tile values to colors in ascending order.
// Values past the end of the table use overflowColor.
var tileColors = []struct {
	Value int
	Color core.Color
}{
	{2, core.ColorWhite},
	{4, core.ColorBrightWhite},
	{8, core.ColorOrange},
	{16, core.ColorBrightRed},
	{32, core.ColorRed},
	{64, core.ColorBrightYellow},
	{128, core.ColorYellow},
	{256, core.ColorBrightGreen},
	{512, core.ColorGreen},
	{1024, core.ColorBrightCyan},
	{2048, core.ColorBrightBlue},
}

const overflowColor = core.ColorBrightMagenta

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	for _, tc := range tileColors {
		if value <= tc.Value {
			return tc.Color
		}
	}
	return overflowColor
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := BoardSize*cellWidth + 1
	boardH := BoardSize*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	renderGridLines(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)

	dst.DrawTextCentered(boardY+boardH, g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH), core.ColorGray)
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightYellow)

	dst.DrawTextColor(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorBrightWhite)

	best := fmt.Sprintf("Best: %d", g.BestScore())
	dst.DrawTextColor(max(boardX+boardW-len(best), boardX), 1, best, core.ColorCyan)

	info := fmt.Sprintf("Max: %d", MaxTile(g.session.Grid()))
	if g.session.HasWonOnce() {
		info += "  (endless)"
	}
	dst.DrawTextCentered(2, info, core.ColorGray)
}

// renderGridLines draws the 4x4 cell borders.
func renderGridLines(dst *core.Screen, boardX, boardY int) {
	set := func(x, y int, r rune) {
		dst.SetCell(x, y, core.Cell{Rune: r, Color: core.ColorGray})
	}

	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			set(px, py, corner)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					set(px+i, py, '─')
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					set(px, py+i, '│')
				}
			}
		}
	}
}

// renderTiles draws the tiles for the current animation phase.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	switch g.anim.phase {
	case PhaseSlide, PhaseBubble:
		for _, a := range g.anim.tiles {
			row, col := a.interpolate()
			drawTileAt(dst, boardX, boardY, row, col, a.Value, TileColor(a.Value))
		}
	case PhaseBubbleDelay:
		for _, t := range g.anim.turn.Directional.Tiles {
			drawTile(dst, boardX, boardY, t.Position, t.Value, TileColor(t.Value))
		}
	case PhasePop:
		spawned := g.anim.turn.Spawned
		grid := g.session.Grid()
		for _, t := range Tiles(grid) {
			if spawned != nil && t.ID == spawned.ID {
				continue
			}
			drawTile(dst, boardX, boardY, t.Position, t.Value, TileColor(t.Value))
		}
		if spawned != nil {
			if g.anim.progress() < 0.5 {
				x, y := cellOrigin(boardX, boardY, float64(spawned.Position.Row), float64(spawned.Position.Col))
				dst.SetCell(x+cellWidth/2-1, y, core.Cell{Rune: '·', Color: core.ColorBrightWhite})
			} else {
				drawTile(dst, boardX, boardY, spawned.Position, spawned.Value, core.ColorBrightWhite)
			}
		}
	default:
		for _, t := range Tiles(g.session.Grid()) {
			drawTile(dst, boardX, boardY, t.Position, t.Value, TileColor(t.Value))
		}
	}
}

// cellOrigin returns the top-left inner screen position of a (fractional) cell.
func cellOrigin(boardX, boardY int, row, col float64) (x, y int) {
	x = boardX + int(math.Round(col*cellWidth)) + 1
	y = boardY + int(math.Round(row*cellHeight)) + 1
	return x, y
}

func drawTile(dst *core.Screen, boardX, boardY int, p Position, value int, color core.Color) {
	drawTileAt(dst, boardX, boardY, float64(p.Row), float64(p.Col), value, color)
}

// drawTileAt draws a value centered in the cell at a fractional position.
func drawTileAt(dst *core.Screen, boardX, boardY int, row, col float64, value int, color core.Color) {
	x, y := cellOrigin(boardX, boardY, row, col)
	s := strconv.Itoa(value)
	pad := max((cellWidth-1-len(s))/2, 0)
	dst.DrawTextColor(x+pad, y, s, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorYellow, "PAUSED", "Press P to resume")
	case g.session.Status() == StatusWon:
		drawOverlay(dst, centerX, centerY, core.ColorBrightGreen,
			"YOU WIN!",
			fmt.Sprintf("Reached %d", g.session.Rules().WinValue),
			"C: Continue  R: New game")
	case g.session.Status() == StatusLost:
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.session.Score()),
			"R: New game")
	}
}

// drawOverlay draws a boxed message centered on (centerX, centerY).
func drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Centered(centerX, centerY, maxLen+4, len(lines)+2)
	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, color)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move  P: Pause  R: New  Q: Quit"
}
