package bubble2048

import "github.com/vovakirdan/bubble2048/internal/config"

// AnimationPhase represents the current phase of a turn animation.
type AnimationPhase int

const (
	PhaseNone        AnimationPhase = iota
	PhaseSlide                      // directional move
	PhaseBubbleDelay                // pause on the intermediate board
	PhaseBubble                     // upward bubble pass
	PhasePop                        // spawned tile appears
)

// String returns the phase name.
func (p AnimationPhase) String() string {
	switch p {
	case PhaseSlide:
		return "slide"
	case PhaseBubbleDelay:
		return "bubble_delay"
	case PhaseBubble:
		return "bubble"
	case PhasePop:
		return "pop"
	default:
		return "none"
	}
}

// TileAnimation represents one tile travelling during a phase.
// Positions are board cells.
type TileAnimation struct {
	Value    int
	From     Position
	To       Position
	Progress float64 // 0.0 → 1.0
	Merged   bool    // source of a merge; disappears into the result
}

// animator sequences the phases of one turn.
type animator struct {
	timing config.AnimationConfig
	phase  AnimationPhase
	ticks  int
	turn   TurnResult
	tiles  []TileAnimation
}

func newAnimator(timing config.AnimationConfig) animator {
	return animator{timing: timing}
}

// start begins animating a turn that moved.
func (a *animator) start(turn TurnResult) {
	a.turn = turn
	a.enter(PhaseSlide)
}

// stop drops any running animation.
func (a *animator) stop() {
	a.phase = PhaseNone
	a.ticks = 0
	a.tiles = nil
	a.turn = TurnResult{}
}

func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// duration returns the length of a phase in ticks.
func (a *animator) duration(p AnimationPhase) int {
	switch p {
	case PhaseSlide, PhaseBubble:
		return a.timing.SlideTicks
	case PhaseBubbleDelay:
		return a.timing.BubbleDelayTicks
	case PhasePop:
		return a.timing.PopTicks
	default:
		return 0
	}
}

// following returns the phase after p for the current turn.
func (a *animator) following(p AnimationPhase) AnimationPhase {
	switch p {
	case PhaseSlide:
		if a.turn.Bubble.Moved {
			return PhaseBubbleDelay
		}
		return a.afterBubble()
	case PhaseBubbleDelay:
		return PhaseBubble
	case PhaseBubble:
		return a.afterBubble()
	default:
		return PhaseNone
	}
}

func (a *animator) afterBubble() AnimationPhase {
	if a.turn.Spawned != nil {
		return PhasePop
	}
	return PhaseNone
}

// enter switches to phase p, skipping phases configured with zero ticks.
func (a *animator) enter(p AnimationPhase) {
	for p != PhaseNone && a.duration(p) <= 0 {
		p = a.following(p)
	}
	a.phase = p
	a.ticks = 0

	switch p {
	case PhaseSlide:
		a.tiles = slides(a.turn.Directional.Tiles)
	case PhaseBubble:
		a.tiles = slides(a.turn.Bubble.Tiles)
	case PhaseNone:
		a.tiles = nil
		a.turn = TurnResult{}
	default:
		a.tiles = nil
	}
}

// update advances the animation by one tick.
// Returns true while the animation is still in progress.
func (a *animator) update() bool {
	if !a.active() {
		return false
	}

	a.ticks++
	duration := a.duration(a.phase)
	progress := min(float64(a.ticks)/float64(duration), 1.0)
	for i := range a.tiles {
		a.tiles[i].Progress = progress
	}

	if a.ticks >= duration {
		a.enter(a.following(a.phase))
	}
	return a.active()
}

// progress returns the completion of the current phase.
func (a *animator) progress() float64 {
	d := a.duration(a.phase)
	if d <= 0 {
		return 1
	}
	return min(float64(a.ticks)/float64(d), 1.0)
}

// slides builds tile animations from the annotated tiles of a pass.
// A merged tile animates both of its sources into the destination.
func slides(tiles []Tile) []TileAnimation {
	anims := make([]TileAnimation, 0, len(tiles)+2)
	for _, t := range tiles {
		switch {
		case len(t.MergedFrom) > 0:
			for _, src := range t.MergedFrom {
				anims = append(anims, TileAnimation{
					Value:  src.Value,
					From:   src.Position,
					To:     t.Position,
					Merged: true,
				})
			}
		case t.PreviousPosition != nil:
			anims = append(anims, TileAnimation{Value: t.Value, From: *t.PreviousPosition, To: t.Position})
		default:
			anims = append(anims, TileAnimation{Value: t.Value, From: t.Position, To: t.Position})
		}
	}
	return anims
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the current fractional (row, col) of the tile.
func (a TileAnimation) interpolate() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.From.Row) + float64(a.To.Row-a.From.Row)*t
	col = float64(a.From.Col) + float64(a.To.Col-a.From.Col)*t
	return row, col
}
