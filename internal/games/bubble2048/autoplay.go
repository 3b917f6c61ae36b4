package bubble2048

import (
	"fmt"
	"strings"
)

// Plan describes a headless game: scripted moves first, then Random moves
// drawn from an RNG.
type Plan struct {
	Moves  []Direction
	Random int
	// AutoContinue acknowledges a win and keeps playing instead of stopping.
	AutoContinue bool
}

// AutoplayResult summarises a headless game.
type AutoplayResult struct {
	Inputs   int      `json:"inputs" yaml:"inputs"`
	Accepted int      `json:"accepted" yaml:"accepted"`
	Moved    int      `json:"moved" yaml:"moved"`
	Snapshot Snapshot `json:"snapshot" yaml:"snapshot"`
}

// Autoplay feeds the plan to s until it runs out, the game is lost, or the
// game is won without AutoContinue. Random directions come from dirs.
func Autoplay(s *Session, dirs RNG, plan Plan) AutoplayResult {
	var res AutoplayResult

	next := func(i int) Direction {
		if i < len(plan.Moves) {
			return plan.Moves[i]
		}
		return Directions[dirs.Intn(len(Directions))]
	}

	total := len(plan.Moves) + max(plan.Random, 0)
	for i := range total {
		if s.Status() == StatusWon && plan.AutoContinue {
			s.Continue()
		}
		if !s.AcceptsInput() {
			break
		}

		turn := s.Move(next(i))
		res.Inputs++
		if turn.Accepted {
			res.Accepted++
		}
		if turn.Moved {
			res.Moved++
		}
	}

	res.Snapshot = SnapshotOf(s)
	return res
}

// ParseMoves reads a move script. Fields are separated by commas or
// spaces; each is a direction name ("left") or a run of initials ("lurd").
func ParseMoves(script string) ([]Direction, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	var moves []Direction
	for _, f := range fields {
		if dir, err := ParseDirection(f); err == nil {
			moves = append(moves, dir)
			continue
		}
		for _, r := range f {
			dir, err := ParseDirection(string(r))
			if err != nil {
				return nil, fmt.Errorf("bad move %q in %q", r, f)
			}
			moves = append(moves, dir)
		}
	}
	return moves, nil
}

// FormatBoard renders a board as right-aligned columns, "." for empty.
func FormatBoard(b Board) string {
	var sb strings.Builder
	for _, row := range b {
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				sb.WriteString(fmt.Sprintf("%5s", "."))
			} else {
				sb.WriteString(fmt.Sprintf("%5d", v))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
