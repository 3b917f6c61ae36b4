package bubble2048

// Status is the game status.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Rules are the tunable gameplay parameters of a session.
type Rules struct {
	WinValue     int
	Spawn4Prob   float64
	InitialTiles int
}

// DefaultRules returns the standard rules: win at 2048, 10% fours, two
// starting tiles.
func DefaultRules() Rules {
	return Rules{
		WinValue:     WinValue,
		Spawn4Prob:   DefaultSpawn4Prob,
		InitialTiles: 2,
	}
}

func (r Rules) normalized() Rules {
	def := DefaultRules()
	if r.WinValue <= 0 {
		r.WinValue = def.WinValue
	}
	if r.Spawn4Prob < 0 || r.Spawn4Prob > 1 {
		r.Spawn4Prob = def.Spawn4Prob
	}
	if r.InitialTiles <= 0 {
		r.InitialTiles = def.InitialTiles
	}
	return r
}

// State is a read-only view of a session.
type State struct {
	Grid       Grid   `json:"-"`
	Tiles      []Tile `json:"tiles"`
	Score      int    `json:"score"`
	BestScore  int    `json:"best_score"`
	Status     Status `json:"status"`
	HasWonOnce bool   `json:"has_won_once"`
}

// TurnResult describes what one directional input did.
type TurnResult struct {
	Direction Direction `json:"-"`
	// Accepted is false when the session refused input (lost, or won and
	// not yet continued).
	Accepted bool `json:"accepted"`
	// Moved is false when the directional phase changed nothing; no tile
	// spawns in that case.
	Moved       bool       `json:"moved"`
	Directional MoveResult `json:"directional"`
	Bubble      MoveResult `json:"bubble"`
	Spawned     *Tile      `json:"spawned,omitempty"`
	ScoreDelta  int        `json:"score_delta"`
	BestChanged bool       `json:"best_changed"`
	Status      Status     `json:"status"`
}

// Session runs one game: a directional move, the bubble pass, a spawn and
// the win/loss check per turn. A Session is not safe for concurrent use.
type Session struct {
	rules      Rules
	rng        RNG
	ids        IDGenerator
	grid       Grid
	score      int
	best       int
	status     Status
	hasWonOnce bool
	moves      int
}

// NewSession creates a session and starts a new game.
func NewSession(rng RNG, rules Rules, bestScore int) *Session {
	s := &Session{
		rules: rules.normalized(),
		rng:   rng,
		best:  bestScore,
	}
	s.NewGame()
	return s
}

// NewGame clears the board, spawns the initial tiles and resets score,
// status and the win acknowledgement. The best score is kept.
func (s *Session) NewGame() {
	s.ids.Reset()
	s.grid = NewGrid()
	for range s.rules.InitialTiles {
		s.grid, _ = AddRandomTile(s.grid, s.rng, &s.ids, s.rules.Spawn4Prob)
	}
	s.score = 0
	s.moves = 0
	s.status = StatusPlaying
	s.hasWonOnce = false
}

// Load replaces the board with the given values and re-evaluates the status.
func (s *Session) Load(board Board, score int, hasWonOnce bool) {
	s.ids.Reset()
	s.grid = GridFromBoard(board, &s.ids)
	s.score = score
	s.moves = 0
	s.hasWonOnce = hasWonOnce
	s.status = s.evaluate(s.grid)
	if s.score > s.best {
		s.best = s.score
	}
}

// AcceptsInput reports whether a directional input would be processed.
func (s *Session) AcceptsInput() bool {
	switch s.status {
	case StatusLost:
		return false
	case StatusWon:
		return s.hasWonOnce
	default:
		return true
	}
}

// Move plays one turn in the given direction.
func (s *Session) Move(dir Direction) TurnResult {
	res := TurnResult{Direction: dir, Status: s.status}
	if !s.AcceptsInput() {
		return res
	}
	res.Accepted = true

	first := Move(s.grid, dir, &s.ids)
	res.Directional = first
	if !first.Moved {
		return res
	}
	res.Moved = true
	s.score += first.Score

	// The bubble pass runs after every effective move, "up" included.
	bubble := ShiftUp(first.Grid, &s.ids)
	res.Bubble = bubble
	s.score += bubble.Score

	grid, spawned := AddRandomTile(ClearAnnotations(bubble.Grid), s.rng, &s.ids, s.rules.Spawn4Prob)
	s.grid = grid
	s.moves++
	s.status = s.evaluate(grid)

	res.Spawned = spawned
	res.ScoreDelta = first.Score + bubble.Score
	res.Status = s.status

	if s.score > s.best {
		s.best = s.score
		res.BestChanged = true
	}
	return res
}

// evaluate returns the status for a freshly committed grid.
func (s *Session) evaluate(grid Grid) Status {
	switch {
	case HasReached(grid, s.rules.WinValue) && !s.hasWonOnce:
		return StatusWon
	case !CanMove(grid):
		return StatusLost
	default:
		return StatusPlaying
	}
}

// Continue acknowledges a win so play can go on past the target.
// It has no effect unless the status is won.
func (s *Session) Continue() {
	if s.status != StatusWon {
		return
	}
	s.hasWonOnce = true
	s.status = StatusPlaying
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	return State{
		Grid:       s.grid,
		Tiles:      Tiles(s.grid),
		Score:      s.score,
		BestScore:  s.best,
		Status:     s.status,
		HasWonOnce: s.hasWonOnce,
	}
}

// Grid returns the committed grid.
func (s *Session) Grid() Grid { return s.grid }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// BestScore returns the best score seen by this session.
func (s *Session) BestScore() int { return s.best }

// SetBestScore raises the best score; lower values are ignored.
func (s *Session) SetBestScore(best int) {
	if best > s.best {
		s.best = best
	}
}

// Status returns the game status.
func (s *Session) Status() Status { return s.status }

// HasWonOnce reports whether the win was already acknowledged.
func (s *Session) HasWonOnce() bool { return s.hasWonOnce }

// Moves returns the number of effective turns played since the last new game.
func (s *Session) Moves() int { return s.moves }

// Rules returns the session rules.
func (s *Session) Rules() Rules { return s.rules }
