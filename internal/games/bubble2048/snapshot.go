package bubble2048

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64 `json:"tick" yaml:"tick"`
	Score      int    `json:"score" yaml:"score"`
	Best       int    `json:"best" yaml:"best"`
	Board      Board  `json:"board" yaml:"board"`
	MaxTile    int    `json:"max_tile" yaml:"max_tile"`
	State      Status `json:"state" yaml:"state"`
	HasWonOnce bool   `json:"has_won_once" yaml:"has_won_once"`
	Moves      int    `json:"moves" yaml:"moves"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := SnapshotOf(g.session)
	snap.Tick = g.tick
	snap.Best = g.BestScore()
	return snap
}

// SnapshotOf captures a session without platform state.
func SnapshotOf(s *Session) Snapshot {
	grid := s.Grid()
	return Snapshot{
		Score:      s.Score(),
		Best:       s.BestScore(),
		Board:      BoardOf(grid),
		MaxTile:    MaxTile(grid),
		State:      s.Status(),
		HasWonOnce: s.HasWonOnce(),
		Moves:      s.Moves(),
	}
}
