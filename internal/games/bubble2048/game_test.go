package bubble2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bubble2048/internal/config"
	"github.com/vovakirdan/bubble2048/internal/core"
	"github.com/vovakirdan/bubble2048/internal/registry"
)

// newTestGame builds a game with the given animation timing and a loaded board.
func newTestGame(t *testing.T, anim config.AnimationConfig, board Board) *Game {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cfg.Animation = anim

	g := New()
	g.ResetWithConfig(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}, cfg)
	g.Session().Load(board, 0, false)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%s not registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Bubble 2048" {
		t.Errorf("title = %q", g.Title())
	}
	if _, ok := g.(registry.BestScorer); !ok {
		t.Error("game should carry a best score")
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}

	run := func() Snapshot {
		cfg := config.DefaultGameConfig()
		cfg.Animation = config.AnimationConfig{}
		g := New()
		g.ResetWithConfig(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99}, cfg)
		for i := range 400 {
			g.Step(frame(inputs[i%len(inputs)]))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if a.Tick != 400 {
		t.Errorf("tick = %d, want 400", a.Tick)
	}
}

func TestInputGatedWhileAnimating(t *testing.T) {
	anim := config.AnimationConfig{SlideTicks: 3, BubbleDelayTicks: 2, PopTicks: 2}
	g := newTestGame(t, anim, Board{{0, 0, 0, 2}})

	g.Step(frame(core.ActionLeft))
	if g.Session().Moves() != 1 {
		t.Fatalf("first move not applied")
	}
	if !g.Animating() {
		t.Fatal("turn should be animating")
	}

	g.Step(frame(core.ActionRight))
	if g.Session().Moves() != 1 {
		t.Error("input during animation should be ignored")
	}

	for i := 0; g.Animating() && i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Animating() {
		t.Fatal("animation never finished")
	}

	g.Step(frame(core.ActionRight))
	if g.Session().Moves() != 2 {
		t.Errorf("moves = %d, want 2 after animation", g.Session().Moves())
	}
}

func TestAnimationPhases(t *testing.T) {
	s, _ := newTestSession(Board{{}, {}, {}, {0, 2, 0, 0}})
	turn := s.Move(DirLeft)
	if !turn.Bubble.Moved || turn.Spawned == nil {
		t.Fatalf("setup turn should bubble and spawn: %+v", turn)
	}

	a := newAnimator(config.AnimationConfig{SlideTicks: 2, BubbleDelayTicks: 1, PopTicks: 1})
	a.start(turn)

	var seen []AnimationPhase
	for a.active() {
		if len(seen) == 0 || seen[len(seen)-1] != a.phase {
			seen = append(seen, a.phase)
		}
		a.update()
	}

	want := []AnimationPhase{PhaseSlide, PhaseBubbleDelay, PhaseBubble, PhasePop}
	if len(seen) != len(want) {
		t.Fatalf("phases = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestAnimationSkipsBubbleWhenNothingRises(t *testing.T) {
	s, _ := newTestSession(Board{{0, 0, 0, 2}})
	turn := s.Move(DirLeft)
	if turn.Bubble.Moved {
		t.Fatal("top-row move should not bubble")
	}

	a := newAnimator(config.AnimationConfig{SlideTicks: 1, BubbleDelayTicks: 5, PopTicks: 1})
	a.start(turn)
	a.update()
	if a.phase != PhasePop {
		t.Errorf("phase after slide = %s, want pop", a.phase)
	}
}

func TestAnimatorZeroTimingIsInstant(t *testing.T) {
	s, _ := newTestSession(Board{{0, 0, 0, 2}})
	a := newAnimator(config.AnimationConfig{})
	a.start(s.Move(DirLeft))
	if a.active() {
		t.Errorf("zero timings should skip all phases, got %s", a.phase)
	}
}

func TestSlidesAnimateMergeSources(t *testing.T) {
	grid, ids := gridOf(Board{{2, 2, 0, 4}})
	res := Move(grid, DirLeft, ids)

	anims := slides(res.Tiles)
	if len(anims) != 3 {
		t.Fatalf("got %d animations, want 3 (two merge sources and one slide)", len(anims))
	}
	for _, a := range anims[:2] {
		if !a.Merged || a.To != (Position{0, 0}) || a.Value != 2 {
			t.Errorf("merge source animation = %+v", a)
		}
	}
	if last := anims[2]; last.From != (Position{0, 3}) || last.To != (Position{0, 1}) || last.Merged {
		t.Errorf("slide animation = %+v", last)
	}

	half := TileAnimation{From: Position{0, 3}, To: Position{0, 1}, Progress: 1}
	if row, col := half.interpolate(); row != 0 || col != 1 {
		t.Errorf("finished interpolation = (%v,%v), want (0,1)", row, col)
	}
}

func TestWinOverlayContinue(t *testing.T) {
	g := newTestGame(t, config.AnimationConfig{}, Board{{1024, 1024, 0, 0}})

	res := g.Step(frame(core.ActionLeft))
	if g.Session().Status() != StatusWon {
		t.Fatalf("status = %s, want won", g.Session().Status())
	}
	if !res.State.Paused || res.State.GameOver {
		t.Errorf("won state = %+v, want paused and not over", res.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU WIN!") {
		t.Error("win overlay not rendered")
	}

	g.Step(frame(core.ActionContinue))
	if g.Session().Status() != StatusPlaying || !g.Session().HasWonOnce() {
		t.Error("continue should resume play")
	}
}

func TestRestartKeepsBest(t *testing.T) {
	g := newTestGame(t, config.AnimationConfig{}, Board{{1024, 1024, 0, 0}})
	g.Step(frame(core.ActionLeft))

	g.Step(frame(core.ActionRestart))
	if g.Session().Score() != 0 || g.Session().Status() != StatusPlaying {
		t.Error("restart should start a new game")
	}
	if g.BestScore() != 2048 || g.State().BestScore != 2048 {
		t.Errorf("best = %d, want 2048", g.BestScore())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.BestScore() != 2048 {
		t.Errorf("best after Reset = %d, want 2048", g.BestScore())
	}
}

func TestSetBestScoreFromStorage(t *testing.T) {
	g := New()
	g.SetBestScore(5000)
	g.ResetWithConfig(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}, config.DefaultGameConfig())
	if g.Session().BestScore() != 5000 {
		t.Errorf("session best = %d, want 5000", g.Session().BestScore())
	}
}

func TestLostIsGameOver(t *testing.T) {
	g := newTestGame(t, config.AnimationConfig{}, Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	st := g.Step(core.NewInputFrame()).State
	if !st.GameOver {
		t.Error("locked board should be game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, config.AnimationConfig{}, Board{{0, 0, 0, 2}})

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("should be paused")
	}
	g.Step(frame(core.ActionLeft))
	if g.Session().Moves() != 0 {
		t.Error("moves should be ignored while paused")
	}
	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionLeft))
	if g.Session().Moves() != 1 {
		t.Error("move should apply after unpausing")
	}
}

func TestTooSmallScreen(t *testing.T) {
	cfg := config.DefaultGameConfig()
	g := New()
	g.ResetWithConfig(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1}, cfg)

	if !g.State().Paused {
		t.Error("small screen should pause")
	}
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not rendered")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize to a large screen should unpause")
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, config.AnimationConfig{}, Board{{2048, 4, 0, 0}})
	g.SetBestScore(777)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Bubble 2048", "Score: 0", "Best: 777", "2048"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value int
		want  core.Color
	}{
		{2, core.ColorWhite},
		{8, core.ColorOrange},
		{2048, core.ColorBrightBlue},
		{4096, core.ColorBrightMagenta},
		{1 << 17, core.ColorBrightMagenta},
	}
	for _, tt := range tests {
		if got := TileColor(tt.value); got != tt.want {
			t.Errorf("TileColor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
