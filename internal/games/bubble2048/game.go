// Package bubble2048 implements Bubble 2048: classic 2048 where every
// effective move is followed by an upward "bubble" pass before the new
// tile spawns.
package bubble2048

import (
	"math/rand"

	"github.com/vovakirdan/bubble2048/internal/config"
	"github.com/vovakirdan/bubble2048/internal/core"
	"github.com/vovakirdan/bubble2048/internal/registry"
)

// GameID is the registry identifier.
const GameID = "bubble2048"

// Minimum terminal size: board plus HUD and hint lines.
const (
	minScreenW = 31
	minScreenH = 14
)

// Game adapts a Session to the platform game loop and adds the turn
// animation.
type Game struct {
	cfg     config.GameConfig
	preset  config.DifficultyPreset
	session *Session
	anim    animator
	tick    uint64
	best    int

	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// configPath stores the custom config path set via CLI.
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset by name.
// Unknown names keep the configured spawn probability.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// New creates a new Bubble 2048 game.
func New() *Game {
	return &Game{cfg: config.DefaultGameConfig()}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubble 2048"
}

// SetDifficulty overrides the package-level preset for this game only.
// It takes effect on the next Reset.
func (g *Game) SetDifficulty(preset config.DifficultyPreset) {
	g.preset = preset
}

// LoadConfig resolves the configuration from the CLI path and preset.
func LoadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(configPath)
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg, err
}

// RulesFromConfig converts the rules section of a config.
func RulesFromConfig(cfg config.GameConfig) Rules {
	return Rules{
		WinValue:     cfg.Rules.WinValue,
		Spawn4Prob:   cfg.Rules.Spawn4Prob,
		InitialTiles: cfg.Rules.InitialTiles,
	}
}

// Reset starts a new game. The best score survives resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	// A broken config file falls back to defaults; the game stays playable.
	cfg, _ := LoadConfig()
	if g.preset != "" {
		config.ApplyPreset(&cfg, g.preset)
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig starts a new game with an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.GameConfig) {
	if g.session != nil {
		g.best = max(g.best, g.session.BestScore())
	}

	g.cfg = cfg
	rng := rand.New(rand.NewSource(runtime.Seed))
	g.session = NewSession(rng, RulesFromConfig(cfg), g.best)
	g.anim = newAnimator(cfg.Animation)
	g.tick = 0
	g.paused = false
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()
}

// Resize adapts to a new terminal size without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.session.Status() == StatusPlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.update()

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	switch g.session.Status() {
	case StatusWon:
		if in.Has(core.ActionContinue) {
			g.session.Continue()
		}
		return core.StepResult{State: g.State()}
	case StatusLost:
		return core.StepResult{State: g.State()}
	}

	// Directional input is gated while a turn is still animating.
	if g.anim.active() {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFor(in); ok {
		g.Play(dir)
	}

	return core.StepResult{State: g.State()}
}

// Play runs one turn and starts its animation when the board changed.
func (g *Game) Play(dir Direction) TurnResult {
	res := g.session.Move(dir)
	if res.Moved {
		g.anim.start(res)
	}
	return res
}

// restart begins a new game on the same session, keeping the best score.
func (g *Game) restart() {
	g.session.NewGame()
	g.anim.stop()
	g.paused = false
}

// directionFor maps the first directional action in the frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// Session returns the underlying rules session.
func (g *Game) Session() *Session {
	return g.session
}

// Animating reports whether a turn animation is playing.
func (g *Game) Animating() bool {
	return g.anim.active()
}

// BestScore returns the best score known to the game.
func (g *Game) BestScore() int {
	if g.session == nil {
		return g.best
	}
	return max(g.best, g.session.BestScore())
}

// SetBestScore raises the best score, typically from storage.
func (g *Game) SetBestScore(best int) {
	g.best = max(g.best, best)
	if g.session != nil {
		g.session.SetBestScore(best)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{BestScore: g.best}
	}
	status := g.session.Status()
	return core.GameState{
		Score:     g.session.Score(),
		BestScore: g.BestScore(),
		GameOver:  status == StatusLost,
		Paused:    g.paused || g.tooSmall || status == StatusWon,
	}
}
