package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble2048/internal/core"
	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func tick() tea.Msg {
	return TickMsg(time.Now())
}

func updateGame(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func newTestGameModel(t *testing.T) GameModel {
	t.Helper()
	m := NewGameModel(bubble2048.New(), nil, testConfig(), nil)
	m.Init()
	return m
}

func TestGameModelPauseAndBack(t *testing.T) {
	m := newTestGameModel(t).WithBackToMenu()

	m, _ = updateGame(t, m, runeKey("p"))
	m, _ = updateGame(t, m, tick())
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}

	m, cmd := updateGame(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc on a paused game should go back to the menu")
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
}

func TestGameModelBackIgnoredWhilePlaying(t *testing.T) {
	m := newTestGameModel(t).WithBackToMenu()
	m, _ = updateGame(t, m, tick())

	m, _ = updateGame(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back should be ignored while playing")
	}
}

func TestGameModelBackNeedsOptIn(t *testing.T) {
	m := newTestGameModel(t)
	m, _ = updateGame(t, m, runeKey("p"))
	m, _ = updateGame(t, m, tick())

	m, _ = updateGame(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back should need WithBackToMenu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGameModel(t)
	m, cmd := updateGame(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelMoveClearsFrame(t *testing.T) {
	game := bubble2048.New()
	m := NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	for _, key := range []string{"a", "w", "d", "s"} {
		m, _ = updateGame(t, m, runeKey(key))
		m, _ = updateGame(t, m, tick())
		if m.inputFrame.Has(core.ActionLeft) || m.inputFrame.Has(core.ActionUp) {
			t.Fatal("input frame should be cleared after a tick")
		}
		if game.Session().Moves() > 0 {
			return
		}
	}
	t.Error("no direction moved a fresh board")
}

func TestGameModelResize(t *testing.T) {
	m := newTestGameModel(t)
	m, _ = updateGame(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = updateGame(t, m, tick())

	if !m.gameState.Paused {
		t.Error("too small window should hold the game")
	}
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("view should ask for a larger window")
	}
}

func TestGameModelViewShowsHUD(t *testing.T) {
	m := newTestGameModel(t)
	view := m.View()
	for _, want := range []string{"Score: 0", "Best: 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), nil)
	if m.ID() == "" {
		t.Fatal("session should have an id")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatal("enter on New Game should start a game")
	}

	m = updateSession(t, m, runeKey("p"))
	m = updateSession(t, m, tick())
	m = updateSession(t, m, runeKey("b"))
	if m.screen != screenMenu || m.gameModel != nil {
		t.Fatal("back on a paused game should return to the menu")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	m = updateSession(t, m, runeKey("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionModelKeepsDifficulty(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), nil)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.menu.Difficulty(); got != menuDifficulties[1] {
		t.Fatalf("difficulty = %q, want %q", got, menuDifficulties[1])
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.menu.Difficulty(); got != menuDifficulties[1] {
		t.Errorf("difficulty after scores = %q, want %q", got, menuDifficulties[1])
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColor(2, 0, "cd", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("first line %q missing text", lines[0])
	}
}
