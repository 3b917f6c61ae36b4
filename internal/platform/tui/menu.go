package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble2048/internal/config"
	"github.com/vovakirdan/bubble2048/internal/core"
	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
	"github.com/vovakirdan/bubble2048/internal/storage"
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

// menuDifficulties is the cycle order of the difficulty entry.
var menuDifficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyEasy,
}

const (
	menuItemPlay = iota
	menuItemDifficulty
	menuItemScores
	menuItemQuit
	menuItemCount
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor     int
	difficulty int
	width      int
	height     int
	best       int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	choice     MenuChoice
	standalone bool // Quit the program once a choice is made
}

// NewMenuModel creates a new start menu. The best score is read from
// the store when available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.BestScore(bubble2048.GameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "right", "l":
		if m.cursor == menuItemDifficulty {
			m.difficulty = (m.difficulty + 1) % len(menuDifficulties)
		}
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return m.choose(MenuChoiceQuit)

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuItemCount-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		return m.choose(MenuChoiceScores)

	case MenuActionSelect:
		switch m.cursor {
		case menuItemPlay:
			return m.choose(MenuChoicePlay)
		case menuItemDifficulty:
			m.difficulty = (m.difficulty + 1) % len(menuDifficulties)
		case menuItemScores:
			return m.choose(MenuChoiceScores)
		case menuItemQuit:
			return m.choose(MenuChoiceQuit)
		}
	}

	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	if m.standalone || c == MenuChoiceQuit {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B U B B L E   2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Every move ends with tiles bubbling up.", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.best), m.width))
	b.WriteString("\n\n")

	items := [menuItemCount]string{
		menuItemPlay:       "New Game",
		menuItemDifficulty: fmt.Sprintf("Difficulty: < %s >", m.Difficulty()),
		menuItemScores:     "High Scores",
		menuItemQuit:       "Quit",
	}
	for i, item := range items {
		line := "  " + item
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuDifficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.choice == MenuChoiceQuit
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu shows the start menu in its own program and returns the choice,
// the chosen difficulty and the possibly resized config.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuChoice, config.DifficultyPreset, core.RuntimeConfig, error) {
	model := NewMenuModel(store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuChoiceQuit, "", cfg, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Choice() == MenuChoiceNone {
		return MenuChoiceQuit, "", cfg, nil
	}
	return m.Choice(), m.Difficulty(), m.Config(), nil
}
