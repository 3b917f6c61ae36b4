package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubble2048/internal/core"
	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
	"github.com/vovakirdan/bubble2048/internal/platform/tui"
	"github.com/vovakirdan/bubble2048/internal/registry"
	"github.com/vovakirdan/bubble2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Bubble 2048 in the terminal",
	Long: `Start a game of Bubble 2048.

Every move that changes the board is followed by an upward "bubble" pass:
all tiles slide up and merge once more, then a new tile appears.

Controls:
  Arrows/WASD/hjkl - Move
  Mouse drag       - Swipe
  P/Space          - Pause
  C                - Continue after reaching 2048
  R/N              - New game
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5% of new tiles are 4s
  normal - 10% of new tiles are 4s
  hard   - 20% of new tiles are 4s
  fixed  - Use the probability from the config file

Examples:
  bubble2048 play
  bubble2048 play --difficulty hard
  bubble2048 play --seed 42
  bubble2048 play --config ./my-bubble2048.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := registry.Create(bubble2048.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := tuiLogger()
	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
