// bubble2048 is the 2048 variant where tiles bubble up after every move.
//
// Usage:
//
//	bubble2048 list             - List available games
//	bubble2048 play             - Play in the terminal
//	bubble2048 menu             - Start menu with difficulty and high scores
//	bubble2048 serve            - Start SSH server for remote play
//	bubble2048 web              - Start HTTP/WebSocket server
//	bubble2048 scores           - Show high scores
//	bubble2048 sim              - Play a headless game and print the result
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bubble2048/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubble2048",
	Short: "Bubble 2048 - 2048 where tiles bubble up after every move",
	Long: `Bubble 2048 is the classic sliding tile game with a twist: after every
move that changes the board, all tiles also slide up and merge once more
before the new tile appears.

Available commands:
  list     - Show all available games
  play     - Play in the terminal
  menu     - Start menu with difficulty picker and high scores
  serve    - Start SSH server for remote play
  web      - Start HTTP/WebSocket server
  scores   - View high scores
  sim      - Play a headless game and print the final board

Examples:
  bubble2048 play
  bubble2048 play --difficulty hard
  bubble2048 menu
  bubble2048 serve --ssh :2222
  bubble2048 web --addr :8080
  bubble2048 sim --seed 7 --random 200 --yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		bubble2048.SetConfigPath(flagConfig)
		bubble2048.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bubble2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
