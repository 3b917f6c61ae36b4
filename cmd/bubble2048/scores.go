package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
	"github.com/vovakirdan/bubble2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresYes   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores, the best score and overall statistics.

Examples:
  bubble2048 scores
  bubble2048 scores --limit 25
  bubble2048 scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVarP(&flagScoresYes, "yes", "y", false, "Do not ask for confirmation when clearing")
}

func runScores(_ *cobra.Command, _ []string) {
	gameID := bubble2048.GameID

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		clearScores(store, gameID)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Bubble 2048")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubble2048 play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Max Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "--------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-8d  %-6d  %s\n",
			i+1, entry.Score, entry.MaxTile, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Games: %d  Average: %.0f  Best tile: %d\n", stats.GamesCount, stats.AvgScore, stats.BestTile)
	}
}

func clearScores(store *storage.Store, gameID string) {
	if !flagScoresYes {
		fmt.Print("Delete all scores and the best score? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}
	if err := store.ClearScores(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Scores cleared.")
}
