package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-dodger/internal/platform/tui"
	"github.com/vovakirdan/space-dodger/internal/registry"
	"github.com/vovakirdan/space-dodger/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTable bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show past runs and the high score",
	Long: `Display the best runs, the high score and run statistics.

Examples:
  dodger scores
  dodger scores --limit 25
  dodger scores --table      # Interactive table
  dodger scores --clear      # Forget every run and the high score`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeGameIDs,
	Run:               runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs and the high score")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Browse runs in an interactive table")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "dodger"
	if len(args) == 1 {
		gameID = args[0]
	}

	info, err := lookupGame(gameID)
	if err != nil {
		fatal("%v", err)
	}
	title := info.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fatal("clearing scores: %v", err)
		}
		fmt.Printf("Cleared all runs for %s.\n", title)
		return
	}

	if flagScoresTable {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, gameID, title, width, height); err != nil {
			store.Close()
			fatal("running scoreboard: %v", err)
		}
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dodger play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Runs: %d   Average: %.1f   Total: %d\n", stats.GamesCount, stats.AvgScore, stats.TotalScore)
	}
}

// lookupGame finds a registered game by ID.
func lookupGame(id string) (registry.GameInfo, error) {
	games := registry.List()
	ids := make([]string, 0, len(games))
	for _, info := range games {
		if info.ID == id {
			return info, nil
		}
		ids = append(ids, info.ID)
	}
	return registry.GameInfo{}, fmt.Errorf("unknown game %q (available: %s)", id, strings.Join(ids, ", "))
}

func completeGameIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, info := range registry.List() {
		ids = append(ids, info.ID+"\t"+info.Title)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
