package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/session"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show the run history",
	Long: `Display the best runs, optionally for one mode only.

Examples:
  platformer scores
  platformer scores endless
  platformer scores campaign --limit 25
  platformer scores endless --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the runs instead of showing them")
}

func runScores(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if mode != string(session.ModeCampaign) && mode != string(session.ModeEndless) {
			fatal("unknown mode %q (use campaign or endless)", mode)
		}
	}

	a, err := setup()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	store := openStore(a.logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	title := "All Modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Score", "Mode", "World", "Coins", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-5s  %-12s  %s\n", "----", "-----", "----", "-----", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-8s  %-5d  %-5d  %-12s  %s\n",
			i+1, r.Score, r.Mode, r.World, r.Coins, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if st, err := store.Stats(mode); err == nil && st.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Furthest world: %d  Coins: %d\n",
			st.Runs, st.HighScore, st.AvgScore, st.BestWorld, st.TotalCoins)
	}
}
