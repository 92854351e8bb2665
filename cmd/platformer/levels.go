package main

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all level builders",
	Long: `Shows every registered level builder: the built-in worlds, the
random generator and any files loaded from --levels.

Builders marked with a number are part of the campaign in that order;
the overflow builder is used after the campaign and in endless mode.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var (
	flagShowSeed  int64
	flagShowWorld int
)

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a built level as text",
	Long: `Builds a level and prints the whole map, the way the game draws it.

Examples:
  platformer levels show 1-1
  platformer levels show random --seed 7 --world 5`,
	Args: cobra.ExactArgs(1),
	Run:  runLevelsShow,
}

func init() {
	levelsShowCmd.Flags().Int64Var(&flagShowSeed, "seed", 1, "Seed for random builders")
	levelsShowCmd.Flags().IntVar(&flagShowWorld, "world", 1, "Level index passed to the builder")
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(_ *cobra.Command, _ []string) {
	a, err := setup()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	builders := registry.List()
	if len(builders) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, b := range builders {
		maxIDLen = max(maxIDLen, len(b.ID))
	}

	fmt.Printf("  %-4s  %-*s  %s\n", "Camp", maxIDLen, "ID", "Title")
	fmt.Printf("  %-4s  %-*s  %s\n", "----", maxIDLen, "--", "-----")

	sched := a.cfg.Session.Levels
	for _, b := range builders {
		mark := ""
		if i := slices.Index(sched, b.ID); i >= 0 {
			mark = fmt.Sprintf("%d", i+1)
		}
		if b.ID == a.cfg.Session.Overflow {
			mark = "*"
		}
		fmt.Printf("  %-4s  %-*s  %s\n", mark, maxIDLen, b.ID, b.Title)
	}

	fmt.Println()
	fmt.Println("Run 'platformer levels show <id>' to preview a level.")
}

func runLevelsShow(_ *cobra.Command, args []string) {
	a, err := setup()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	b, err := registry.Lookup(args[0])
	if err != nil {
		a.Close()
		fatal("%v (run 'platformer levels' to see available levels)", err)
	}

	//nolint:gosec // Level layout, not security sensitive
	w, err := b.Build(a.cfg, flagShowWorld, rand.New(rand.NewSource(flagShowSeed)))
	if err != nil {
		a.Close()
		fatal("%v", err)
	}

	snap := w.Snapshot(sim.NewPlayer(a.cfg))
	screen := core.NewScreen(w.Cols()*2, w.Rows())
	tui.DrawLevel(screen, snap, 0, 0)

	fmt.Printf("%s (%s), %d x %d tiles, %d enemies\n\n", b.Title(), b.ID(), w.Cols(), w.Rows(), len(snap.Enemies))
	fmt.Println(screen.String())
}
