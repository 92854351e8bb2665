package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a paused or finished game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  platformer menu
  platformer menu --fps 60
  platformer menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := setup()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	store := openStore(a.logger)
	runErr := tui.RunSession(a.env(store))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		a.Close()
		fatal("%v", runErr)
	}
}
