package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

var (
	flagWorld   int
	flagEndless bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing straight away, without the menu.

Controls:
  Left/Right, A/D, H/L   - Walk
  Shift+arrow, X         - Run
  Space/Up/W/Z           - Jump
  P                      - Pause
  B/Esc                  - Back (when paused or after game over)
  R                      - Restart (after game over)
  Ctrl+S                 - Save a text screenshot
  Q/Ctrl+C               - Quit

Difficulty options:
  easy   - Start at lowest difficulty with 5 lives
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty with 2 lives
  fixed  - No progression, stays at config's initial level

Examples:
  platformer play
  platformer play --world 2
  platformer play --endless --difficulty hard
  platformer play --seed 42 --config ./my-platformer.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagWorld, "world", 1, "World (level index) to start from")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless generated worlds")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagWorld < 1 {
		fatal("--world must be at least 1")
	}

	a, err := setup()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	mode := session.ModeCampaign
	if flagEndless {
		mode = session.ModeEndless
	}

	store := openStore(a.logger)
	env := a.env(store)

	ctrl, err := env.NewController(mode, flagWorld)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatal("%v", err)
	}

	runErr := tui.Run(ctrl, env)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		a.Close()
		fatal("running game: %v", runErr)
	}
}
