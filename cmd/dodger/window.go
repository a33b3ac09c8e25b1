package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dodger/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open Space Dodger in a window sized to the configured viewport.

Controls:
  Arrows/WASD  - Move (held while the key is down)
  Enter        - Start / restart after game over
  Esc/Q        - Quit

Resizing the window resizes the playfield.`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	sess := openSession(os.Stderr, "dodger")

	game := sess.newGame()
	runErr := gui.Run(game, runtimeConfig(0, 0), gui.Options{
		Recorder: sess.keeper,
		Logger:   sess.logger,
	})

	sess.Close()

	if runErr != nil {
		fatal("running window: %v", runErr)
	}
}
