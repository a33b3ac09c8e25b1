package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-dodger/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start Space Dodger in the terminal.

Controls:
  Arrows/WASD  - Move
  Enter        - Start / restart after game over
  Tab          - Past runs (when not playing)
  Ctrl+S       - Screenshot to ~/.dodger/screenshots and the clipboard
  Q/Ctrl+C     - Quit

Terminals only report key presses, so a key counts as held until no
repeat arrives within controls.key_hold_ms.

Examples:
  dodger play
  dodger play --seed 42
  dodger play --config ./my-dodger.yaml --log-file dodger.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	// Logs on stderr would corrupt the alt screen
	sess := openSession(io.Discard, "dodger")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	runErr := tui.Run(sess.newGame(), runtimeConfig(width, height), tui.Options{
		Store:       sess.store,
		Recorder:    sess.keeper,
		KeyHold:     sess.cfg.Controls.KeyHold(),
		Logger:      sess.logger,
		Screenshots: true,
	})

	// Close store before potential exit
	sess.Close()

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
