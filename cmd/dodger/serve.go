package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dodger/internal/platform/tui"
	"github.com/vovakirdan/space-dodger/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Space Dodger SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own game. Scores are stored per-server
(all users share the same high score and run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dodger/host_key

Examples:
  dodger serve                           # Listen on :23234 with auto-generated key
  dodger serve --ssh :2222               # Listen on port 2222
  dodger serve --host-key ./my_host_key  # Use specific host key
  dodger serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	sess := openSession(os.Stderr, "dodger-ssh")
	defer sess.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.KeyHold = sess.cfg.Controls.KeyHold()
	cfg.NewGame = func() registry.Game { return sess.newGame() }

	server, err := tui.NewSSHServer(cfg, sess.store, sess.keeper, sess.logger)
	if err != nil {
		sess.Close()
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting Space Dodger SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := server.ListenAndServe(ctx); err != nil {
		sess.Close()
		fatal("server: %v", err)
	}
}
