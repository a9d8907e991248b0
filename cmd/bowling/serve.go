package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
	"github.com/vovakirdan/tui-bowling/internal/config"
	"github.com/vovakirdan/tui-bowling/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bowling SSH server",
	Long: `Start an SSH server that lets people connect and bowl.

Every SSH connection gets its own lane picker and its own lanes; rounds are
recorded under the SSH user name in the server's database, so everyone
shares one scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bowling/host_key

Examples:
  bowling serve                           # Listen on :23234
  bowling serve --ssh :2222               # Listen on port 2222
  bowling serve --host-key ./my_host_key  # Use specific host key
  bowling serve --db ./scores.db          # Use specific database

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

func runServe(_ *cobra.Command, _ []string) {
	if _, err := config.LoadBowling(flagConfig); err != nil {
		fail("%v", err)
	}

	logger := newLogger(os.Stderr, "bowling-ssh")
	bowling.SetLogger(logger)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", flagSSHAddr)
	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
