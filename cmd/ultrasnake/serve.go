package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ultrasnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Ultra Snake SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the setup menu and its own
game. All sessions share the server's score database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ultrasnake/host_key

Examples:
  ultrasnake serve                           # Listen on :23234
  ultrasnake serve --ssh :2222               # Listen on port 2222
  ultrasnake serve --host-key ./my_host_key  # Use specific host key
  ultrasnake serve --difficulty hard         # Preselect hard in the menu

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, logCloser, err := newLogger(os.Stderr, "ultrasnake-ssh")
	if err != nil {
		return err
	}
	defer logCloser.Close()

	defaults := runtimeConfig()
	defaults.Seed = 0

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Defaults:    defaults,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting Ultra Snake SSH server on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
