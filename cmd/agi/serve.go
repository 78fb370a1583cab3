package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-agi/internal/platform/tui"
	"github.com/vovakirdan/tui-agi/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [game]",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play games from the
catalog.

Each SSH connection runs its own interpreter and journal session. The SSH
command picks the game by catalog ID; without one the game given here is
played. The command "journal" opens the journal viewer instead.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.agi/host_key

Examples:
  agi serve kq1                           # Listen on :23234 with auto-generated key
  agi serve kq1 --ssh :2222               # Listen on port 2222
  agi serve --host-key ./my_host_key      # Catalog games only, specific host key

Users can connect with:
  ssh localhost -p 23234
  ssh localhost -p 23234 -t sq1
  ssh localhost -p 23234 -t journal`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	engineCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	catalog, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}

	// Check the default game opens before accepting connections
	defaultGame := ""
	if len(args) > 0 {
		defaultGame = args[0]
		if _, err := openGame(catalog, defaultGame, engineCfg); err != nil {
			fail("cannot open game: %v", err)
		}
	} else if len(catalog.List()) == 0 {
		fail("no game given and the catalog is empty")
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Engine:      engineCfg,
	}

	server, err := tui.NewSSHServer(cfg, func(name string) (tui.LoadedGame, error) {
		if name == "" {
			if defaultGame == "" {
				return tui.LoadedGame{}, fmt.Errorf("no default game; connect with one of %s", gameIDs(catalog))
			}
			name = defaultGame
		} else if !catalog.Exists(name) {
			// Sessions may only name catalog games, never server paths
			return tui.LoadedGame{}, fmt.Errorf("unknown game %q", name)
		}
		return openGame(catalog, name, engineCfg)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting AGI SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func gameIDs(catalog *registry.Catalog) string {
	var ids []string
	for _, g := range catalog.List() {
		ids = append(ids, g.ID)
	}
	return strings.Join(ids, ", ")
}
