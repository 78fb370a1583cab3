package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-agi/internal/platform/tui"
	"github.com/vovakirdan/tui-agi/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing a game from the catalog or a game directory.

Controls:
  Arrows     - Walk
  Letters    - Type a command, Enter to submit
  Esc        - Menu
  F1-F10     - Game function keys
  Ctrl+S     - Save a text screenshot to ~/.agi/screenshots
  Ctrl+C     - Quit

Speed options:
  fastest  - A cycle every tick
  fast     - A cycle every 3 ticks
  normal   - A cycle every 6 ticks (the game may change it)
  slow     - A cycle every 12 ticks

Examples:
  agi play kq1
  agi play ./kq1 --speed slow
  agi play sq1 --config ./my-engine.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	game := setup(args[0])
	cfg := game.Config

	// Get terminal size to pick the picture scale
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Log to a file so the alternate screen stays clean
	logger := cfg.NewLogger(os.Stderr, "agi")
	if f, logErr := openLogFile(); logErr == nil {
		logger = cfg.NewLogger(f, "agi")
		defer f.Close()
	}

	opts := tui.Options{Config: cfg, Logger: logger, Width: width, Height: height}

	var session *storage.SessionJournal
	if cfg.Journal.Enabled {
		store, openErr := storage.Open(cfg.Journal.Path)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", openErr)
			// Continue without the journal - the game still works
		} else {
			defer store.Close()
			var err error
			session, err = store.Journal(game.ID, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not start journal session: %v\n", err)
			} else {
				opts.Journal = session
			}
		}
	}

	ticks, faults, runErr := tui.Run(game.Resources, opts)

	if session != nil {
		if err := session.End(ticks, faults); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not end journal session: %v\n", err)
		}
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
	if faults > 0 {
		fmt.Printf("%d cycles faulted in %d ticks; see 'agi logs'\n", faults, ticks)
	}
}
