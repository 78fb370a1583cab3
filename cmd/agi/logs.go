package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-agi/internal/platform/tui"
	"github.com/vovakirdan/tui-agi/internal/storage"
)

var (
	flagPlain bool
	flagKind  string
	flagLimit int
	flagClear bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Browse the script journal",
	Long: `Browse the entries scripts wrote with log() and the faults that
aborted interpreter cycles, grouped by play session.

Without --plain an interactive viewer opens: tab switches session, f
cycles the kind filter, q quits.

Examples:
  agi logs
  agi logs --plain --kind fault
  agi logs --plain --limit 20
  agi logs --clear`,
	Run: runLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print entries instead of opening the viewer")
	logsCmd.Flags().StringVar(&flagKind, "kind", "", "Only show entries of this kind: log, fault")
	logsCmd.Flags().IntVar(&flagLimit, "limit", 50, "Maximum entries to print")
	logsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every session and entry")
}

func runLogs(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		fail("opening journal database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearJournal(); err != nil {
			fail("clearing journal: %v", err)
		}
		fmt.Println("Journal cleared.")
		return
	}

	if !flagPlain {
		width, height := 100, 30 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	entries, err := store.Entries(flagKind, flagLimit)
	if err != nil {
		fail("reading journal: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-7s  %-8s  %-4s  %-5s  %s\n", "Time", "Session", "Tick", "Room", "Kind", "Message")
	fmt.Printf("  %-16s  %-7s  %-8s  %-4s  %-5s  %s\n", "----", "-------", "----", "----", "----", "-------")

	for _, e := range entries {
		fmt.Printf("  %-16s  %-7d  %-8d  %-4d  %-5s  %s\n",
			e.Time.Format("2006-01-02 15:04"), e.SessionID, e.Tick, e.Room, e.Kind, e.Message)
	}

	if faults, err := store.FaultCount(); err == nil && faults > 0 {
		fmt.Println()
		fmt.Printf("Faults recorded: %d\n", faults)
	}
}
