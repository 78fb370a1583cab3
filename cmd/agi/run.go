package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/interp"
	"github.com/vovakirdan/tui-agi/internal/storage"
)

var (
	flagTicks   int
	flagDismiss bool
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Run a game headless",
	Long: `Run a game without a screen for a number
of ticks, printing every message window the scripts open, then print the
final room, score and fault count.

With --dismiss, Enter is pressed whenever a window is waiting, so the
scripts keep going past messages.

Examples:
  agi run kq1
  agi run ./kq1 --ticks 3600 --dismiss
  agi run kq1 --speed fastest --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to run (60 per second)")
	runCmd.Flags().BoolVar(&flagDismiss, "dismiss", false, "Press Enter to close message windows")
}

// printText prints message windows and displayed text.
type printText struct {
	w    io.Writer
	open bool
}

func (p *printText) OpenWindow(msg string, _, _, _ int) {
	fmt.Fprintf(p.w, "[window] %s\n", msg)
	p.open = true
}
func (p *printText) CloseWindow()                     { p.open = false }
func (p *printText) Display(row, col int, msg string) { fmt.Fprintf(p.w, "[%d,%d] %s\n", row, col, msg) }
func (p *printText) ClearLines(int, int, int)         {}
func (p *printText) SetTextAttribute(int, int)        {}
func (p *printText) SetTextMode(bool)                 {}
func (p *printText) SetStatusLine(bool)               {}
func (p *printText) InputLine(string, string)         {}

func runHeadless(_ *cobra.Command, args []string) {
	game := setup(args[0])
	cfg := game.Config

	text := &printText{w: os.Stdout}
	opts := interp.ConfigOptions(cfg, cfg.NewLogger(os.Stderr, "agi"))
	opts.Text = text

	var session *storage.SessionJournal
	if cfg.Journal.Enabled {
		if store, openErr := storage.Open(cfg.Journal.Path); openErr == nil {
			defer store.Close()
			var err error
			if session, err = store.Journal(game.ID, ""); err == nil {
				opts.Journal = session
			}
		}
	}

	it := interp.New(game.Resources, opts)
	pressed := false
	for i := 0; i < flagTicks && !it.Quit(); i++ {
		//nolint:errcheck // faults are counted and journaled by the interpreter
		it.Tick()
		if pressed {
			it.KeyUp(core.KeyEnter)
			pressed = false
		}
		if flagDismiss && text.open && it.Waiting() != nil {
			it.KeyDown(core.KeyEnter, 0)
			pressed = true
		}
	}

	if session != nil {
		if err := session.End(it.Ticks(), it.Faults()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not end journal session: %v\n", err)
		}
	}

	s := it.State()
	fmt.Printf("ticks:  %d\n", it.Ticks())
	fmt.Printf("room:   %d\n", s.Vars[engine.VarCurRoom])
	fmt.Printf("score:  %d of %d\n", s.Vars[engine.VarScore], s.Vars[engine.VarMaxScore])
	fmt.Printf("faults: %d\n", it.Faults())
	if w := it.Waiting(); w != nil {
		fmt.Printf("waiting: %s\n", w.Reason)
	}
	if it.Quit() {
		fmt.Println("quit:   yes")
	}
}
