// Package interp runs script programs against the engine state: the
// executor with its command and condition tables, resumable waits, and the
// Interpreter that schedules one tick at a time.
package interp

import (
	"time"

	"github.com/vovakirdan/tui-agi/internal/resource"
)

// Presenter receives the composited picture area at the end of every full
// tick that animates objects, and after show.pic.
type Presenter interface {
	Present(p *resource.Planes)
}

// Text renders everything that is not part of the picture area: message
// windows, text rows, the status line and the input line. Rows and
// columns are text cells; a row or column of -1 centres the window.
type Text interface {
	OpenWindow(msg string, row, col, width int)
	CloseWindow()
	Display(row, col int, msg string)
	ClearLines(top, bottom, colour int)
	SetTextAttribute(fg, bg int)
	SetTextMode(on bool)
	SetStatusLine(on bool)
	InputLine(prompt, line string)
}

// Entry is one journal record.
type Entry struct {
	Time    time.Time
	Kind    string // "log" or "fault"
	Tick    uint64
	Room    int
	Logic   int
	Message string
}

// Journal persists log() entries and tick faults.
type Journal interface {
	Record(e Entry) error
}

type nopPresenter struct{}

func (nopPresenter) Present(*resource.Planes) {}

type nopText struct{}

func (nopText) OpenWindow(string, int, int, int) {}
func (nopText) CloseWindow()                     {}
func (nopText) Display(int, int, string)         {}
func (nopText) ClearLines(int, int, int)         {}
func (nopText) SetTextAttribute(int, int)        {}
func (nopText) SetTextMode(bool)                 {}
func (nopText) SetStatusLine(bool)               {}
func (nopText) InputLine(string, string)         {}

type nopJournal struct{}

func (nopJournal) Record(Entry) error { return nil }
