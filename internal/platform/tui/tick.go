// Package tui is the Bubble Tea front end of the interpreter: it ticks the
// interpreter, maps terminal keys, draws the picture with half blocks, and
// serves games and the journal over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an interpreter tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages tickRate times a second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
