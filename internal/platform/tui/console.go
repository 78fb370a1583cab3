package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/interp"
)

// Text screen geometry in character cells.
const (
	TextCols = 40
	TextRows = 25

	statusRow = 0
	inputRow  = 22
	// Picture rows are 1-21 on the text grid.
	pictureTop    = 1
	pictureBottom = 21

	defaultWindowWidth = 30
)

// window is an open message box.
type window struct {
	lines    []string
	row, col int // text grid position, -1 centres
}

// Console implements interp.Text on a 40x25 character grid. Cells that
// scripts never wrote hold rune 0 and let the picture show through.
type Console struct {
	grid       *core.Screen
	window     *window
	textMode   bool
	statusLine bool
	input      string
	fg, bg     core.Color
	state      *engine.State
}

var _ interp.Text = (*Console)(nil)

// NewConsole creates an empty console.
func NewConsole() *Console {
	c := &Console{
		grid: core.NewScreen(TextCols, TextRows),
		fg:   core.White,
		bg:   core.Black,
	}
	c.grid.Fill(core.Cell{})
	return c
}

// Bind gives the status line access to the score and sound flag.
func (c *Console) Bind(s *engine.State) {
	c.state = s
}

// OpenWindow implements interp.Text.
func (c *Console) OpenWindow(msg string, row, col, width int) {
	if width <= 0 || width > TextCols-4 {
		width = defaultWindowWidth
	}
	c.window = &window{lines: core.WrapText(msg, width), row: row, col: col}
}

// CloseWindow implements interp.Text.
func (c *Console) CloseWindow() {
	c.window = nil
}

// Display implements interp.Text.
func (c *Console) Display(row, col int, msg string) {
	fg, bg := core.TextAttr(int(c.fg), int(c.bg), !c.textMode)
	for i, line := range core.WrapText(msg, TextCols-col) {
		c.grid.DrawText(col, row+i, line, fg, bg)
	}
}

// ClearLines implements interp.Text. Rows inside the picture become
// transparent again; the rest take the colour.
func (c *Console) ClearLines(top, bottom, colour int) {
	for y := top; y <= bottom && y < TextRows; y++ {
		cell := core.Cell{Bg: core.Color(colour & 0x0F)}
		if y >= pictureTop && y <= pictureBottom && !c.textMode {
			cell = core.Cell{}
		}
		c.grid.DrawRect(core.NewRect(0, y, TextCols, 1), cell)
	}
}

// SetTextAttribute implements interp.Text.
func (c *Console) SetTextAttribute(fg, bg int) {
	c.fg, c.bg = core.Color(fg&0x0F), core.Color(bg&0x0F)
}

// SetTextMode implements interp.Text. Switching modes clears the grid.
func (c *Console) SetTextMode(on bool) {
	c.textMode = on
	c.window = nil
	if on {
		c.grid.Fill(core.Cell{Rune: ' ', Fg: c.fg, Bg: c.bg})
	} else {
		c.grid.Fill(core.Cell{})
	}
}

// SetStatusLine implements interp.Text.
func (c *Console) SetStatusLine(on bool) {
	c.statusLine = on
}

// InputLine implements interp.Text.
func (c *Console) InputLine(prompt, line string) {
	c.input = prompt + line
}

// TextMode reports whether the full-screen text mode is active.
func (c *Console) TextMode() bool { return c.textMode }

// Window returns the lines of the open message box, or nil.
func (c *Console) Window() []string {
	if c.window == nil {
		return nil
	}
	return c.window.lines
}

// Status returns the status line text, or "" when it is off.
func (c *Console) Status() string {
	if !c.statusLine {
		return ""
	}
	score, maxScore, sound := 0, 0, false
	if c.state != nil {
		score = int(c.state.Vars[engine.VarScore])
		maxScore = int(c.state.Vars[engine.VarMaxScore])
		sound = c.state.Flags[engine.FlagSoundOn]
	}
	on := "off"
	if sound {
		on = "on"
	}
	left := fmt.Sprintf(" Score:%d of %d", score, maxScore)
	right := fmt.Sprintf("Sound:%s ", on)
	pad := TextCols - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + fmt.Sprintf("%*s", pad, "") + right
}
