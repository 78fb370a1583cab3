package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-agi/internal/core"
)

// Machine is the part of the interpreter the terminal front end drives.
type Machine interface {
	Tick() error
	KeyDown(code int, mods core.Key)
	KeyUp(code int)
	Type(r rune)
	Quit() bool
	Ticks() uint64
	Faults() int
}

// KeyMapper translates Bubble Tea key messages to interpreter key events.
// Terminals report presses only, so every key the mapper presses is
// released after the next tick.
type KeyMapper struct {
	held []int
}

// NewKeyMapper creates a new key mapper.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var namedKeys = map[tea.KeyType]int{
	tea.KeyEnter:     core.KeyEnter,
	tea.KeyEsc:       core.KeyEscape,
	tea.KeyBackspace: core.KeyBackspace,
	tea.KeyTab:       core.KeyTab,
	tea.KeyUp:        core.KeyUp,
	tea.KeyDown:      core.KeyDown,
	tea.KeyLeft:      core.KeyLeft,
	tea.KeyRight:     core.KeyRight,
	tea.KeyHome:      core.KeyHome,
	tea.KeyEnd:       core.KeyEnd,
	tea.KeyPgUp:      core.KeyPageUp,
	tea.KeyPgDown:    core.KeyPageDown,
	tea.KeyF1:        core.KeyF1,
	tea.KeyF2:        core.KeyF1 + 1,
	tea.KeyF3:        core.KeyF1 + 2,
	tea.KeyF4:        core.KeyF1 + 3,
	tea.KeyF5:        core.KeyF1 + 4,
	tea.KeyF6:        core.KeyF1 + 5,
	tea.KeyF7:        core.KeyF1 + 6,
	tea.KeyF8:        core.KeyF1 + 7,
	tea.KeyF9:        core.KeyF1 + 8,
	tea.KeyF10:       core.KeyF10,
}

// Apply feeds msg to m. It reports whether msg is the quit key.
func (km *KeyMapper) Apply(msg tea.KeyMsg, m Machine) (quit bool) {
	if msg.Type == tea.KeyCtrlC {
		return true
	}

	var mods core.Key
	if msg.Alt {
		mods |= core.AltBit
	}

	if code, ok := namedKeys[msg.Type]; ok {
		km.press(m, code, mods)
		return false
	}

	switch {
	// Control letters arrive as their ASCII codes 1-26.
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		km.press(m, 'A'+int(msg.Type)-1, mods|core.CtrlBit)

	case msg.Type == tea.KeySpace:
		m.Type(' ')

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if msg.Alt {
				km.press(m, int(unicode.ToUpper(r)), core.AltBit)
				continue
			}
			m.Type(r)
		}
	}
	return false
}

func (km *KeyMapper) press(m Machine, code int, mods core.Key) {
	m.KeyDown(code, mods)
	km.held = append(km.held, code)
}

// Release lets go of every key pressed since the last call.
func (km *KeyMapper) Release(m Machine) {
	for _, code := range km.held {
		m.KeyUp(code)
	}
	km.held = km.held[:0]
}
