package core

import "fmt"

// Key is one entry of the key event queue. Key-down events carry the key
// code (0-255) combined with modifier bits; typed printable characters
// carry CharBit and the character code.
type Key int

// Modifier and class bits of a Key.
const (
	ShiftBit Key = 0x10000
	CtrlBit  Key = 0x20000
	AltBit   Key = 0x40000
	CharBit  Key = 0x80000
)

// Key codes, numbered like browser key codes.
const (
	KeyBackspace = 8
	KeyTab       = 9
	KeyClear     = 12 // keypad 5
	KeyEnter     = 13
	KeyEscape    = 27
	KeySpace     = 32
	KeyPageUp    = 33
	KeyPageDown  = 34
	KeyEnd       = 35
	KeyHome      = 36
	KeyLeft      = 37
	KeyUp        = 38
	KeyRight     = 39
	KeyDown      = 40
	KeyF1        = 112
	KeyF10       = 121
)

// Char returns the Key for a typed character.
func Char(r rune) Key {
	return CharBit | Key(r&0xFFFF)
}

// Code returns the key code without modifiers.
func (k Key) Code() int {
	return int(k & 0xFF)
}

// IsChar reports whether k is a typed character.
func (k Key) IsChar() bool {
	return k&CharBit != 0
}

// Rune returns the character of a typed-character key, or 0.
func (k Key) Rune() rune {
	if !k.IsChar() {
		return 0
	}
	return rune(k & 0xFFFF)
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k.IsChar() {
		return fmt.Sprintf("%q", k.Rune())
	}
	prefix := ""
	if k&CtrlBit != 0 {
		prefix += "ctrl+"
	}
	if k&AltBit != 0 {
		prefix += "alt+"
	}
	if k&ShiftBit != 0 {
		prefix += "shift+"
	}
	switch k.Code() {
	case KeyBackspace:
		return prefix + "backspace"
	case KeyTab:
		return prefix + "tab"
	case KeyEnter:
		return prefix + "enter"
	case KeyEscape:
		return prefix + "esc"
	case KeyLeft:
		return prefix + "left"
	case KeyUp:
		return prefix + "up"
	case KeyRight:
		return prefix + "right"
	case KeyDown:
		return prefix + "down"
	}
	if c := k.Code(); c >= KeyF1 && c <= KeyF10 {
		return fmt.Sprintf("%sf%d", prefix, c-KeyF1+1)
	}
	if c := k.Code(); c >= 'A' && c <= 'Z' {
		return prefix + string(rune(c+'a'-'A'))
	}
	return fmt.Sprintf("%skey(%d)", prefix, k.Code())
}

// Direction returns the compass direction bound to a movement key, or 0.
func (k Key) Direction() int {
	switch k.Code() {
	case KeyUp:
		return 1
	case KeyPageUp:
		return 2
	case KeyRight:
		return 3
	case KeyPageDown:
		return 4
	case KeyDown:
		return 5
	case KeyEnd:
		return 6
	case KeyLeft:
		return 7
	case KeyHome:
		return 8
	}
	return 0
}

// KeyState is the input handed to the interpreter: which key codes are
// down now, which were down at the end of the previous full tick, and the
// key events in arrival order.
type KeyState struct {
	Down  [256]bool
	Old   [256]bool
	Queue []Key
}

// Press records a key-down event.
func (s *KeyState) Press(code int, mods Key) {
	s.Down[code&0xFF] = true
	s.Queue = append(s.Queue, Key(code&0xFF)|mods)
}

// Release records a key-up event.
func (s *KeyState) Release(code int) {
	s.Down[code&0xFF] = false
}

// Type records a typed printable character.
func (s *KeyState) Type(r rune) {
	if r >= ' ' && r <= '~' {
		s.Queue = append(s.Queue, Char(r))
	}
}

// Pop removes the oldest queued key.
func (s *KeyState) Pop() (Key, bool) {
	if len(s.Queue) == 0 {
		return 0, false
	}
	k := s.Queue[0]
	s.Queue = s.Queue[1:]
	return k, true
}

// ClearQueue drops every queued key.
func (s *KeyState) ClearQueue() {
	s.Queue = s.Queue[:0]
}

// Pressed reports whether code went down since the last Snapshot.
func (s *KeyState) Pressed(code int) bool {
	return s.Down[code&0xFF] && !s.Old[code&0xFF]
}

// Snapshot copies the current key state into Old.
func (s *KeyState) Snapshot() {
	s.Old = s.Down
}

// agiKeys maps the key codes scripts pass to set.key (ASCII code plus
// scan code << 8) onto Keys.
var agiKeys = map[int]Key{
	9:  KeyTab,
	27: KeyEscape,
	13: KeyEnter,
}

func init() {
	for i := 0; i < 10; i++ {
		agiKeys[(59+i)<<8] = Key(KeyF1 + i)
	}
	for c := 1; c <= 26; c++ {
		if c == 9 || c == 13 {
			continue
		}
		agiKeys[c] = CtrlBit | Key('A'+c-1)
	}
	alt := map[int]byte{
		16: 'Q', 17: 'W', 18: 'E', 19: 'R', 20: 'T', 21: 'Y', 22: 'U', 23: 'I', 24: 'O', 25: 'P',
		30: 'A', 31: 'S', 32: 'D', 33: 'F', 34: 'G', 35: 'H', 36: 'J', 37: 'K', 38: 'L',
		44: 'Z', 45: 'X', 46: 'C', 47: 'V', 48: 'B', 49: 'N', 50: 'M',
	}
	for scan, c := range alt {
		agiKeys[scan<<8] = AltBit | Key(c)
	}
	for _, c := range "=-0" {
		agiKeys[int(c)] = Char(c)
	}
	// Some games bind unmodified letters.
	for c := 'A'; c <= 'Z'; c++ {
		agiKeys[int(c)] = Char(c + 'a' - 'A')
	}
}

// AGIKey converts a script key code to a Key.
func AGIKey(code int) (Key, bool) {
	k, ok := agiKeys[code]
	return k, ok
}
