package interp

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
)

// Word numbers with special meaning in said().
const (
	AnyWord      = 1
	RestOfLine   = 9999
	ignoredWord  = 0
	defaultInput = 40
)

type inputState struct {
	// controllers maps keys to the controller set.key bound them to.
	controllers map[core.Key]int
	holdKey     bool
	accept      bool

	line     string
	lastLine string

	// words are the recognised words of the last parsed line with their
	// numbers.
	words    []string
	wordNums []int
}

func newInputState() inputState {
	return inputState{controllers: make(map[core.Key]int)}
}

// processInput clears the controllers and consumes the key queue: bound
// keys set controllers, movement keys steer ego, everything else edits the
// input line.
func (x *Executor) processInput() {
	s := x.state
	for i := range s.Controllers {
		s.Controllers[i] = false
	}
	for _, c := range x.menu.selected {
		s.Controllers[c] = true
	}
	x.menu.selected = x.menu.selected[:0]
	s.Vars[engine.VarLastChar] = 0

	for {
		k, ok := x.keys.Pop()
		if !ok {
			break
		}
		if c, ok := x.input.controllers[k]; ok {
			s.Controllers[c] = true
			continue
		}
		if d := k.Direction(); d != 0 && !k.IsChar() {
			if s.UserControl && !x.input.holdKey {
				if int(s.Vars[engine.VarEgoDir]) == d {
					s.Vars[engine.VarEgoDir] = 0
				} else {
					s.Vars[engine.VarEgoDir] = uint8(d)
				}
			}
			continue
		}
		x.typeKey(k)
	}

	if x.input.holdKey && s.UserControl {
		dir := 0
		for _, code := range []int{core.KeyUp, core.KeyPageUp, core.KeyRight, core.KeyPageDown,
			core.KeyDown, core.KeyEnd, core.KeyLeft, core.KeyHome} {
			if x.keys.Down[code] {
				dir = core.Key(code).Direction()
			}
		}
		s.Vars[engine.VarEgoDir] = uint8(dir)
	}
}

// typeKey applies one unbound key to the input line.
func (x *Executor) typeKey(k core.Key) {
	s := x.state
	in := &x.input
	switch {
	case k.IsChar():
		s.Vars[engine.VarLastChar] = uint8(k.Rune())
		if in.accept && len(in.line) < x.maxInput() {
			in.line += string(k.Rune())
			x.text.InputLine("", in.line)
		}
	case k == core.KeyEnter:
		s.Vars[engine.VarLastChar] = core.KeyEnter
		if in.accept && strings.TrimSpace(in.line) != "" {
			x.parse(in.line)
			in.lastLine = in.line
			in.line = ""
			x.text.InputLine("", in.line)
		}
	case k == core.KeyBackspace:
		if in.accept && in.line != "" {
			in.line = in.line[:len(in.line)-1]
			x.text.InputLine("", in.line)
		}
	case k == core.KeyEscape:
		s.Vars[engine.VarLastChar] = core.KeyEscape
	}
}

func (x *Executor) maxInput() int {
	if n := int(x.state.Vars[engine.VarInputLen]); n > 1 {
		return n - 1
	}
	return defaultInput
}

// parse splits text into words and looks each one up in the vocabulary.
// Filler words (number 0) are dropped. The first unknown word stops the
// parse and its position is stored in VarUnknownWord.
func (x *Executor) parse(text string) {
	s := x.state
	in := &x.input
	s.Flags[engine.FlagInput] = false
	s.Flags[engine.FlagHadMatch] = false
	s.Vars[engine.VarUnknownWord] = 0
	in.words = in.words[:0]
	in.wordNums = in.wordNums[:0]

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	if len(fields) == 0 {
		return
	}
	for i, w := range fields {
		n, ok := 0, false
		if x.game.Vocabulary != nil {
			n, ok = x.game.Vocabulary.WordNumber(w)
		}
		if !ok {
			s.Vars[engine.VarUnknownWord] = uint8(i + 1)
			break
		}
		if n == ignoredWord {
			continue
		}
		in.words = append(in.words, w)
		in.wordNums = append(in.wordNums, n)
	}
	s.Flags[engine.FlagInput] = true
}

// said matches the parsed line against a word list. AnyWord matches any
// single word and RestOfLine matches whatever remains.
func (x *Executor) said(words []int) bool {
	s := x.state
	if !s.Flags[engine.FlagInput] || s.Flags[engine.FlagHadMatch] {
		return false
	}
	got := x.input.wordNums
	for i, w := range words {
		if w == RestOfLine {
			s.Flags[engine.FlagHadMatch] = true
			return true
		}
		if i >= len(got) {
			return false
		}
		if w != AnyWord && w != got[i] {
			return false
		}
	}
	if len(words) != len(got) {
		return false
	}
	s.Flags[engine.FlagHadMatch] = true
	return true
}

// haveKey consumes the last typed key.
func (x *Executor) haveKey() bool {
	s := x.state
	if s.Vars[engine.VarLastChar] != 0 {
		s.Vars[engine.VarLastChar] = 0
		return true
	}
	for {
		k, ok := x.keys.Pop()
		if !ok {
			return false
		}
		if k.IsChar() || k == core.KeyEnter || k == core.KeyEscape {
			return true
		}
	}
}

// normalizeCompare strips the characters compare.strings ignores and
// folds case.
func normalizeCompare(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '.', ',', ';', ':', '\'', '!', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
