package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-agi/internal/engine"
)

// format expands the message codes: %vN variable (with %vN|W zero padded
// to width W), %sN string, %mN message of the current program, %gN message
// of program 0, %oN inventory item name and %wN recognised word N.
func (x *Executor) format(msg string) string {
	if !strings.ContainsRune(msg, '%') {
		return msg
	}
	var b strings.Builder
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c != '%' || i+1 >= len(msg) {
			b.WriteByte(c)
			continue
		}
		code := msg[i+1]
		j := i + 2
		for j < len(msg) && msg[j] >= '0' && msg[j] <= '9' {
			j++
		}
		if j == i+2 {
			b.WriteByte(c)
			continue
		}
		n, _ := strconv.Atoi(msg[i+2 : j])

		switch code {
		case 'v':
			if n > engine.MaxVar {
				break
			}
			v := int(x.state.Vars[n])
			width := 0
			if j+1 < len(msg) && msg[j] == '|' {
				k := j + 1
				for k < len(msg) && msg[k] >= '0' && msg[k] <= '9' {
					k++
				}
				if w, err := strconv.Atoi(msg[j+1 : k]); err == nil {
					width = w
					j = k
				}
			}
			fmt.Fprintf(&b, "%0*d", width, v)
		case 's':
			if n < engine.NumStrings {
				b.WriteString(x.state.Strings[n])
			}
		case 'm':
			if p := x.current(); p != nil {
				if m, ok := p.Message(n); ok {
					b.WriteString(m)
				}
			}
		case 'g':
			if p, ok := x.programs[0]; ok {
				if m, ok := p.Message(n); ok {
					b.WriteString(m)
				}
			}
		case 'o':
			if n < len(x.state.Items) {
				b.WriteString(x.state.Items[n].Name)
			}
		case 'w':
			if n >= 1 && n <= len(x.input.words) {
				b.WriteString(x.input.words[n-1])
			}
		default:
			b.WriteString(msg[i:j])
		}
		i = j - 1
	}
	return b.String()
}
