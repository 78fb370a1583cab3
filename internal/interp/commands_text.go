package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/logic"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// Version is shown by the version command.
const Version = "tui-agi 0.1"

// maxLine bounds get.string and get.num input.
const maxLine = 40

// msgCommand resolves a message number taken from operand i (or from the
// variable it names when fromVar is set) before running fn.
func msgCommand(i int, fromVar bool, fn func(x *Executor, msg string, a []logic.Operand) (flow, error)) command {
	return func(x *Executor, a []logic.Operand) (flow, error) {
		n := a[i].Value
		if fromVar {
			n = x.varValue(a[i])
		}
		msg, err := x.message(n)
		if err != nil {
			return flowNext, err
		}
		return fn(x, msg, a)
	}
}

var textCommands = map[string]command{
	"print": msgCommand(0, false, func(x *Executor, msg string, _ []logic.Operand) (flow, error) {
		return x.print(msg, -1, -1, 0)
	}),
	"print.f": msgCommand(0, true, func(x *Executor, msg string, _ []logic.Operand) (flow, error) {
		return x.print(msg, -1, -1, 0)
	}),
	"print.at": msgCommand(0, false, func(x *Executor, msg string, a []logic.Operand) (flow, error) {
		return x.print(msg, a[1].Value, a[2].Value, a[3].Value)
	}),
	"print.at.v": msgCommand(0, true, func(x *Executor, msg string, a []logic.Operand) (flow, error) {
		return x.print(msg, a[1].Value, a[2].Value, a[3].Value)
	}),
	"display": msgCommand(2, false, func(x *Executor, msg string, a []logic.Operand) (flow, error) {
		x.text.Display(a[0].Value, a[1].Value, msg)
		return flowNext, nil
	}),
	"display.f": msgCommand(2, true, func(x *Executor, msg string, a []logic.Operand) (flow, error) {
		x.text.Display(x.varValue(a[0]), x.varValue(a[1]), msg)
		return flowNext, nil
	}),
	"clear.lines": next(func(x *Executor, a []logic.Operand) {
		x.text.ClearLines(a[0].Value, a[1].Value, a[2].Value)
	}),
	"clear.text.rect": next(func(x *Executor, a []logic.Operand) {
		x.text.ClearLines(a[0].Value, a[2].Value, a[4].Value)
	}),
	"text.screen": next(func(x *Executor, _ []logic.Operand) {
		x.state.GraphicsMode = false
		x.text.SetTextMode(true)
	}),
	"graphics": next(func(x *Executor, _ []logic.Operand) {
		x.state.GraphicsMode = true
		x.text.SetTextMode(false)
		x.present.Present(x.state.Planes)
	}),
	"status.line.on":     next(func(x *Executor, _ []logic.Operand) { x.text.SetStatusLine(true) }),
	"status.line.off":    next(func(x *Executor, _ []logic.Operand) { x.text.SetStatusLine(false) }),
	"close.window":       next(func(x *Executor, _ []logic.Operand) { x.text.CloseWindow() }),
	"set.cursor.char":    ignore,
	"set.text.attribute": next(func(x *Executor, a []logic.Operand) { x.text.SetTextAttribute(a[0].Value, a[1].Value) }),
	"shake.screen":       ignore,
	"configure.screen":   ignore,
	"set.upper.left":     ignore,
	"open.dialogue":      ignore,
	"close.dialogue":     ignore,
	"status": func(x *Executor, _ []logic.Operand) (flow, error) {
		return x.window("status", x.inventoryText())
	},
	"pause": func(x *Executor, _ []logic.Operand) (flow, error) {
		return x.window("pause", "Game paused.\nPress a key to continue.")
	},
	"version": func(x *Executor, _ []logic.Operand) (flow, error) {
		return x.window("version", Version)
	},
	"obj.status.f": func(x *Executor, a []logic.Operand) (flow, error) {
		o, err := x.state.Object(x.varValue(a[0]))
		if err != nil {
			return flowNext, err
		}
		msg := fmt.Sprintf("Object %d:\nx: %d  xsize: %d\ny: %d  ysize: %d\npri: %d\nstepsize: %d",
			o.Number, o.X, o.XSize(), o.Y, o.YSize(), o.Priority, o.StepSize)
		return x.window("obj.status", msg)
	},
}

// print opens a message window. Unless the leave-window flag is set the
// scan waits for a key, or for the print timeout when one is set.
func (x *Executor) print(msg string, row, col, width int) (flow, error) {
	s := x.state
	x.text.OpenWindow(msg, row, col, width)
	if s.Flags[engine.FlagLeaveWindow] {
		s.Flags[engine.FlagLeaveWindow] = false
		return flowNext, nil
	}
	w := &Wait{Reason: "print", done: x.text.CloseWindow}
	if t := s.Vars[engine.VarPrintTimeout]; t != 0 {
		w.Deadline = x.TotalTicks + uint64(t)*TicksPerHalfSecond
	}
	x.keys.ClearQueue()
	return x.suspend(w)
}

func (x *Executor) inventoryText() string {
	var b strings.Builder
	b.WriteString("You are carrying:")
	n := 0
	for _, it := range x.state.Items {
		if it.Room == resource.Carrying && it.Name != "?" {
			b.WriteString("\n  ")
			b.WriteString(it.Name)
			n++
		}
	}
	if n == 0 {
		b.WriteString("\n  nothing")
	}
	return b.String()
}

// readLine suspends on a line editor. Enter stores the line, Esc stores
// an empty one. allow filters the characters accepted.
func (x *Executor) readLine(reason, prompt string, max int, allow func(r rune) bool, store func(string)) (flow, error) {
	if max <= 0 || max > maxLine {
		max = maxLine
	}
	var buf []rune
	x.text.InputLine(prompt, "")
	x.keys.ClearQueue()
	return x.suspend(&Wait{
		Reason: reason,
		key: func(k core.Key) bool {
			switch {
			case k.IsChar():
				if r := k.Rune(); len(buf) < max && allow(r) {
					buf = append(buf, r)
				}
			case k.Code() == core.KeyBackspace:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
			case k.Code() == core.KeyEnter:
				store(string(buf))
				return true
			case k.Code() == core.KeyEscape:
				store("")
				return true
			}
			x.text.InputLine(prompt, string(buf))
			return false
		},
		done: func() { x.text.InputLine("", x.input.line) },
	})
}

func anyRune(rune) bool { return true }

func digit(r rune) bool { return r >= '0' && r <= '9' }

var inputCommands = map[string]command{
	"set.string": func(x *Executor, a []logic.Operand) (flow, error) {
		if err := x.state.CheckString(a[0].Value); err != nil {
			return flowNext, err
		}
		msg, err := x.message(a[1].Value)
		if err != nil {
			return flowNext, err
		}
		x.state.Strings[a[0].Value] = msg
		return flowNext, nil
	},
	"get.string": func(x *Executor, a []logic.Operand) (flow, error) {
		n := a[0].Value
		if err := x.state.CheckString(n); err != nil {
			return flowNext, err
		}
		prompt, err := x.message(a[1].Value)
		if err != nil {
			return flowNext, err
		}
		return x.readLine("get.string", prompt, a[4].Value, anyRune, func(s string) {
			x.state.Strings[n] = s
		})
	},
	"get.num": func(x *Executor, a []logic.Operand) (flow, error) {
		prompt, err := x.message(a[0].Value)
		if err != nil {
			return flowNext, err
		}
		return x.readLine("get.num", prompt, 4, digit, func(s string) {
			v, _ := strconv.Atoi(s)
			x.setVar(a[1], v&0xFF)
		})
	},
	"word.to.string": func(x *Executor, a []logic.Operand) (flow, error) {
		if err := x.state.CheckString(a[0].Value); err != nil {
			return flowNext, err
		}
		w := ""
		if i := a[1].Value; i < len(x.input.words) {
			w = x.input.words[i]
		}
		x.state.Strings[a[0].Value] = w
		return flowNext, nil
	},
	"parse": func(x *Executor, a []logic.Operand) (flow, error) {
		if err := x.state.CheckString(a[0].Value); err != nil {
			return flowNext, err
		}
		x.parse(x.state.Strings[a[0].Value])
		return flowNext, nil
	},
	"prevent.input": next(func(x *Executor, _ []logic.Operand) { x.input.accept = false }),
	"accept.input": next(func(x *Executor, _ []logic.Operand) {
		x.input.accept = true
		x.text.InputLine("", x.input.line)
	}),
	"echo.line": next(func(x *Executor, _ []logic.Operand) {
		x.input.line = x.input.lastLine
		x.text.InputLine("", x.input.line)
	}),
	"cancel.line": next(func(x *Executor, _ []logic.Operand) {
		x.input.line = ""
		x.text.InputLine("", "")
	}),
	"set.key": func(x *Executor, a []logic.Operand) (flow, error) {
		ctl := a[2].Value
		if err := x.state.CheckController(ctl); err != nil {
			return flowNext, err
		}
		code := a[0].Value + a[1].Value<<8
		k, ok := core.AGIKey(code)
		if !ok {
			x.logger.Debug("unmapped key code", "code", code, "controller", ctl)
			return flowNext, nil
		}
		x.input.controllers[k] = ctl
		return flowNext, nil
	},
	"hold.key":    next(func(x *Executor, _ []logic.Operand) { x.input.holdKey = true }),
	"release.key": next(func(x *Executor, _ []logic.Operand) { x.input.holdKey = false }),
}

// itemCommand resolves an inventory item number before running fn.
func itemCommand(n func(x *Executor, a []logic.Operand) int, fn func(x *Executor, it *resource.Item, a []logic.Operand)) command {
	return func(x *Executor, a []logic.Operand) (flow, error) {
		it, err := x.state.Item(n(x, a))
		if err != nil {
			return flowNext, err
		}
		fn(x, it, a)
		return flowNext, nil
	}
}

func itemArg(_ *Executor, a []logic.Operand) int { return a[0].Value }

func itemVar(x *Executor, a []logic.Operand) int { return x.varValue(a[0]) }

var itemCommands = map[string]command{
	"get":   itemCommand(itemArg, func(_ *Executor, it *resource.Item, _ []logic.Operand) { it.Room = resource.Carrying }),
	"get.f": itemCommand(itemVar, func(_ *Executor, it *resource.Item, _ []logic.Operand) { it.Room = resource.Carrying }),
	"drop":  itemCommand(itemArg, func(_ *Executor, it *resource.Item, _ []logic.Operand) { it.Room = resource.Limbo }),
	"put": itemCommand(itemArg, func(x *Executor, it *resource.Item, a []logic.Operand) {
		it.Room = uint8(x.varValue(a[1]))
	}),
	"put.f": itemCommand(itemVar, func(x *Executor, it *resource.Item, a []logic.Operand) {
		it.Room = uint8(x.varValue(a[1]))
	}),
	"get.room.f": itemCommand(itemVar, func(x *Executor, it *resource.Item, a []logic.Operand) {
		x.setVar(a[1], int(it.Room))
	}),
}
