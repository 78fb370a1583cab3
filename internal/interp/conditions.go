package interp

import (
	"fmt"

	"github.com/vovakirdan/tui-agi/internal/logic"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

type test func(x *Executor, args []logic.Operand) (bool, error)

// tests is indexed by test opcode.
var tests [256]test

var testImpls = map[string]test{
	"equaln": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) == a[1].Value, nil
	},
	"equalv": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) == x.varValue(a[1]), nil
	},
	"lessn": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) < a[1].Value, nil
	},
	"lessv": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) < x.varValue(a[1]), nil
	},
	"greatern": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) > a[1].Value, nil
	},
	"greaterv": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.varValue(a[0]) > x.varValue(a[1]), nil
	},
	"isset": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.state.Flags[a[0].Byte()], nil
	},
	"isset.v": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.state.Flags[x.varValue(a[0])], nil
	},
	"has": func(x *Executor, a []logic.Operand) (bool, error) {
		it, err := x.state.Item(a[0].Value)
		if err != nil {
			return false, err
		}
		return it.Room == resource.Carrying, nil
	},
	"obj.in.room": func(x *Executor, a []logic.Operand) (bool, error) {
		it, err := x.state.Item(a[0].Value)
		if err != nil {
			return false, err
		}
		return int(it.Room) == x.varValue(a[1]), nil
	},
	"posn": boxTest(func(x, w int) (int, int) { return x, x }),
	"controller": func(x *Executor, a []logic.Operand) (bool, error) {
		if err := x.state.CheckController(a[0].Value); err != nil {
			return false, err
		}
		return x.state.Controllers[a[0].Value], nil
	},
	"have.key": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.haveKey(), nil
	},
	"said": func(x *Executor, a []logic.Operand) (bool, error) {
		return x.said(a[0].Words), nil
	},
	"compare.strings": func(x *Executor, a []logic.Operand) (bool, error) {
		for _, op := range a {
			if err := x.state.CheckString(op.Value); err != nil {
				return false, err
			}
		}
		s := x.state.Strings
		return normalizeCompare(s[a[0].Value]) == normalizeCompare(s[a[1].Value]), nil
	},
	"obj.in.box":  boxTest(func(x, w int) (int, int) { return x, x + w - 1 }),
	"center.posn": boxTest(func(x, w int) (int, int) { return x + w/2, x + w/2 }),
	"right.posn":  boxTest(func(x, w int) (int, int) { return x + w - 1, x + w - 1 }),
}

// boxTest builds the object-in-rectangle tests. span maps the object's X
// and width to the leftmost and rightmost X that must lie in the box.
func boxTest(span func(x, w int) (int, int)) test {
	return func(x *Executor, a []logic.Operand) (bool, error) {
		o, err := x.object(a[0])
		if err != nil {
			return false, err
		}
		x1, y1, x2, y2 := a[1].Value, a[2].Value, a[3].Value, a[4].Value
		left, right := span(o.X, o.XSize())
		return left >= x1 && right <= x2 && o.Y >= y1 && o.Y <= y2, nil
	}
}

func init() {
	for op := 0; op < 256; op++ {
		o := logic.TestOperation(uint8(op))
		if o == nil {
			continue
		}
		t, ok := testImpls[o.Name]
		if !ok {
			panic(fmt.Sprintf("interp: no implementation for test %s", o.Name))
		}
		tests[op] = t
	}
}
