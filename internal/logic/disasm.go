package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders a decoded program as an indented listing. Jump targets
// are shown as labels; messages are appended at the end.
func Disassemble(p *Program) string {
	labels := make(map[int]string)
	for _, a := range p.Actions {
		if j, ok := a.(Jump); ok {
			if _, seen := labels[j.JumpTarget()]; !seen {
				labels[j.JumpTarget()] = fmt.Sprintf("L%d", len(labels)+1)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "; logic %d, %d actions\n", p.Number, len(p.Actions))
	for _, a := range p.Actions {
		if l, ok := labels[a.Address()]; ok {
			fmt.Fprintf(&b, "%s:\n", l)
		}
		fmt.Fprintf(&b, "  %04X  ", a.Address())
		switch v := a.(type) {
		case *IfAction:
			b.WriteString("if (")
			for i, c := range v.Conditions {
				if i > 0 {
					b.WriteString(" && ")
				}
				b.WriteString(formatCondition(c))
			}
			fmt.Fprintf(&b, ") else goto %s\n", labels[v.Target])
		case *GotoAction:
			fmt.Fprintf(&b, "goto %s\n", labels[v.Target])
		case *PlainAction:
			b.WriteString(formatCall(v.Op, v.Operands))
			b.WriteByte('\n')
		}
	}

	if len(p.Messages) > 1 {
		b.WriteString("\n; messages\n")
		for n := 1; n < len(p.Messages); n++ {
			fmt.Fprintf(&b, "#message %d %s\n", n, strconv.Quote(p.Messages[n]))
		}
	}
	return b.String()
}

func formatCondition(c Condition) string {
	switch v := c.(type) {
	case *OrCondition:
		parts := make([]string, len(v.Conditions))
		for i, nc := range v.Conditions {
			parts[i] = formatCondition(nc)
		}
		return "(" + strings.Join(parts, " || ") + ")"
	case *NotCondition:
		return "!" + formatCondition(v.Condition)
	case *PlainCondition:
		return formatCall(v.Op, v.Operands)
	}
	return "?"
}

func formatCall(op *Operation, operands []Operand) string {
	args := make([]string, len(operands))
	for i, o := range operands {
		args[i] = formatOperand(o)
	}
	return op.Name + "(" + strings.Join(args, ", ") + ")"
}

func formatOperand(o Operand) string {
	switch o.Kind {
	case OperandVar:
		return "v" + strconv.Itoa(o.Value)
	case OperandFlag:
		return "f" + strconv.Itoa(o.Value)
	case OperandObject:
		return "o" + strconv.Itoa(o.Value)
	case OperandMsgNum:
		return "m" + strconv.Itoa(o.Value)
	case OperandWordList:
		words := make([]string, len(o.Words))
		for i, w := range o.Words {
			words[i] = strconv.Itoa(w)
		}
		return strings.Join(words, ", ")
	}
	return strconv.Itoa(o.Value)
}
