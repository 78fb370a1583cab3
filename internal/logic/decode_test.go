package logic

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// if (isset(f0)) { increment(v5) } return
var flagIncrementCode = []byte{
	0xFF, 0x07, 0x00, 0xFF, 0x02, 0x00,
	0x01, 0x05,
	0x00,
}

func TestDecodeIfIncrement(t *testing.T) {
	p, err := Decode(0, Assemble(flagIncrementCode, nil, false), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(p.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, expected 3", len(p.Actions))
	}

	ifa, ok := p.Actions[0].(*IfAction)
	if !ok {
		t.Fatalf("Actions[0] = %T, expected *IfAction", p.Actions[0])
	}
	if ifa.Target != 8 {
		t.Errorf("Target = %d, expected 8", ifa.Target)
	}
	if idx, ok := p.IndexOf(ifa.Target); !ok || idx != 2 {
		t.Errorf("IndexOf(%d) = %d,%v, expected 2,true", ifa.Target, idx, ok)
	}
	if len(ifa.Conditions) != 1 || ifa.Conditions[0].Operation().Name != "isset" {
		t.Errorf("Conditions = %v, expected one isset", ifa.Conditions)
	}

	inc := p.Actions[1].(*PlainAction)
	if inc.Op.Name != "increment" || inc.Operands[0].Value != 5 {
		t.Errorf("Actions[1] = %s %v, expected increment v5", inc.Op.Name, inc.Operands)
	}
	if inc.Address() != 6 || inc.Program() != p {
		t.Errorf("Address() = %d, expected 6", inc.Address())
	}
	if p.Actions[2].Operation().Opcode != OpReturn {
		t.Errorf("Actions[2] opcode = %d, expected return", p.Actions[2].Operation().Opcode)
	}
}

func TestDecodeBackwardGoto(t *testing.T) {
	code := []byte{
		0x0C, 0x01, // set(f1)
		0xFE, 0xFB, 0xFF, // goto -5
		0x00,
	}
	p, err := Decode(3, Assemble(code, nil, false), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	g, ok := p.Actions[1].(*GotoAction)
	if !ok {
		t.Fatalf("Actions[1] = %T, expected *GotoAction", p.Actions[1])
	}
	if g.Target != 0 {
		t.Errorf("Target = %d, expected 0", g.Target)
	}
}

func TestDecodeNestedConditions(t *testing.T) {
	code := []byte{
		0xFF,
		0xFC, 0x07, 0x01, 0x07, 0x02, 0xFC, // (isset(f1) || isset(f2))
		0xFD, 0x07, 0x03, // !isset(f3)
		0x0E, 0x02, 0x01, 0x00, 0x0F, 0x27, // said(1, 9999)
		0xFF, 0x00, 0x00,
		0x00,
	}
	p, err := Decode(1, Assemble(code, nil, false), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	ifa := p.Actions[0].(*IfAction)
	if len(ifa.Conditions) != 3 {
		t.Fatalf("len(Conditions) = %d, expected 3", len(ifa.Conditions))
	}

	or, ok := ifa.Conditions[0].(*OrCondition)
	if !ok || len(or.Conditions) != 2 {
		t.Fatalf("Conditions[0] = %#v, expected OR of two", ifa.Conditions[0])
	}
	if or.Address() != 1 {
		t.Errorf("OR Address() = %d, expected 1", or.Address())
	}

	not, ok := ifa.Conditions[1].(*NotCondition)
	if !ok {
		t.Fatalf("Conditions[1] = %T, expected *NotCondition", ifa.Conditions[1])
	}
	inner := not.Condition.(*PlainCondition)
	if inner.Operands[0].Value != 3 {
		t.Errorf("NOT operand = %d, expected 3", inner.Operands[0].Value)
	}

	said := ifa.Conditions[2].(*PlainCondition)
	if said.Op.Opcode != OpSaid {
		t.Fatalf("Conditions[2] opcode = %d, expected said", said.Op.Opcode)
	}
	words := said.Operands[0].Words
	if len(words) != 2 || words[0] != 1 || words[1] != 9999 {
		t.Errorf("said words = %v, expected [1 9999]", words)
	}
	if ifa.Target != 19 {
		t.Errorf("Target = %d, expected 19", ifa.Target)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		check func(error) bool
	}{
		{
			name: "jump past end",
			data: Assemble([]byte{0xFF, 0x07, 0x00, 0xFF, 0x10, 0x00, 0x00}, nil, false),
			check: func(err error) bool {
				var e *UnresolvedJumpError
				return errors.As(err, &e) && e.Address == 0 && e.Target == 22
			},
		},
		{
			name: "jump into operand",
			data: Assemble([]byte{0xFE, 0xFF, 0xFF, 0x00}, nil, false),
			check: func(err error) bool {
				var e *UnresolvedJumpError
				return errors.As(err, &e) && e.Target == 2
			},
		},
		{
			name: "unknown action opcode",
			data: Assemble([]byte{0xB7, 0x00}, nil, false),
			check: func(err error) bool {
				var e *UnknownOpcodeError
				return errors.As(err, &e) && e.Opcode == 0xB7 && !e.Condition
			},
		},
		{
			name: "unknown test opcode",
			data: Assemble([]byte{0xFF, 0x13, 0xFF, 0x00, 0x00, 0x00}, nil, false),
			check: func(err error) bool {
				var e *UnknownOpcodeError
				return errors.As(err, &e) && e.Opcode == 0x13 && e.Condition && e.Address == 1
			},
		},
		{
			name: "truncated operands",
			data: Assemble([]byte{0x03, 0x01}, nil, false),
			check: func(err error) bool {
				var e *DecodeError
				return errors.As(err, &e)
			},
		},
		{
			name: "not without condition",
			data: Assemble([]byte{0xFF, 0xFD, 0xFF, 0x00, 0x00, 0x00}, nil, false),
			check: func(err error) bool {
				var e *DecodeError
				return errors.As(err, &e)
			},
		},
		{
			name: "length header exceeds data",
			data: []byte{0x10, 0x00, 0x00},
			check: func(err error) bool {
				var e *DecodeError
				return errors.As(err, &e)
			},
		},
		{
			name: "missing message section",
			data: []byte{0x01, 0x00, 0x00},
			check: func(err error) bool {
				var e *DecodeError
				return errors.As(err, &e) && e.Offset == 3
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(7, tc.data, DecodeOptions{})
			if err == nil {
				t.Fatal("Decode() error = nil, expected error")
			}
			if !tc.check(err) {
				t.Errorf("Decode() error = %v (%T), did not match", err, err)
			}
		})
	}
}

func TestDecodeMessages(t *testing.T) {
	msgs := []string{"Hello.", "", "You see a key."}

	t.Run("plain", func(t *testing.T) {
		p, err := Decode(0, Assemble([]byte{0x00}, msgs, false), DecodeOptions{})
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if len(p.Messages) != 4 {
			t.Fatalf("len(Messages) = %d, expected 4", len(p.Messages))
		}
		if p.Messages[0] != "" {
			t.Errorf("Messages[0] = %q, expected empty", p.Messages[0])
		}
		for i, m := range msgs {
			if p.Messages[i+1] != m {
				t.Errorf("Messages[%d] = %q, expected %q", i+1, p.Messages[i+1], m)
			}
		}
	})

	t.Run("crypted", func(t *testing.T) {
		data := Assemble([]byte{0x00}, msgs, true)
		orig := bytes.Clone(data)
		p, err := Decode(0, data, DecodeOptions{MessagesCrypted: true})
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got, _ := p.Message(3); got != "You see a key." {
			t.Errorf("Message(3) = %q, expected %q", got, "You see a key.")
		}
		if !bytes.Equal(data, orig) {
			t.Error("Decode() modified the caller's buffer")
		}
	})

	t.Run("absent pointer", func(t *testing.T) {
		data := Assemble([]byte{0x00}, []string{"a", "b"}, false)
		// zero the first pointer
		data[3+3] = 0
		data[3+4] = 0
		p, err := Decode(0, data, DecodeOptions{})
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if p.Messages[1] != "" || p.Messages[2] != "b" {
			t.Errorf("Messages = %q, expected [\"\" \"\" \"b\"]", p.Messages)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		p, _ := Decode(0, Assemble([]byte{0x00}, msgs, false), DecodeOptions{})
		if _, ok := p.Message(4); ok {
			t.Error("Message(4) ok = true, expected false")
		}
	})
}

func TestOperationTables(t *testing.T) {
	if ActionCount() != 183 {
		t.Errorf("ActionCount() = %d, expected 183", ActionCount())
	}
	tests := []struct {
		op   *Operation
		want string
	}{
		{ActionOperation(0), "return()"},
		{ActionOperation(81), "move.obj(OBJECT,NUM,NUM,NUM,FLAG)"},
		{ActionOperation(182), "adj.ego.move.to.x.y(NUM,NUM)"},
		{TestOperation(1), "equaln(VAR,NUM)"},
		{TestOperation(18), "right.posn(OBJECT,NUM,NUM,NUM,NUM)"},
	}
	for _, tc := range tests {
		if got := tc.op.String(); got != tc.want {
			t.Errorf("String() = %q, expected %q", got, tc.want)
		}
	}
	if ActionOperation(183) != nil || TestOperation(0) != nil || TestOperation(19) != nil {
		t.Error("expected nil for undefined opcodes")
	}
}

func TestDisassemble(t *testing.T) {
	p, err := Decode(0, Assemble(flagIncrementCode, []string{"Hi"}, false), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	out := Disassemble(p)
	for _, want := range []string{"if (isset(f0)) else goto L1", "increment(v5)", "L1:", `#message 1 "Hi"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Disassemble() missing %q in:\n%s", want, out)
		}
	}
}
