package logic

// DecodeOptions controls how a script resource is decoded.
type DecodeOptions struct {
	// MessagesCrypted reports whether the message text is XOR-encrypted.
	MessagesCrypted bool
}

// cryptKey is the repeating key used to obscure message text.
var cryptKey = []byte("Avis Durgan")

// reader is a bounds-checked little-endian byte reader over one section of a
// resource. Positions are relative to the start of the section.
type reader struct {
	buf     []byte
	pos     int
	program int
	base    int // offset of buf within the whole resource, for error reporting
}

func (r *reader) eof() bool {
	return r.pos >= len(r.buf)
}

func (r *reader) readByte() (uint8, error) {
	if r.pos >= len(r.buf) {
		return 0, &DecodeError{Program: r.program, Offset: r.base + r.pos, Reason: "unexpected end of instructions"}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readWord() (int, error) {
	lo, err := r.readByte()
	if err != nil {
		return 0, err
	}
	hi, err := r.readByte()
	if err != nil {
		return 0, err
	}
	return int(lo) | int(hi)<<8, nil
}

// readTarget reads a signed 16-bit relative jump and converts it to an
// absolute address relative to the position after the read.
func (r *reader) readTarget() (int, error) {
	w, err := r.readWord()
	if err != nil {
		return 0, err
	}
	return r.pos + int(int16(uint16(w))), nil
}

// Decode decodes a raw script resource into a Program.
func Decode(number int, data []byte, opts DecodeOptions) (*Program, error) {
	if len(data) < 2 {
		return nil, &DecodeError{Program: number, Offset: 0, Reason: "resource shorter than its length header"}
	}
	codeLen := int(data[0]) | int(data[1])<<8
	if 2+codeLen > len(data) {
		return nil, &DecodeError{Program: number, Offset: 0, Reason: "instruction length exceeds resource size"}
	}

	p := &Program{
		Number:         number,
		addressToIndex: make(map[int]int),
	}

	r := &reader{buf: data[2 : 2+codeLen], program: number, base: 2}
	for !r.eof() {
		a, err := p.readAction(r)
		if err != nil {
			return nil, err
		}
		p.addressToIndex[a.Address()] = len(p.Actions)
		p.Actions = append(p.Actions, a)
	}

	if err := p.resolveJumps(); err != nil {
		return nil, err
	}

	msgs, err := decodeMessages(number, data, codeLen, opts.MessagesCrypted)
	if err != nil {
		return nil, err
	}
	p.Messages = msgs

	return p, nil
}

func (p *Program) readAction(r *reader) (Action, error) {
	h := header{address: r.pos, program: p}
	opcode, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch opcode {
	case OpIf:
		var conds []Condition
		for {
			c, err := p.readCondition(r, OpIf)
			if err != nil {
				return nil, err
			}
			if c == nil {
				break
			}
			conds = append(conds, c)
		}
		target, err := r.readTarget()
		if err != nil {
			return nil, err
		}
		return &IfAction{header: h, Conditions: conds, Target: target}, nil

	case OpGoto:
		target, err := r.readTarget()
		if err != nil {
			return nil, err
		}
		return &GotoAction{header: h, Target: target}, nil
	}

	op := actionOps[opcode]
	if op == nil {
		return nil, &UnknownOpcodeError{Program: p.Number, Address: h.address, Opcode: opcode}
	}
	operands, err := readOperands(r, op)
	if err != nil {
		return nil, err
	}
	return &PlainAction{header: h, Op: op, Operands: operands}, nil
}

// readCondition reads one condition. It returns a nil condition when the
// terminator byte is read, which ends the enclosing list.
func (p *Program) readCondition(r *reader, terminator uint8) (Condition, error) {
	h := header{address: r.pos, program: p}
	opcode, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if opcode == terminator {
		return nil, nil
	}

	switch opcode {
	case OpOr:
		var conds []Condition
		for {
			c, err := p.readCondition(r, OpOr)
			if err != nil {
				return nil, err
			}
			if c == nil {
				break
			}
			conds = append(conds, c)
		}
		return &OrCondition{header: h, Conditions: conds}, nil

	case OpNot:
		c, err := p.readCondition(r, OpIf)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, &DecodeError{Program: p.Number, Offset: r.base + h.address, Reason: "not without a condition"}
		}
		return &NotCondition{header: h, Condition: c}, nil

	case OpSaid:
		count, err := r.readByte()
		if err != nil {
			return nil, err
		}
		words := make([]int, 0, count)
		for i := 0; i < int(count); i++ {
			w, err := r.readWord()
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		}
		return &PlainCondition{
			header:   h,
			Op:       testOps[OpSaid],
			Operands: []Operand{{Kind: OperandWordList, Value: int(count), Words: words}},
		}, nil
	}

	op := testOps[opcode]
	if op == nil {
		return nil, &UnknownOpcodeError{Program: p.Number, Address: h.address, Opcode: opcode, Condition: true}
	}
	operands, err := readOperands(r, op)
	if err != nil {
		return nil, err
	}
	return &PlainCondition{header: h, Op: op, Operands: operands}, nil
}

func readOperands(r *reader, op *Operation) ([]Operand, error) {
	if len(op.Operands) == 0 {
		return nil, nil
	}
	operands := make([]Operand, len(op.Operands))
	for i, kind := range op.Operands {
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		operands[i] = Operand{Kind: kind, Value: int(b)}
	}
	return operands, nil
}

func (p *Program) resolveJumps() error {
	for _, a := range p.Actions {
		j, ok := a.(Jump)
		if !ok {
			continue
		}
		if _, ok := p.addressToIndex[j.JumpTarget()]; !ok {
			return &UnresolvedJumpError{Program: p.Number, Address: a.Address(), Target: j.JumpTarget()}
		}
	}
	return nil
}

// decodeMessages reads the message section that follows the instructions.
// Layout: count byte, 2-byte end-of-text offset, count 2-byte text offsets
// relative to the byte after the count, then the (optionally crypted) text.
func decodeMessages(number int, data []byte, codeLen int, crypted bool) ([]string, error) {
	base := codeLen + 2
	if base+3 > len(data) {
		return nil, &DecodeError{Program: number, Offset: base, Reason: "missing message section header"}
	}

	count := int(data[base])
	textStart := base + 3 + count*2
	if textStart > len(data) {
		return nil, &DecodeError{Program: number, Offset: base, Reason: "message offset table truncated"}
	}

	text := make([]byte, len(data))
	copy(text, data)
	if crypted {
		for i := textStart; i < len(text); i++ {
			text[i] ^= cryptKey[(i-textStart)%len(cryptKey)]
		}
	}

	msgs := make([]string, 1, count+1)
	for n := 0; n < count; n++ {
		marker := base + 3 + n*2
		rel := int(data[marker]) | int(data[marker+1])<<8
		if rel == 0 {
			msgs = append(msgs, "")
			continue
		}
		start := base + 1 + rel
		if start >= len(text) {
			return nil, &DecodeError{Program: number, Offset: marker, Reason: "message text offset out of bounds"}
		}
		end := start
		for end < len(text) && text[end] != 0 {
			end++
		}
		if end >= len(text) {
			return nil, &DecodeError{Program: number, Offset: start, Reason: "unterminated message text"}
		}
		msgs = append(msgs, string(text[start:end]))
	}
	return msgs, nil
}
