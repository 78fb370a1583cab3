package logic

// Operand is one decoded argument of an instruction. Value holds the raw
// numeric payload; Words, Test and Tests are only set for the WordList,
// Test and TestList kinds.
type Operand struct {
	Kind  OperandKind
	Value int
	Words []int
	Test  Condition
	Tests []Condition
}

// Byte returns the operand value as an unsigned byte.
func (o Operand) Byte() uint8 {
	return uint8(o.Value)
}

// SByte returns the operand value reinterpreted as a signed byte.
func (o Operand) SByte() int {
	return int(int8(uint8(o.Value)))
}

// Instruction is implemented by every decoded instruction. The set of
// implementations is closed: PlainAction, IfAction, GotoAction,
// PlainCondition, OrCondition and NotCondition.
type Instruction interface {
	// Address is the byte offset of the instruction within the
	// instruction section of its program.
	Address() int

	// Program is the program the instruction was decoded from.
	Program() *Program

	// Operation describes the opcode of the instruction.
	Operation() *Operation

	instruction()
}

// Action is a top-level instruction in a program's action list.
type Action interface {
	Instruction
	action()
}

// Condition is a test evaluated as part of an IfAction.
type Condition interface {
	Instruction
	condition()
}

type header struct {
	address int
	program *Program
}

func (h header) Address() int      { return h.address }
func (h header) Program() *Program { return h.program }
func (h header) instruction()      {}

// PlainAction is a normal action command with table-defined operands.
type PlainAction struct {
	header
	Op       *Operation
	Operands []Operand
}

// IfAction tests its conditions (AND) and jumps to Target when any fails.
type IfAction struct {
	header
	Conditions []Condition
	Target     int
}

// GotoAction jumps unconditionally to Target.
type GotoAction struct {
	header
	Target int
}

// PlainCondition is a normal test command with table-defined operands.
type PlainCondition struct {
	header
	Op       *Operation
	Operands []Operand
}

// OrCondition is true when at least one of its conditions is true.
type OrCondition struct {
	header
	Conditions []Condition
}

// NotCondition negates a single nested condition.
type NotCondition struct {
	header
	Condition Condition
}

func (a *PlainAction) Operation() *Operation    { return a.Op }
func (a *IfAction) Operation() *Operation       { return ifOperation }
func (a *GotoAction) Operation() *Operation     { return gotoOperation }
func (c *PlainCondition) Operation() *Operation { return c.Op }
func (c *OrCondition) Operation() *Operation    { return orOperation }
func (c *NotCondition) Operation() *Operation   { return notOperation }

func (*PlainAction) action()       {}
func (*IfAction) action()          {}
func (*GotoAction) action()        {}
func (*PlainCondition) condition() {}
func (*OrCondition) condition()    {}
func (*NotCondition) condition()   {}

// Jump is implemented by IfAction and GotoAction.
type Jump interface {
	Action
	JumpTarget() int
}

// JumpTarget returns the absolute address the if jumps to when it fails.
func (a *IfAction) JumpTarget() int { return a.Target }

// JumpTarget returns the absolute address of the goto.
func (a *GotoAction) JumpTarget() int { return a.Target }

// Program is one decoded script resource.
type Program struct {
	Number   int
	Actions  []Action
	Messages []string

	// ScanStart is the action index at which execution begins. It is
	// reset when the program is unloaded (program 0 is never unloaded).
	ScanStart int

	// Loaded reports whether the program is currently loaded into the
	// interpreter.
	Loaded bool

	addressToIndex map[int]int
}

// IndexOf returns the action index of the action at the given address.
func (p *Program) IndexOf(address int) (int, bool) {
	i, ok := p.addressToIndex[address]
	return i, ok
}

// Message returns message n (1-based). Message 0 is always empty.
func (p *Program) Message(n int) (string, bool) {
	if n < 0 || n >= len(p.Messages) {
		return "", false
	}
	return p.Messages[n], true
}

// ActionIndex returns the index of a within the program's action list.
func (p *Program) ActionIndex(a Action) (int, bool) {
	return p.IndexOf(a.Address())
}
