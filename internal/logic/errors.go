package logic

import "fmt"

// DecodeError reports a malformed or truncated script resource. The resource
// is unusable but the error does not affect any other resource.
type DecodeError struct {
	Program int
	Offset  int
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("logic %d: decode error at offset %d: %s", e.Program, e.Offset, e.Reason)
}

// UnknownOpcodeError reports an opcode that is outside the defined action or
// test table.
type UnknownOpcodeError struct {
	Program   int
	Address   int
	Opcode    uint8
	Condition bool
}

func (e *UnknownOpcodeError) Error() string {
	kind := "action"
	if e.Condition {
		kind = "test"
	}
	return fmt.Sprintf("logic %d: unknown %s opcode 0x%02X at address %d", e.Program, kind, e.Opcode, e.Address)
}

// UnresolvedJumpError reports an if or goto whose target address does not
// start an action.
type UnresolvedJumpError struct {
	Program int
	Address int
	Target  int
}

func (e *UnresolvedJumpError) Error() string {
	return fmt.Sprintf("logic %d: jump at address %d targets %d, which is not an action", e.Program, e.Address, e.Target)
}
