// Package logic decodes script ("logic") resources into an ordered list of
// actions, an address lookup and a message table.
// It has no knowledge of the interpreter state; the executor lives in
// internal/interp.
package logic

import (
	"fmt"
	"strings"
)

// OperandKind identifies how an operand's raw value is interpreted.
type OperandKind uint8

const (
	OperandVar OperandKind = iota
	OperandNum
	OperandFlag
	OperandObject
	OperandWordList
	OperandView
	OperandMsgNum
	OperandTest
	OperandTestList
	OperandAddress
)

var operandKindNames = [...]string{
	OperandVar:      "VAR",
	OperandNum:      "NUM",
	OperandFlag:     "FLAG",
	OperandObject:   "OBJECT",
	OperandWordList: "WORDLIST",
	OperandView:     "VIEW",
	OperandMsgNum:   "MSGNUM",
	OperandTest:     "TEST",
	OperandTestList: "TESTLIST",
	OperandAddress:  "ADDRESS",
}

// String returns the signature name of the kind (e.g. "VAR").
func (k OperandKind) String() string {
	if int(k) < len(operandKindNames) {
		return operandKindNames[k]
	}
	return "UNKNOWN"
}

func parseOperandKind(name string) (OperandKind, bool) {
	for k, n := range operandKindNames {
		if n == name {
			return OperandKind(k), true
		}
	}
	return 0, false
}

// Operation is the static description of one opcode: its name and operand
// signature. Instructions reference the shared Operation for their opcode.
type Operation struct {
	Opcode   uint8
	Name     string
	Operands []OperandKind
}

// String returns the operation in its signature form, e.g. "addn(VAR,NUM)".
func (o *Operation) String() string {
	names := make([]string, len(o.Operands))
	for i, k := range o.Operands {
		names[i] = k.String()
	}
	return o.Name + "(" + strings.Join(names, ",") + ")"
}

// mustOperation parses a "name(KIND,KIND)" signature. It panics on a
// malformed signature since the tables below are compiled in.
func mustOperation(opcode int, format string) *Operation {
	open := strings.IndexByte(format, '(')
	closing := strings.IndexByte(format, ')')
	if open <= 0 || closing < open {
		panic(fmt.Sprintf("logic: malformed operation signature %q", format))
	}

	op := &Operation{Opcode: uint8(opcode), Name: format[:open]}
	if args := format[open+1 : closing]; args != "" {
		for _, name := range strings.Split(args, ",") {
			kind, ok := parseOperandKind(name)
			if !ok {
				panic(fmt.Sprintf("logic: unknown operand kind %q in %q", name, format))
			}
			op.Operands = append(op.Operands, kind)
		}
	}
	return op
}

// Special opcodes that are not part of the action/test tables.
const (
	OpIf     = 0xFF
	OpGoto   = 0xFE
	OpNot    = 0xFD
	OpOr     = 0xFC
	OpReturn = 0x00
	OpSaid   = 0x0E
)

var testSignatures = [...]string{
	1:  "equaln(VAR,NUM)",
	2:  "equalv(VAR,VAR)",
	3:  "lessn(VAR,NUM)",
	4:  "lessv(VAR,VAR)",
	5:  "greatern(VAR,NUM)",
	6:  "greaterv(VAR,VAR)",
	7:  "isset(FLAG)",
	8:  "isset.v(VAR)",
	9:  "has(OBJECT)",
	10: "obj.in.room(OBJECT,VAR)",
	11: "posn(OBJECT,NUM,NUM,NUM,NUM)",
	12: "controller(NUM)",
	13: "have.key()",
	14: "said(WORDLIST)",
	15: "compare.strings(NUM,NUM)",
	16: "obj.in.box(OBJECT,NUM,NUM,NUM,NUM)",
	17: "center.posn(OBJECT,NUM,NUM,NUM,NUM)",
	18: "right.posn(OBJECT,NUM,NUM,NUM,NUM)",
}

var actionSignatures = [...]string{
	"return()",
	"increment(VAR)",
	"decrement(VAR)",
	"assignn(VAR,NUM)",
	"assignv(VAR,VAR)",
	"addn(VAR,NUM)",
	"addv(VAR,VAR)",
	"subn(VAR,NUM)",
	"subv(VAR,VAR)",
	"lindirectv(VAR,VAR)",
	"rindirect(VAR,VAR)",
	"lindirectn(VAR,NUM)",
	"set(FLAG)",
	"reset(FLAG)",
	"toggle(FLAG)",
	"set.v(VAR)",
	"reset.v(VAR)",
	"toggle.v(VAR)",
	"new.room(NUM)",
	"new.room.f(VAR)",
	"load.logics(NUM)",
	"load.logics.f(VAR)",
	"call(NUM)",
	"call.f(VAR)",
	"load.pic(VAR)",
	"draw.pic(VAR)",
	"show.pic()",
	"discard.pic(VAR)",
	"overlay.pic(VAR)",
	"show.pri.screen()",
	"load.view(VIEW)",
	"load.view.f(VAR)",
	"discard.view(VIEW)",
	"animate.obj(OBJECT)",
	"unanimate.all()",
	"draw(OBJECT)",
	"erase(OBJECT)",
	"position(OBJECT,NUM,NUM)",
	"position.f(OBJECT,VAR,VAR)",
	"get.posn(OBJECT,VAR,VAR)",
	"reposition(OBJECT,VAR,VAR)",
	"set.view(OBJECT,VIEW)",
	"set.view.f(OBJECT,VAR)",
	"set.loop(OBJECT,NUM)",
	"set.loop.f(OBJECT,VAR)",
	"fix.loop(OBJECT)",
	"release.loop(OBJECT)",
	"set.cel(OBJECT,NUM)",
	"set.cel.f(OBJECT,VAR)",
	"last.cel(OBJECT,VAR)",
	"current.cel(OBJECT,VAR)",
	"current.loop(OBJECT,VAR)",
	"current.view(OBJECT,VAR)",
	"number.of.loops(OBJECT,VAR)",
	"set.priority(OBJECT,NUM)",
	"set.priority.f(OBJECT,VAR)",
	"release.priority(OBJECT)",
	"get.priority(OBJECT,VAR)",
	"stop.update(OBJECT)",
	"start.update(OBJECT)",
	"force.update(OBJECT)",
	"ignore.horizon(OBJECT)",
	"observe.horizon(OBJECT)",
	"set.horizon(NUM)",
	"object.on.water(OBJECT)",
	"object.on.land(OBJECT)",
	"object.on.anything(OBJECT)",
	"ignore.objs(OBJECT)",
	"observe.objs(OBJECT)",
	"distance(OBJECT,OBJECT,VAR)",
	"stop.cycling(OBJECT)",
	"start.cycling(OBJECT)",
	"normal.cycle(OBJECT)",
	"end.of.loop(OBJECT,FLAG)",
	"reverse.cycle(OBJECT)",
	"reverse.loop(OBJECT,FLAG)",
	"cycle.time(OBJECT,VAR)",
	"stop.motion(OBJECT)",
	"start.motion(OBJECT)",
	"step.size(OBJECT,VAR)",
	"step.time(OBJECT,VAR)",
	"move.obj(OBJECT,NUM,NUM,NUM,FLAG)",
	"move.obj.f(OBJECT,VAR,VAR,VAR,FLAG)",
	"follow.ego(OBJECT,NUM,FLAG)",
	"wander(OBJECT)",
	"normal.motion(OBJECT)",
	"set.dir(OBJECT,VAR)",
	"get.dir(OBJECT,VAR)",
	"ignore.blocks(OBJECT)",
	"observe.blocks(OBJECT)",
	"block(NUM,NUM,NUM,NUM)",
	"unblock()",
	"get(OBJECT)",
	"get.f(VAR)",
	"drop(OBJECT)",
	"put(OBJECT,VAR)",
	"put.f(VAR,VAR)",
	"get.room.f(VAR,VAR)",
	"load.sound(NUM)",
	"sound(NUM,FLAG)",
	"stop.sound()",
	"print(MSGNUM)",
	"print.f(VAR)",
	"display(NUM,NUM,MSGNUM)",
	"display.f(VAR,VAR,VAR)",
	"clear.lines(NUM,NUM,NUM)",
	"text.screen()",
	"graphics()",
	"set.cursor.char(MSGNUM)",
	"set.text.attribute(NUM,NUM)",
	"shake.screen(NUM)",
	"configure.screen(NUM,NUM,NUM)",
	"status.line.on()",
	"status.line.off()",
	"set.string(NUM,MSGNUM)",
	"get.string(NUM,MSGNUM,NUM,NUM,NUM)",
	"word.to.string(NUM,NUM)",
	"parse(NUM)",
	"get.num(MSGNUM,VAR)",
	"prevent.input()",
	"accept.input()",
	"set.key(NUM,NUM,NUM)",
	"add.to.pic(VIEW,NUM,NUM,NUM,NUM,NUM,NUM)",
	"add.to.pic.f(VAR,VAR,VAR,VAR,VAR,VAR,VAR)",
	"status()",
	"save.game()",
	"restore.game()",
	"init.disk()",
	"restart.game()",
	"show.obj(VIEW)",
	"random(NUM,NUM,VAR)",
	"program.control()",
	"player.control()",
	"obj.status.f(VAR)",
	"quit(NUM)",
	"show.mem()",
	"pause()",
	"echo.line()",
	"cancel.line()",
	"init.joy()",
	"toggle.monitor()",
	"version()",
	"script.size(NUM)",
	"set.game.id(MSGNUM)",
	"log(MSGNUM)",
	"set.scan.start()",
	"reset.scan.start()",
	"reposition.to(OBJECT,NUM,NUM)",
	"reposition.to.f(OBJECT,VAR,VAR)",
	"trace.on()",
	"trace.info(NUM,NUM,NUM)",
	"print.at(MSGNUM,NUM,NUM,NUM)",
	"print.at.v(VAR,NUM,NUM,NUM)",
	"discard.view.v(VAR)",
	"clear.text.rect(NUM,NUM,NUM,NUM,NUM)",
	"set.upper.left(NUM,NUM)",
	"set.menu(MSGNUM)",
	"set.menu.item(MSGNUM,NUM)",
	"submit.menu()",
	"enable.item(NUM)",
	"disable.item(NUM)",
	"menu.input()",
	"show.obj.v(VAR)",
	"open.dialogue()",
	"close.dialogue()",
	"mul.n(VAR,NUM)",
	"mul.v(VAR,VAR)",
	"div.n(VAR,NUM)",
	"div.v(VAR,VAR)",
	"close.window()",
	"set.simple(NUM)",
	"push.script()",
	"pop.script()",
	"hold.key()",
	"set.pri.base(NUM)",
	"discard.sound(NUM)",
	"hide.mouse()",
	"allow.menu(NUM)",
	"show.mouse()",
	"fence.mouse(NUM,NUM,NUM,NUM)",
	"mouse.posn(VAR,VAR)",
	"release.key()",
	"adj.ego.move.to.x.y(NUM,NUM)",
}

// The opcode tables are fixed-size and indexed directly by opcode byte.
// A nil entry marks an opcode outside the defined set.
var (
	actionOps [256]*Operation
	testOps   [256]*Operation
)

// Synthetic operations describing the jump and grouping instructions.
var (
	ifOperation   = mustOperation(OpIf, "if(TESTLIST,ADDRESS)")
	gotoOperation = mustOperation(OpGoto, "goto(ADDRESS)")
	notOperation  = mustOperation(OpNot, "not(TEST)")
	orOperation   = mustOperation(OpOr, "or(TESTLIST)")
)

func init() {
	for opcode, sig := range actionSignatures {
		actionOps[opcode] = mustOperation(opcode, sig)
	}
	for opcode, sig := range testSignatures {
		if sig != "" {
			testOps[opcode] = mustOperation(opcode, sig)
		}
	}
}

// ActionOperation returns the action operation for an opcode, or nil when
// the opcode is not defined.
func ActionOperation(opcode uint8) *Operation {
	return actionOps[opcode]
}

// TestOperation returns the test operation for an opcode, or nil when the
// opcode is not defined.
func TestOperation(opcode uint8) *Operation {
	return testOps[opcode]
}

// ActionCount is the number of defined action opcodes.
func ActionCount() int {
	return len(actionSignatures)
}
