package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/logic"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// DefaultMaxCallDepth bounds nested call() frames.
const DefaultMaxCallDepth = 64

// ErrSuspended is returned by Run while a command is waiting.
var ErrSuspended = errors.New("interp: executor is suspended")

// Outcome describes how a scan ended.
type Outcome struct {
	// RoomChanged is set by new.room and restart.game. The scan was
	// abandoned and program 0 should run again from its scan start.
	RoomChanged bool

	// Waiting means a command suspended the scan. Resume continues it once
	// the wait completes.
	Waiting bool

	// Quit is set by quit().
	Quit bool
}

// flow tells the executor loop what to do after a command.
type flow uint8

const (
	flowNext flow = iota
	flowSuspend
	flowNewRoom
	flowQuit
)

type frame struct {
	prog *logic.Program
	ip   int
	// temp frames belong to programs that were not loaded when called;
	// they are unloaded again on return.
	temp bool
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	MessagesCrypted bool
	MaxCallDepth    int
	// AnimationInterval replaces the initial animation interval variable
	// when non-zero or when ForceAnimationInterval is set.
	AnimationInterval      int
	ForceAnimationInterval bool

	Logger    *log.Logger
	Text      Text
	Presenter Presenter
	Journal   Journal
}

// Executor runs script programs against a State. It keeps an explicit
// frame stack so a command can suspend the scan and the next tick can
// resume it where it stopped. It is not safe for concurrent use.
type Executor struct {
	// TotalTicks is the logical tick counter used for wait deadlines.
	TotalTicks uint64

	state   *engine.State
	game    resource.Game
	text    Text
	present Presenter
	journal Journal
	logger  *log.Logger

	crypted      bool
	maxDepth     int
	animInterval uint8
	forceAnim    bool

	programs map[int]*logic.Program
	frames   []frame
	wait     *Wait

	keys  core.KeyState
	input inputState
	menu  menuState
	sound soundState
}

// NewExecutor creates an Executor over state. Nil collaborators are
// replaced by no-op implementations.
func NewExecutor(state *engine.State, game resource.Game, opts ExecutorOptions) *Executor {
	x := &Executor{
		state:        state,
		game:         game,
		text:         opts.Text,
		present:      opts.Presenter,
		journal:      opts.Journal,
		logger:       opts.Logger,
		crypted:      opts.MessagesCrypted,
		maxDepth:     opts.MaxCallDepth,
		animInterval: uint8(opts.AnimationInterval),
		forceAnim:    opts.ForceAnimationInterval || opts.AnimationInterval != 0,
		programs:     make(map[int]*logic.Program),
		input:        newInputState(),
	}
	if x.text == nil {
		x.text = nopText{}
	}
	if x.present == nil {
		x.present = nopPresenter{}
	}
	if x.journal == nil {
		x.journal = nopJournal{}
	}
	if x.logger == nil {
		x.logger = log.New(io.Discard)
	}
	if x.maxDepth <= 0 {
		x.maxDepth = DefaultMaxCallDepth
	}
	if x.forceAnim {
		state.Vars[engine.VarAnimationInt] = x.animInterval
	}
	return x
}

// State returns the state the executor mutates.
func (x *Executor) State() *engine.State {
	return x.state
}

// Keys returns the input state fed by the host.
func (x *Executor) Keys() *core.KeyState {
	return &x.keys
}

// Waiting returns the pending wait, or nil.
func (x *Executor) Waiting() *Wait {
	return x.wait
}

// Program returns program n, decoding it on first use. Failures are
// reported as *engine.ResourceError.
func (x *Executor) Program(n int) (*logic.Program, error) {
	if p, ok := x.programs[n]; ok {
		return p, nil
	}
	if n < 0 || n > engine.MaxVar {
		return nil, &engine.RuntimeBoundsError{What: "logic", Index: n, Limit: engine.MaxVar + 1}
	}
	if x.game.Logics == nil {
		return nil, &engine.ResourceError{Kind: "logic", Number: n, Err: resource.ErrNotFound}
	}
	data, err := x.game.Logics.Logic(n)
	if err != nil {
		return nil, &engine.ResourceError{Kind: "logic", Number: n, Err: err}
	}
	p, err := logic.Decode(n, data, logic.DecodeOptions{MessagesCrypted: x.crypted})
	if err != nil {
		return nil, &engine.ResourceError{Kind: "logic", Number: n, Err: err}
	}
	if n == 0 {
		p.Loaded = true
	}
	x.programs[n] = p
	return p, nil
}

// Run executes program n from its scan start until it returns, changes
// room, quits or suspends.
func (x *Executor) Run(n int) (Outcome, error) {
	if x.wait != nil {
		return Outcome{}, ErrSuspended
	}
	p, err := x.Program(n)
	if err != nil {
		return Outcome{}, err
	}
	x.frames = append(x.frames[:0], frame{prog: p, ip: p.ScanStart, temp: !p.Loaded})
	p.Loaded = true
	return x.loop()
}

// Resume continues a scan after its wait completed.
func (x *Executor) Resume() (Outcome, error) {
	if x.wait != nil {
		return Outcome{Waiting: true}, nil
	}
	return x.loop()
}

func (x *Executor) loop() (Outcome, error) {
	for len(x.frames) > 0 {
		f := &x.frames[len(x.frames)-1]
		if f.ip >= len(f.prog.Actions) {
			x.pop()
			continue
		}
		action := f.prog.Actions[f.ip]
		f.ip++

		switch a := action.(type) {
		case *logic.IfAction:
			ok, err := x.evalAll(a.Conditions)
			if err != nil {
				return x.abort(err)
			}
			if !ok {
				if err := x.jump(f, a); err != nil {
					return x.abort(err)
				}
			}
		case *logic.GotoAction:
			if err := x.jump(f, a); err != nil {
				return x.abort(err)
			}
		case *logic.PlainAction:
			if a.Op.Opcode == logic.OpReturn {
				x.pop()
				continue
			}
			next, err := x.dispatch(a)
			if err != nil {
				return x.abort(err)
			}
			switch next {
			case flowSuspend:
				return Outcome{Waiting: true}, nil
			case flowNewRoom:
				x.frames = x.frames[:0]
				return Outcome{RoomChanged: true}, nil
			case flowQuit:
				x.frames = x.frames[:0]
				return Outcome{Quit: true}, nil
			}
		}
	}
	return Outcome{}, nil
}

func (x *Executor) dispatch(a *logic.PlainAction) (flow, error) {
	cmd := commands[a.Op.Opcode]
	if cmd == nil {
		return flowNext, &logic.UnknownOpcodeError{Program: a.Program().Number, Address: a.Address(), Opcode: a.Op.Opcode}
	}
	if x.state.Flags[engine.FlagTrace] {
		x.logger.Debug("exec", "logic", a.Program().Number, "addr", fmt.Sprintf("%04X", a.Address()), "op", a.Op.Name)
	}
	return cmd(x, a.Operands)
}

func (x *Executor) jump(f *frame, j logic.Jump) error {
	idx, ok := f.prog.IndexOf(j.JumpTarget())
	if !ok {
		return &logic.UnresolvedJumpError{Program: f.prog.Number, Address: j.Address(), Target: j.JumpTarget()}
	}
	f.ip = idx
	return nil
}

// pop ends the innermost frame.
func (x *Executor) pop() {
	f := x.frames[len(x.frames)-1]
	if f.temp && f.prog.Number != 0 {
		f.prog.Loaded = false
		f.prog.ScanStart = 0
	}
	x.frames = x.frames[:len(x.frames)-1]
}

// abort drops the scan. State already committed by earlier commands stays.
func (x *Executor) abort(err error) (Outcome, error) {
	x.frames = x.frames[:0]
	x.wait = nil
	return Outcome{}, err
}

// call pushes a frame for program n.
func (x *Executor) call(n int) (flow, error) {
	if len(x.frames) >= x.maxDepth {
		return flowNext, &engine.RuntimeBoundsError{What: "call depth", Index: len(x.frames), Limit: x.maxDepth}
	}
	p, err := x.Program(n)
	if err != nil {
		return flowNext, err
	}
	x.frames = append(x.frames, frame{prog: p, ip: p.ScanStart, temp: !p.Loaded})
	p.Loaded = true
	return flowNext, nil
}

// current returns the program of the innermost frame.
func (x *Executor) current() *logic.Program {
	if len(x.frames) == 0 {
		return nil
	}
	return x.frames[len(x.frames)-1].prog
}

// unloadLogics forgets every loaded program except program 0.
func (x *Executor) unloadLogics() {
	for n, p := range x.programs {
		if n != 0 {
			p.Loaded = false
			p.ScanStart = 0
		}
	}
}

func (x *Executor) evalAll(conds []logic.Condition) (bool, error) {
	for _, c := range conds {
		ok, err := x.eval(c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (x *Executor) eval(c logic.Condition) (bool, error) {
	switch c := c.(type) {
	case *logic.OrCondition:
		for _, sub := range c.Conditions {
			ok, err := x.eval(sub)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case *logic.NotCondition:
		ok, err := x.eval(c.Condition)
		return !ok, err
	case *logic.PlainCondition:
		t := tests[c.Op.Opcode]
		if t == nil {
			return false, &logic.UnknownOpcodeError{Program: c.Program().Number, Address: c.Address(), Opcode: c.Op.Opcode, Condition: true}
		}
		return t(x, c.Operands)
	}
	return false, fmt.Errorf("interp: unexpected condition %T", c)
}

// message returns message n of the current program with its format codes
// expanded.
func (x *Executor) message(n int) (string, error) {
	p := x.current()
	if p == nil {
		return "", &engine.RuntimeBoundsError{What: "message", Index: n, Limit: 0}
	}
	msg, ok := p.Message(n)
	if !ok {
		return "", &engine.RuntimeBoundsError{What: "message", Index: n, Limit: len(p.Messages)}
	}
	return x.format(msg), nil
}

func (x *Executor) object(op logic.Operand) (*engine.Object, error) {
	return x.state.Object(op.Value)
}

func (x *Executor) varValue(op logic.Operand) int {
	return int(x.state.Vars[op.Byte()])
}

// reset puts the state back to its start-of-game configuration.
func (x *Executor) reset() {
	x.state.Init()
	if x.forceAnim {
		x.state.Vars[engine.VarAnimationInt] = x.animInterval
	}
	x.unloadLogics()
	if p, ok := x.programs[0]; ok {
		p.ScanStart = 0
	}
	x.input = newInputState()
	x.keys.ClearQueue()
}
