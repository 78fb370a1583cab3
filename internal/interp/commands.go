package interp

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/logic"
)

type command func(x *Executor, args []logic.Operand) (flow, error)

// commands is indexed by action opcode. It is filled at init from the
// action table by name.
var commands [256]command

func init() {
	impls := []map[string]command{
		varCommands, flowCommands, objectCommands, viewCommands,
		textCommands, inputCommands, itemCommands, miscCommands,
	}
	for op := 1; op < logic.ActionCount(); op++ {
		o := logic.ActionOperation(uint8(op))
		var cmd command
		for _, m := range impls {
			if c, ok := m[o.Name]; ok {
				cmd = c
				break
			}
		}
		if cmd == nil {
			panic(fmt.Sprintf("interp: no implementation for action %s", o.Name))
		}
		commands[op] = cmd
	}
}

// next wraps a command that cannot fail or suspend.
func next(fn func(x *Executor, a []logic.Operand)) command {
	return func(x *Executor, a []logic.Operand) (flow, error) {
		fn(x, a)
		return flowNext, nil
	}
}

// ignore is used for commands that only affect hardware or presentation
// details the host does not model.
func ignore(*Executor, []logic.Operand) (flow, error) {
	return flowNext, nil
}

func (x *Executor) setVar(op logic.Operand, v int) {
	x.state.Vars[op.Byte()] = uint8(v)
}

var varCommands = map[string]command{
	"increment": next(func(x *Executor, a []logic.Operand) {
		if v := x.varValue(a[0]); v < engine.MaxVar {
			x.setVar(a[0], v+1)
		}
	}),
	"decrement": next(func(x *Executor, a []logic.Operand) {
		if v := x.varValue(a[0]); v > 0 {
			x.setVar(a[0], v-1)
		}
	}),
	"assignn": next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], a[1].Value) }),
	"assignv": next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[1])) }),
	"addn":    next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])+a[1].Value) }),
	"addv":    next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])+x.varValue(a[1])) }),
	"subn":    next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])-a[1].Value) }),
	"subv":    next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])-x.varValue(a[1])) }),
	"mul.n":   next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])*a[1].Value) }),
	"mul.v":   next(func(x *Executor, a []logic.Operand) { x.setVar(a[0], x.varValue(a[0])*x.varValue(a[1])) }),
	"div.n": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.divide(a[0], a[1].Value)
	},
	"div.v": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.divide(a[0], x.varValue(a[1]))
	},
	"lindirectv": next(func(x *Executor, a []logic.Operand) {
		x.state.Vars[x.varValue(a[0])] = uint8(x.varValue(a[1]))
	}),
	"rindirect": next(func(x *Executor, a []logic.Operand) {
		x.setVar(a[0], int(x.state.Vars[x.varValue(a[1])]))
	}),
	"lindirectn": next(func(x *Executor, a []logic.Operand) {
		x.state.Vars[x.varValue(a[0])] = a[1].Byte()
	}),
	"set":      next(func(x *Executor, a []logic.Operand) { x.state.Flags[a[0].Byte()] = true }),
	"reset":    next(func(x *Executor, a []logic.Operand) { x.state.Flags[a[0].Byte()] = false }),
	"toggle":   next(func(x *Executor, a []logic.Operand) { f := a[0].Byte(); x.state.Flags[f] = !x.state.Flags[f] }),
	"set.v":    next(func(x *Executor, a []logic.Operand) { x.state.Flags[x.varValue(a[0])] = true }),
	"reset.v":  next(func(x *Executor, a []logic.Operand) { x.state.Flags[x.varValue(a[0])] = false }),
	"toggle.v": next(func(x *Executor, a []logic.Operand) { f := x.varValue(a[0]); x.state.Flags[f] = !x.state.Flags[f] }),
	"random": next(func(x *Executor, a []logic.Operand) {
		x.setVar(a[2], x.state.RandomRange(a[0].Value, a[1].Value+1))
	}),
}

func (x *Executor) divide(op logic.Operand, d int) (flow, error) {
	if d == 0 {
		return flowNext, &engine.RuntimeBoundsError{What: "division"}
	}
	x.setVar(op, x.varValue(op)/d)
	return flowNext, nil
}

var flowCommands = map[string]command{
	"new.room": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.newRoom(a[0].Value)
	},
	"new.room.f": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.newRoom(x.varValue(a[0]))
	},
	"load.logics": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.loadLogic(a[0].Value)
	},
	"load.logics.f": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.loadLogic(x.varValue(a[0]))
	},
	"call": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.call(a[0].Value)
	},
	"call.f": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.call(x.varValue(a[0]))
	},
	"set.scan.start": next(func(x *Executor, _ []logic.Operand) {
		f := &x.frames[len(x.frames)-1]
		f.prog.ScanStart = f.ip
	}),
	"reset.scan.start": next(func(x *Executor, _ []logic.Operand) {
		x.current().ScanStart = 0
	}),
	"restart.game": func(x *Executor, _ []logic.Operand) (flow, error) {
		x.stopSound()
		x.reset()
		x.state.Flags[engine.FlagRestart] = true
		x.logger.Info("game restarted")
		return flowNewRoom, nil
	},
	"quit": func(x *Executor, _ []logic.Operand) (flow, error) {
		x.stopSound()
		return flowQuit, nil
	},
	"program.control": next(func(x *Executor, _ []logic.Operand) { x.state.UserControl = false }),
	"player.control":  next(func(x *Executor, _ []logic.Operand) { x.state.UserControl = true }),
}

func (x *Executor) loadLogic(n int) (flow, error) {
	p, err := x.Program(n)
	if err != nil {
		return flowNext, err
	}
	p.Loaded = true
	return flowNext, nil
}

// newRoom switches to room n: objects are soft reset, every program but 0
// is unloaded and ego is placed on the edge opposite the one it left by.
func (x *Executor) newRoom(n int) (flow, error) {
	p, err := x.Program(n)
	if err != nil {
		return flowNext, err
	}
	s := x.state
	x.stopSound()
	s.RoomReset()
	x.unloadLogics()
	p.Loaded = true

	s.Vars[engine.VarPrevRoom] = s.Vars[engine.VarCurRoom]
	s.Vars[engine.VarCurRoom] = uint8(n)
	s.Vars[engine.VarObjHit] = 0
	s.Vars[engine.VarObjEdge] = 0
	s.Vars[engine.VarUnknownWord] = 0

	ego := s.Ego()
	switch s.Vars[engine.VarEgoEdge] {
	case engine.EdgeTop:
		ego.Y = engine.MaxY
	case engine.EdgeRight:
		ego.X = engine.MinX
	case engine.EdgeBottom:
		ego.Y = s.Horizon + 1
	case engine.EdgeLeft:
		ego.X = engine.MaxX + 1 - ego.XSize()
	}
	s.Vars[engine.VarEgoEdge] = 0

	s.Flags[engine.FlagInitLogics] = true
	s.Flags[engine.FlagInput] = false
	s.Flags[engine.FlagHadMatch] = false
	x.keys.ClearQueue()

	x.logger.Debug("new room", "room", n, "prev", s.Vars[engine.VarPrevRoom])
	return flowNewRoom, nil
}

var miscCommands = map[string]command{
	"set.game.id": func(x *Executor, a []logic.Operand) (flow, error) {
		id, err := x.message(a[0].Value)
		if err != nil {
			return flowNext, err
		}
		x.state.GameID = id
		return flowNext, nil
	},
	"log": func(x *Executor, a []logic.Operand) (flow, error) {
		msg, err := x.message(a[0].Value)
		if err != nil {
			return flowNext, err
		}
		e := Entry{
			Time:    time.Now(),
			Kind:    "log",
			Tick:    x.TotalTicks,
			Room:    int(x.state.Vars[engine.VarCurRoom]),
			Logic:   x.current().Number,
			Message: msg,
		}
		x.logger.Info("script log", "room", e.Room, "logic", e.Logic, "msg", msg)
		if err := x.journal.Record(e); err != nil {
			x.logger.Warn("cannot record log entry", "err", err)
		}
		return flowNext, nil
	},
	"trace.on": next(func(x *Executor, _ []logic.Operand) { x.state.Flags[engine.FlagTrace] = true }),
	"set.pri.base": next(func(x *Executor, a []logic.Operand) {
		x.state.PriorityBase = a[0].Value
	}),
	"save.game": func(x *Executor, _ []logic.Operand) (flow, error) {
		x.logger.Info("save.game is not supported")
		return flowNext, nil
	},
	"restore.game": func(x *Executor, _ []logic.Operand) (flow, error) {
		x.logger.Info("restore.game is not supported")
		return flowNext, nil
	},
	"load.sound": ignore,
	"sound": func(x *Executor, a []logic.Operand) (flow, error) {
		return flowNext, x.startSound(a[0].Value, int(a[1].Byte()))
	},
	"stop.sound":    next(func(x *Executor, _ []logic.Operand) { x.stopSound() }),
	"discard.sound": ignore,
	"mouse.posn": next(func(x *Executor, a []logic.Operand) {
		x.setVar(a[0], 0)
		x.setVar(a[1], 0)
	}),
	"trace.info":      ignore,
	"init.disk":       ignore,
	"show.mem":        ignore,
	"init.joy":        ignore,
	"toggle.monitor":  ignore,
	"script.size":     ignore,
	"set.simple":      ignore,
	"push.script":     ignore,
	"pop.script":      ignore,
	"hide.mouse":      ignore,
	"show.mouse":      ignore,
	"fence.mouse":     ignore,
	"allow.menu":      next(func(x *Executor, a []logic.Operand) { x.state.Flags[engine.FlagEnableMenu] = a[0].Value != 0 }),
	"set.menu":        menuCommand(func(x *Executor, msg string, _ []logic.Operand) { x.addMenu(msg) }),
	"set.menu.item":   menuCommand(func(x *Executor, msg string, a []logic.Operand) { x.addMenuItem(msg, a[1].Value) }),
	"submit.menu":     next(func(x *Executor, _ []logic.Operand) { x.menu.submitted = true }),
	"enable.item":     next(func(x *Executor, a []logic.Operand) { x.enableMenuItems(a[0].Value, true) }),
	"disable.item":    next(func(x *Executor, a []logic.Operand) { x.enableMenuItems(a[0].Value, false) }),
	"menu.input":      func(x *Executor, _ []logic.Operand) (flow, error) { return x.openMenu() },
	"adj.ego.move.to.x.y": ignore,
}

func menuCommand(fn func(x *Executor, msg string, a []logic.Operand)) command {
	return func(x *Executor, a []logic.Operand) (flow, error) {
		msg, err := x.message(a[0].Value)
		if err != nil {
			return flowNext, err
		}
		fn(x, msg, a)
		return flowNext, nil
	}
}
