package interp

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// TicksPerSecond is the rate the host is expected to call Tick at.
const TicksPerSecond = 60

// Options configures an Interpreter.
type Options struct {
	GameID       string
	PriorityBase int
	Horizon      int
	Seed         int64
	MinDist      int
	MaxDist      int

	AnimationInterval      int
	ForceAnimationInterval bool
	MessagesCrypted        bool
	MaxCallDepth           int

	Logger    *log.Logger
	Text      Text
	Presenter Presenter
	Journal   Journal
}

// Interpreter schedules the interpreter cycle. The host calls Tick 60
// times a second; every AnimationInt*3 ticks a full cycle runs: input,
// direction updates, the logic scan, object animation and presentation.
//
// A command that waits keeps its cycle in flight across ticks. Ticks that
// arrive meanwhile, including re-entrant ones from a Presenter or Text
// callback, only advance the counters and the clock.
type Interpreter struct {
	exec   *Executor
	state  *engine.State
	logger *log.Logger

	inTick         bool
	running        bool
	animationTicks int
	quit           bool
	faults         int
}

// New creates an interpreter for game.
func New(game resource.Game, opts Options) *Interpreter {
	var items []resource.Item
	if game.Inventory != nil {
		items = game.Inventory.Items()
	}
	state := engine.New(game.Views, items, engine.Options{
		GameID:       opts.GameID,
		PriorityBase: opts.PriorityBase,
		Horizon:      opts.Horizon,
		Seed:         opts.Seed,
		MinDist:      opts.MinDist,
		MaxDist:      opts.MaxDist,
	})
	exec := NewExecutor(state, game, ExecutorOptions{
		MessagesCrypted:        opts.MessagesCrypted,
		MaxCallDepth:           opts.MaxCallDepth,
		AnimationInterval:      opts.AnimationInterval,
		ForceAnimationInterval: opts.ForceAnimationInterval,
		Logger:                 opts.Logger,
		Text:                   opts.Text,
		Presenter:              opts.Presenter,
		Journal:                opts.Journal,
	})
	return &Interpreter{exec: exec, state: state, logger: exec.logger}
}

// State returns the interpreter state.
func (it *Interpreter) State() *engine.State { return it.state }

// Executor returns the script executor.
func (it *Interpreter) Executor() *Executor { return it.exec }

// Waiting returns the wait holding the current cycle, or nil.
func (it *Interpreter) Waiting() *Wait { return it.exec.Waiting() }

// Quit reports whether a script ran quit.
func (it *Interpreter) Quit() bool { return it.quit }

// Faults returns the number of cycles aborted by an error.
func (it *Interpreter) Faults() int { return it.faults }

// Ticks returns the total tick count.
func (it *Interpreter) Ticks() uint64 { return it.exec.TotalTicks }

// KeyDown records a key press with its modifier bits.
func (it *Interpreter) KeyDown(code int, mods core.Key) { it.exec.keys.Press(code, mods) }

// KeyUp records a key release.
func (it *Interpreter) KeyUp(code int) { it.exec.keys.Release(code) }

// Type records a typed character.
func (it *Interpreter) Type(r rune) { it.exec.keys.Type(r) }

// Tick advances the interpreter by one tick. The returned error is the
// fault that aborted the cycle, if any; the interpreter stays usable.
func (it *Interpreter) Tick() error {
	x := it.exec
	s := it.state

	x.TotalTicks++
	if x.TotalTicks%TicksPerSecond == 0 {
		it.updateClock()
	}

	if it.inTick {
		if it.running || x.Waiting() == nil || !x.Poll() {
			return nil
		}
		return it.scan(x.Resume)
	}
	if it.quit {
		return nil
	}

	it.inTick = true
	it.animationTicks++
	if it.animationTicks < int(s.Vars[engine.VarAnimationInt])*3 {
		it.inTick = false
		return nil
	}
	it.animationTicks = 0

	x.processInput()

	ego := s.Ego()
	if !s.UserControl {
		s.Vars[engine.VarEgoDir] = uint8(ego.Direction)
	} else {
		ego.Direction = int(s.Vars[engine.VarEgoDir])
	}

	s.UpdateDirections()

	return it.scan(func() (Outcome, error) { return x.Run(0) })
}

// scan runs program 0 until it neither changes room nor suspends, then
// finishes the cycle.
func (it *Interpreter) scan(start func() (Outcome, error)) error {
	x := it.exec
	it.running = true
	out, err := start()
	for err == nil && out.RoomChanged {
		out, err = x.Run(0)
	}
	it.running = false

	if err != nil {
		it.fault(err)
		it.inTick = false
		return err
	}
	if out.Waiting {
		return nil
	}
	if out.Quit {
		it.quit = true
		it.logger.Info("quit", "ticks", x.TotalTicks)
	}
	it.finish()
	return nil
}

// finish runs the end-of-cycle steps after the logic scan.
func (it *Interpreter) finish() {
	x := it.exec
	s := it.state

	s.Ego().Direction = int(s.Vars[engine.VarEgoDir])
	x.pollSound()

	s.Vars[engine.VarObjHit] = 0
	s.Vars[engine.VarObjEdge] = 0
	s.Flags[engine.FlagInitLogics] = false
	s.Flags[engine.FlagRestart] = false
	s.Flags[engine.FlagRestore] = false

	if s.GraphicsMode {
		s.AnimateObjects()
		x.present.Present(s.Planes)
	}

	x.keys.Snapshot()
	it.inTick = false
}

func (it *Interpreter) fault(err error) {
	x := it.exec
	it.faults++
	e := Entry{
		Time:    time.Now(),
		Kind:    "fault",
		Tick:    x.TotalTicks,
		Room:    int(it.state.Vars[engine.VarCurRoom]),
		Message: err.Error(),
	}
	it.logger.Warn("cycle aborted", "tick", e.Tick, "room", e.Room, "err", err)
	if jerr := x.journal.Record(e); jerr != nil {
		it.logger.Warn("cannot record fault", "err", jerr)
	}
}

// updateClock advances the seconds, minutes, hours and days variables.
func (it *Interpreter) updateClock() {
	v := &it.state.Vars
	v[engine.VarSeconds]++
	if v[engine.VarSeconds] < 60 {
		return
	}
	v[engine.VarSeconds] = 0
	v[engine.VarMinutes]++
	if v[engine.VarMinutes] < 60 {
		return
	}
	v[engine.VarMinutes] = 0
	v[engine.VarHours]++
	if v[engine.VarHours] < 24 {
		return
	}
	v[engine.VarHours] = 0
	v[engine.VarDays]++
}
