package interp

import (
	"github.com/vovakirdan/tui-agi/internal/engine"
	"github.com/vovakirdan/tui-agi/internal/logic"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// objCommand resolves the object operand before running fn.
func objCommand(fn func(x *Executor, o *engine.Object, a []logic.Operand) error) command {
	return func(x *Executor, a []logic.Operand) (flow, error) {
		o, err := x.object(a[0])
		if err != nil {
			return flowNext, err
		}
		return flowNext, fn(x, o, a)
	}
}

// objSet is objCommand for commands that cannot fail.
func objSet(fn func(x *Executor, o *engine.Object, a []logic.Operand)) command {
	return objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		fn(x, o, a)
		return nil
	})
}

// signedVar reads a variable as a signed byte.
func (x *Executor) signedVar(op logic.Operand) int {
	return int(int8(x.state.Vars[op.Byte()]))
}

var objectCommands = map[string]command{
	"animate.obj": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.Animate() }),
	"unanimate.all": next(func(x *Executor, _ []logic.Operand) {
		x.state.Redraw(func() {
			for _, o := range x.state.Objects {
				o.Animated = false
				o.Drawn = false
			}
		})
	}),
	"draw": objCommand(func(x *Executor, o *engine.Object, _ []logic.Operand) error {
		if _, err := x.state.LoadView(o.View); err != nil {
			return err
		}
		o.Show()
		return nil
	}),
	"erase": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.Erase() }),
	"position": objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) {
		o.X, o.PrevX = a[1].Value, a[1].Value
		o.Y, o.PrevY = a[2].Value, a[2].Value
	}),
	"position.f": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		o.X, o.PrevX = x.varValue(a[1]), x.varValue(a[1])
		o.Y, o.PrevY = x.varValue(a[2]), x.varValue(a[2])
	}),
	"get.posn": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		x.setVar(a[1], o.X)
		x.setVar(a[2], o.Y)
	}),
	"reposition": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		o.Reposition(x.signedVar(a[1]), x.signedVar(a[2]))
	}),
	"reposition.to": objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) {
		repositionTo(o, a[1].Value, a[2].Value)
	}),
	"reposition.to.f": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		repositionTo(o, x.varValue(a[1]), x.varValue(a[2]))
	}),
	"set.view": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		return x.setView(o, a[1].Value)
	}),
	"set.view.f": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		return x.setView(o, x.varValue(a[1]))
	}),
	"set.loop": objCommand(func(_ *Executor, o *engine.Object, a []logic.Operand) error {
		return setLoop(o, a[1].Value)
	}),
	"set.loop.f": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		return setLoop(o, x.varValue(a[1]))
	}),
	"fix.loop":     objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.FixedLoop = true }),
	"release.loop": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.FixedLoop = false }),
	"set.cel": objCommand(func(_ *Executor, o *engine.Object, a []logic.Operand) error {
		return setCel(o, a[1].Value)
	}),
	"set.cel.f": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		return setCel(o, x.varValue(a[1]))
	}),
	"last.cel":        objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.NumCels()-1) }),
	"current.cel":     objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.Cel) }),
	"current.loop":    objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.Loop) }),
	"current.view":    objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.View) }),
	"number.of.loops": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.NumLoops()) }),
	"set.priority": objCommand(func(_ *Executor, o *engine.Object, a []logic.Operand) error {
		return setPriority(o, a[1].Value)
	}),
	"set.priority.f": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		return setPriority(o, x.varValue(a[1]))
	}),
	"release.priority": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.FixedPriority = false }),
	"get.priority":     objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.Priority) }),
	"stop.update": objSet(func(x *Executor, o *engine.Object, _ []logic.Operand) {
		if o.Update {
			x.state.Redraw(func() { o.Update = false })
		}
	}),
	"start.update": objSet(func(x *Executor, o *engine.Object, _ []logic.Operand) {
		if !o.Update {
			x.state.Redraw(func() { o.Update = true })
		}
	}),
	"force.update":       objSet(func(x *Executor, _ *engine.Object, _ []logic.Operand) { x.state.Redraw(nil) }),
	"ignore.horizon":     objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreHorizon = true }),
	"observe.horizon":    objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreHorizon = false }),
	"set.horizon":        next(func(x *Executor, a []logic.Operand) { x.state.Horizon = a[0].Value }),
	"object.on.water":    objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.StayOnWater = true }),
	"object.on.land":     objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.StayOnLand = true }),
	"object.on.anything": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.StayOnWater, o.StayOnLand = false, false }),
	"ignore.objs":        objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreObjects = true }),
	"observe.objs":       objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreObjects = false }),
	"distance": objCommand(func(x *Executor, o *engine.Object, a []logic.Operand) error {
		other, err := x.object(a[1])
		if err != nil {
			return err
		}
		x.setVar(a[2], o.Distance(other))
		return nil
	}),
	"stop.cycling":  objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.Cycle = false }),
	"start.cycling": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.Cycle = true }),
	"normal.cycle": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) {
		o.CycleType = engine.CycleNormal
		o.Cycle = true
	}),
	"reverse.cycle": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) {
		o.CycleType = engine.CycleReverse
		o.Cycle = true
	}),
	"end.of.loop":   objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) { o.StartEndLoop(int(a[1].Byte())) }),
	"reverse.loop":  objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) { o.StartReverseLoop(int(a[1].Byte())) }),
	"cycle.time": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		o.CycleTime = x.varValue(a[1])
		o.CycleTimeCount = o.CycleTime
	}),
	"stop.motion": objSet(func(x *Executor, o *engine.Object, _ []logic.Operand) {
		o.Direction = 0
		o.Motion = engine.MotionNormal
		if o.IsEgo() {
			x.state.Vars[engine.VarEgoDir] = 0
			x.state.UserControl = false
		}
	}),
	"start.motion": objSet(func(x *Executor, o *engine.Object, _ []logic.Operand) {
		o.Motion = engine.MotionNormal
		if o.IsEgo() {
			x.state.Vars[engine.VarEgoDir] = 0
			x.state.UserControl = true
		}
	}),
	"step.size": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { o.StepSize = x.varValue(a[1]) }),
	"step.time": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		o.StepTime = x.varValue(a[1])
		o.StepTimeCount = o.StepTime
	}),
	"move.obj": objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) {
		o.StartMoveTo(a[1].Value, a[2].Value, a[3].Value, int(a[4].Byte()))
	}),
	"move.obj.f": objSet(func(x *Executor, o *engine.Object, a []logic.Operand) {
		o.StartMoveTo(x.varValue(a[1]), x.varValue(a[2]), x.varValue(a[3]), int(a[4].Byte()))
	}),
	"follow.ego": objSet(func(_ *Executor, o *engine.Object, a []logic.Operand) {
		o.StartFollow(a[1].Value, int(a[2].Byte()))
	}),
	"wander":         objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.StartWander() }),
	"normal.motion":  objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.Motion = engine.MotionNormal }),
	"set.dir":        objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { o.Direction = x.varValue(a[1]) }),
	"get.dir":        objSet(func(x *Executor, o *engine.Object, a []logic.Operand) { x.setVar(a[1], o.Direction) }),
	"ignore.blocks":  objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreBlocks = true }),
	"observe.blocks": objSet(func(_ *Executor, o *engine.Object, _ []logic.Operand) { o.IgnoreBlocks = false }),
	"block": next(func(x *Executor, a []logic.Operand) {
		x.state.SetBlock(a[0].Value, a[1].Value, a[2].Value, a[3].Value)
	}),
	"unblock": next(func(x *Executor, _ []logic.Operand) { x.state.Block = engine.Block{} }),
}

func repositionTo(o *engine.Object, x, y int) {
	o.X, o.Y = x, y
	o.Repositioned = true
	o.FindPosition()
}

func (x *Executor) setView(o *engine.Object, n int) error {
	if _, err := x.state.LoadView(n); err != nil {
		return err
	}
	o.SetView(n)
	return nil
}

func setLoop(o *engine.Object, n int) error {
	if n < 0 || n >= o.NumLoops() {
		return &engine.RuntimeBoundsError{What: "loop", Index: n, Limit: o.NumLoops()}
	}
	o.SetLoop(n)
	return nil
}

// setPriority fixes the priority of o. Priorities below 4 are control
// lines and never belong to an object.
func setPriority(o *engine.Object, p int) error {
	if p < 4 || p > 15 {
		return &engine.RuntimeBoundsError{What: "priority", Index: p, Min: 4, Limit: 16}
	}
	o.Priority = p
	o.FixedPriority = true
	return nil
}

func setCel(o *engine.Object, n int) error {
	if n < 0 || n >= o.NumCels() {
		return &engine.RuntimeBoundsError{What: "cel", Index: n, Limit: o.NumCels()}
	}
	o.SetCel(n)
	o.NoAdvance = false
	return nil
}

var viewCommands = map[string]command{
	"load.view": func(x *Executor, a []logic.Operand) (flow, error) {
		_, err := x.state.LoadView(a[0].Value)
		return flowNext, err
	},
	"load.view.f": func(x *Executor, a []logic.Operand) (flow, error) {
		_, err := x.state.LoadView(x.varValue(a[0]))
		return flowNext, err
	},
	"discard.view":   next(func(x *Executor, a []logic.Operand) { x.state.DiscardView(a[0].Value) }),
	"discard.view.v": next(func(x *Executor, a []logic.Operand) { x.state.DiscardView(x.varValue(a[0])) }),
	"load.pic":       ignore,
	"discard.pic":    ignore,
	"draw.pic": func(x *Executor, a []logic.Operand) (flow, error) {
		return flowNext, x.picture(x.varValue(a[0]), false)
	},
	"overlay.pic": func(x *Executor, a []logic.Operand) (flow, error) {
		return flowNext, x.picture(x.varValue(a[0]), true)
	},
	"show.pic": next(func(x *Executor, _ []logic.Operand) {
		x.text.CloseWindow()
		x.present.Present(x.state.Planes)
	}),
	"show.pri.screen": func(x *Executor, _ []logic.Operand) (flow, error) {
		x.present.Present(priorityPlanes(x.state.Planes))
		return x.keyWait("priority", func() { x.present.Present(x.state.Planes) })
	},
	"add.to.pic": func(x *Executor, a []logic.Operand) (flow, error) {
		v := make([]int, 7)
		for i := range v {
			v[i] = a[i].Value
		}
		return flowNext, x.state.AddToPicture(v[0], v[1], v[2], v[3], v[4], v[5], v[6])
	},
	"add.to.pic.f": func(x *Executor, a []logic.Operand) (flow, error) {
		v := make([]int, 7)
		for i := range v {
			v[i] = x.varValue(a[i])
		}
		return flowNext, x.state.AddToPicture(v[0], v[1], v[2], v[3], v[4], v[5], v[6])
	},
	"show.obj": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.showObject(a[0].Value)
	},
	"show.obj.v": func(x *Executor, a []logic.Operand) (flow, error) {
		return x.showObject(x.varValue(a[0]))
	},
}

// picture draws or overlays picture n under the drawn objects.
func (x *Executor) picture(n int, overlay bool) error {
	if x.game.Pictures == nil {
		return &engine.ResourceError{Kind: "picture", Number: n, Err: resource.ErrNotFound}
	}
	var err error
	x.state.Redraw(func() {
		if overlay {
			err = x.game.Pictures.OverlayPicture(n, x.state.Planes)
		} else {
			err = x.game.Pictures.DrawPicture(n, x.state.Planes)
		}
	})
	if err != nil {
		return &engine.ResourceError{Kind: "picture", Number: n, Err: err}
	}
	return nil
}

// priorityPlanes copies p with the priority plane shown as colours.
func priorityPlanes(p *resource.Planes) *resource.Planes {
	c := p.Clone()
	copy(c.Visual, p.Priority)
	return c
}

// showObject opens a window with the description of an inventory view.
func (x *Executor) showObject(n int) (flow, error) {
	v, err := x.state.LoadView(n)
	if err != nil {
		return flowNext, err
	}
	return x.window("show.obj", v.Description)
}
