package engine

import "github.com/vovakirdan/tui-agi/internal/resource"

// Object is one slot of the animated-object table. Slot 0 is ego, the
// player-controlled object. Positions refer to the bottom-left pixel of
// the current cel (the baseline).
type Object struct {
	Number int
	state  *State

	X, Y         int
	PrevX, PrevY int

	View, Loop, Cel int
	Direction       int

	Motion MotionType
	// Params are the per-motion parameters:
	//  Wander: [0] remaining distance
	//  Follow: [0] arrival distance, [1] completion flag, [2] random run (-1 on start)
	//  MoveTo: [0] x, [1] y, [2] saved step size, [3] completion flag
	// Params[0] is also the completion flag of the EndLoop/ReverseLoop cycles.
	Params [4]int

	StepSize      int
	StepTime      int
	StepTimeCount int

	CycleType      CycleType
	CycleTime      int
	CycleTimeCount int

	Priority   int
	ControlBox int

	Animated      bool
	Drawn         bool
	Update        bool
	Cycle         bool
	FixedLoop     bool
	FixedPriority bool
	IgnoreBlocks  bool
	IgnoreHorizon bool
	IgnoreObjects bool
	StayOnLand    bool
	StayOnWater   bool
	Repositioned  bool
	NoAdvance     bool
	Blocked       bool

	// Stopped is set when the last position update left the object where
	// it was.
	Stopped bool

	save saveArea
}

// saveArea holds the plane pixels an object covered when it was drawn.
type saveArea struct {
	valid    bool
	x, y     int
	w, h     int
	visual   []uint8
	priority []uint8
}

// Reset returns the object to its initial state. A soft reset, used on
// room changes, only clears drawing state and timers.
func (o *Object) Reset(full bool) {
	o.Animated = false
	o.Drawn = false
	o.Update = true
	o.save = saveArea{}
	o.StepSize = 1
	o.CycleTime = 1
	o.CycleTimeCount = 1
	o.StepTime = 1
	o.StepTimeCount = 1

	if !full {
		return
	}
	o.Blocked = false
	o.ControlBox = 0
	o.Cel, o.Loop, o.View = 0, 0, 0
	o.Cycle = false
	o.CycleType = CycleNormal
	o.Direction = 0
	o.FixedLoop = false
	o.FixedPriority = false
	o.IgnoreBlocks = false
	o.IgnoreHorizon = false
	o.IgnoreObjects = false
	o.Params = [4]int{}
	o.Motion = MotionNormal
	o.NoAdvance = false
	o.X, o.PrevX = 0, 0
	o.Y, o.PrevY = 0, 0
	o.Priority = 0
	o.Repositioned = false
	o.StayOnLand = false
	o.StayOnWater = false
	o.Stopped = false
}

// Animate adds the object to the animation list with default behaviour.
// It has no effect on an object that is already animated.
func (o *Object) Animate() {
	if o.Animated {
		return
	}
	o.IgnoreBlocks = false
	o.FixedPriority = false
	o.IgnoreHorizon = false
	o.Blocked = false
	o.StayOnLand = false
	o.StayOnWater = false
	o.IgnoreObjects = false
	o.Repositioned = false
	o.NoAdvance = false
	o.FixedLoop = false
	o.Stopped = false

	o.Animated = true
	o.Update = true
	o.Cycle = true
	o.Motion = MotionNormal
	o.CycleType = CycleNormal
	o.Direction = 0
}

// IsEgo reports whether o is object 0.
func (o *Object) IsEgo() bool {
	return o.Number == 0
}

func (o *Object) viewRes() *resource.View {
	return o.state.view(o.View)
}

func (o *Object) celRes() *resource.Cel {
	return o.viewRes().Loop(o.Loop).Cel(o.Cel)
}

// NumLoops returns the loop count of the current view.
func (o *Object) NumLoops() int {
	v := o.viewRes()
	if v == nil {
		return 0
	}
	return len(v.Loops)
}

// NumCels returns the cel count of the current loop.
func (o *Object) NumCels() int {
	l := o.viewRes().Loop(o.Loop)
	if l == nil {
		return 0
	}
	return len(l.Cels)
}

// XSize is the width of the current cel.
func (o *Object) XSize() int {
	if c := o.celRes(); c != nil {
		return c.Width
	}
	return 0
}

// YSize is the height of the current cel.
func (o *Object) YSize() int {
	if c := o.celRes(); c != nil {
		return c.Height
	}
	return 0
}

// SetView selects view n, keeping the loop when the new view has it.
func (o *Object) SetView(n int) {
	o.View = n
	loop := o.Loop
	if loop >= o.NumLoops() {
		loop = 0
	}
	o.SetLoop(loop)
}

// SetLoop selects loop n, keeping the cel when the loop has it.
func (o *Object) SetLoop(n int) {
	o.Loop = n
	if o.Loop >= o.NumLoops() || o.Cel >= o.NumCels() {
		o.Cel = 0
	}
	o.SetCel(o.Cel)
}

// SetCel selects cel n and pulls the object back inside the screen if the
// new cel size pushes it over the right or top edge.
func (o *Object) SetCel(n int) {
	o.Cel = n
	if o.Loop >= o.NumLoops() || o.Cel >= o.NumCels() {
		return
	}
	if o.X+o.XSize() > MaxX+1 {
		o.Repositioned = true
		o.X = MaxX - o.XSize()
	}
	if o.Y-o.YSize() < MinY-1 {
		o.Repositioned = true
		o.Y = MinY - 1 + o.YSize()
		if o.Y <= o.state.Horizon && !o.IgnoreHorizon {
			o.Y = o.state.Horizon + 1
		}
	}
}

// Reposition moves the object by a signed delta. Negative deltas that would
// cross zero stop at zero.
func (o *Object) Reposition(dx, dy int) {
	o.Repositioned = true
	if dx < 0 && o.X < -dx {
		o.X = 0
	} else {
		o.X += dx
	}
	if dy < 0 && o.Y < -dy {
		o.Y = 0
	} else {
		o.Y += dy
	}
	o.FindPosition()
}

// Distance returns the distance between the baseline centres of o and
// other, capped at 254. It is 255 when either object is not drawn.
func (o *Object) Distance(other *Object) int {
	if !o.Drawn || !other.Drawn {
		return MaxVar
	}
	dist := abs((o.X+o.XSize()/2)-(other.X+other.XSize()/2)) + abs(o.Y-other.Y)
	if dist > 254 {
		return 254
	}
	return dist
}

// EffectiveY is the Y used for draw ordering: the baseline, or the start
// of the priority band when the priority is fixed.
func (o *Object) EffectiveY() int {
	if o.FixedPriority {
		return o.state.BandStart(o.Priority)
	}
	return o.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
