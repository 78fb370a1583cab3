package engine

// UpdateDirection chooses the object's direction for the coming step
// according to its motion type, then applies the block test. It only acts
// on animated, updating, drawn objects at the start of a step.
func (o *Object) UpdateDirection() {
	if !o.Animated || !o.Update || !o.Drawn || o.StepTimeCount != 1 {
		return
	}

	switch o.Motion {
	case MotionWander:
		o.wander()
	case MotionFollow:
		o.follow()
	case MotionMoveTo:
		o.moveTo()
	}

	if !o.state.Block.Active {
		o.Blocked = false
	} else if !o.IgnoreBlocks && o.Direction != 0 {
		o.checkBlock()
	}
}

// StartWander puts the object into wander motion. Ego loses user control.
func (o *Object) StartWander() {
	if o.IsEgo() {
		o.state.UserControl = false
	}
	o.Motion = MotionWander
	o.Update = true
}

func (o *Object) wander() {
	remaining := o.Params[0]
	o.Params[0]--
	if remaining == 0 || o.Stopped {
		o.Direction = o.state.Random(9)
		if o.IsEgo() {
			o.state.Vars[VarEgoDir] = uint8(o.Direction)
		}
		o.Params[0] = o.state.RandomRange(o.state.minDist, o.state.maxDist+1)
	}
}

// StartFollow makes the object follow ego until it is within dist (at least
// its step size), then sets flag.
func (o *Object) StartFollow(dist, flag int) {
	o.Motion = MotionFollow
	if dist > o.StepSize {
		o.Params[0] = dist
	} else {
		o.Params[0] = o.StepSize
	}
	o.Params[1] = flag
	o.Params[2] = -1
	o.state.Flags[flag] = false
	o.Update = true
}

func (o *Object) follow() {
	ego := o.state.Ego()
	ecx := ego.X + ego.XSize()/2
	ocx := o.X + o.XSize()/2

	dir := MoveDirection(ocx, o.Y, ecx, ego.Y, o.Params[0])
	if dir == 0 {
		o.Direction = 0
		o.Motion = MotionNormal
		o.state.Flags[o.Params[1]] = true
		return
	}

	if o.Params[2] == -1 {
		o.Params[2] = 0
	} else if o.Stopped {
		// Blocked: head off in a random direction for a while, no further
		// than the average of the axis distances to ego.
		o.Direction = o.state.RandomRange(1, 9)
		maxDist := (abs(ocx-ecx)+abs(o.Y-ego.Y))/2 + 1
		if maxDist <= o.StepSize {
			o.Params[2] = o.StepSize
		} else {
			o.Params[2] = o.state.RandomRange(o.StepSize, maxDist)
		}
		return
	}

	if o.Params[2] != 0 {
		o.Params[2] -= o.StepSize
		if o.Params[2] < 0 {
			o.Params[2] = 0
		}
		return
	}

	o.Direction = dir
}

// StartMoveTo moves the object toward (x, y), optionally with a new step
// size, and sets flag on arrival. Ego loses user control.
func (o *Object) StartMoveTo(x, y, stepSize, flag int) {
	o.Motion = MotionMoveTo
	o.Params[0] = x
	o.Params[1] = y
	o.Params[2] = o.StepSize
	if stepSize != 0 {
		o.StepSize = stepSize
	}
	o.Params[3] = flag
	o.state.Flags[flag] = false
	o.Update = true
	if o.IsEgo() {
		o.state.UserControl = false
	}
	o.moveTo()
}

func (o *Object) moveTo() {
	o.Direction = MoveDirection(o.X, o.Y, o.Params[0], o.Params[1], o.StepSize)
	if o.IsEgo() {
		o.state.Vars[VarEgoDir] = uint8(o.Direction)
	}
	if o.Direction == 0 {
		o.EndMoveTo()
	}
}

// EndMoveTo completes a move: the step size is restored, the completion
// flag set and motion returns to normal. Ego regains user control.
func (o *Object) EndMoveTo() {
	o.StepSize = o.Params[2]
	o.state.Flags[o.Params[3]] = true
	o.Motion = MotionNormal
	if o.IsEgo() {
		o.state.UserControl = true
		o.state.Vars[VarEgoDir] = 0
	}
}

// checkBlock refuses a step that would take the object into or out of the
// block rectangle.
func (o *Object) checkBlock() {
	b := o.state.Block
	inside := b.Contains(o.X, o.Y)

	dx, dy := Compass(o.Direction)
	nx := o.X + dx*o.StepSize
	ny := o.Y + dy*o.StepSize

	if inside == b.Contains(nx, ny) {
		o.Blocked = false
		return
	}
	o.Blocked = true
	o.Direction = 0
	if o.IsEgo() {
		o.state.Vars[VarEgoDir] = 0
	}
}
