package engine

// UpdateLoopAndCel picks the loop matching the object's direction and
// advances its cel when the cycle timer expires.
func (o *Object) UpdateLoopAndCel() {
	if !o.Animated || !o.Update || !o.Drawn {
		return
	}

	newLoop := loopSame
	if !o.FixedLoop && o.Direction >= 0 && o.Direction <= 8 {
		switch n := o.NumLoops(); {
		case n == 2 || n == 3:
			newLoop = twoLoop[o.Direction]
		case n == 4:
			newLoop = fourLoop[o.Direction]
		case n > 4 && o.state.GameID == "KQ4":
			// KQ4's ego view has five loops but turns like a 4-loop view.
			newLoop = fourLoop[o.Direction]
		}
	}

	if o.StepTimeCount == 1 && newLoop != loopSame && o.Loop != newLoop {
		o.SetLoop(newLoop)
	}

	if o.Cycle && o.CycleTimeCount > 0 {
		o.CycleTimeCount--
		if o.CycleTimeCount == 0 {
			o.AdvanceCel()
			o.CycleTimeCount = o.CycleTime
		}
	}
}

// AdvanceCel moves to the next cel according to the cycle type. A pending
// NoAdvance swallows one advance.
func (o *Object) AdvanceCel() {
	if o.NoAdvance {
		o.NoAdvance = false
		return
	}

	cel := o.Cel
	last := o.NumCels() - 1

	switch o.CycleType {
	case CycleNormal:
		cel++
		if cel > last {
			cel = 0
		}
	case CycleEndLoop:
		if cel >= last {
			o.endCycle()
		} else {
			cel++
			if cel == last {
				o.endCycle()
			}
		}
	case CycleReverseLoop:
		if cel == 0 {
			o.endCycle()
		} else {
			cel--
			if cel == 0 {
				o.endCycle()
			}
		}
	case CycleReverse:
		if cel > 0 {
			cel--
		} else {
			cel = last
		}
	}

	o.SetCel(cel)
}

func (o *Object) endCycle() {
	o.state.Flags[o.Params[0]] = true
	o.Cycle = false
	o.Direction = 0
	o.CycleType = CycleNormal
}

// StartEndLoop cycles forward to the last cel then sets flag.
func (o *Object) StartEndLoop(flag int) {
	o.CycleType = CycleEndLoop
	o.startLoopCycle(flag)
}

// StartReverseLoop cycles backward to cel 0 then sets flag.
func (o *Object) StartReverseLoop(flag int) {
	o.CycleType = CycleReverseLoop
	o.startLoopCycle(flag)
}

func (o *Object) startLoopCycle(flag int) {
	o.Update = true
	o.Cycle = true
	o.NoAdvance = true
	o.Params[0] = flag
	o.state.Flags[flag] = false
}
