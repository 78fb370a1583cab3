package engine

import "sort"

// UpdateDirections runs direction resolution for every object slot.
func (s *State) UpdateDirections() {
	for _, o := range s.Objects {
		o.UpdateDirection()
	}
}

// AnimateObjects runs one animation pass: loop and cel selection, removal
// of every drawn object from the planes, position updates and a sorted
// redraw.
func (s *State) AnimateObjects() {
	for _, o := range s.Objects {
		if o.Animated && o.Update && o.Drawn {
			o.UpdateLoopAndCel()
		}
	}

	s.RestoreBackgrounds()

	for _, o := range s.Objects {
		o.UpdatePosition()
	}

	s.DrawObjects()
}

// DrawOrder returns the animated, drawn objects in compositing order:
// ascending priority, then ascending effective Y, ties kept in slot order.
func (s *State) DrawOrder() []*Object {
	list := make([]*Object, 0, 16)
	for _, o := range s.Objects {
		if o.Animated && o.Drawn {
			list = append(list, o)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.EffectiveY() < b.EffectiveY()
	})
	return list
}

// RestoreBackgrounds removes every object drawn by the last DrawObjects,
// last drawn first.
func (s *State) RestoreBackgrounds() {
	for i := len(s.drawList) - 1; i >= 0; i-- {
		s.drawList[i].RestoreBackground()
	}
	s.drawList = nil
}

// DrawObjects composites every visible object in draw order.
func (s *State) DrawObjects() {
	s.drawList = s.DrawOrder()
	for _, o := range s.drawList {
		o.Draw()
	}
}

// Redraw takes every object off the planes, applies fn and draws them back.
// Commands that change what is drawn go through it so backgrounds are
// restored in the order they were saved.
func (s *State) Redraw(fn func()) {
	s.RestoreBackgrounds()
	if fn != nil {
		fn()
	}
	s.DrawObjects()
}

// Show puts an object on screen at a legal position.
func (o *Object) Show() {
	if o.Drawn {
		return
	}
	o.state.Redraw(func() {
		o.Update = true
		o.FindPosition()
		o.PrevX, o.PrevY = o.X, o.Y
		o.Drawn = true
	})
}

// Erase takes an object off screen.
func (o *Object) Erase() {
	if !o.Drawn {
		return
	}
	o.state.Redraw(func() {
		o.Drawn = false
	})
}

// AddToPicture draws a cel permanently into the picture, optionally with a
// control box. A priority of 0 derives the priority from the final Y.
func (s *State) AddToPicture(view, loop, cel, x, y, priority, controlBox int) error {
	if _, err := s.LoadView(view); err != nil {
		return err
	}

	o := &Object{Number: -1, state: s}
	o.Reset(true)
	o.SetView(view)
	o.SetLoop(loop)
	o.SetCel(cel)
	o.X, o.PrevX = x, x
	o.Y, o.PrevY = y, y

	// Priority 15 lets FindPosition ignore the control plane; only the
	// screen bounds matter here.
	o.IgnoreHorizon = true
	o.FixedPriority = true
	o.IgnoreObjects = true
	o.Priority = 15
	o.FindPosition()

	if priority == 0 {
		o.Priority = s.CalculatePriority(o.Y)
	} else {
		o.Priority = priority
	}
	o.ControlBox = controlBox

	s.Redraw(func() {
		o.drawPermanent(s.Planes)
	})
	return nil
}
