package engine

import "github.com/vovakirdan/tui-agi/internal/resource"

// Control plane classes.
const (
	controlBlock       = 0
	controlConditional = 1
	controlSpecial     = 2
	controlWater       = 3
)

// maxSpiralLeg bounds the position search to legs that span the screen.
const maxSpiralLeg = 2 * (MaxX + MaxY + 2)

// UpdatePosition moves the object one step when its step timer expires,
// keeping it on screen and out of other objects and blocked areas. Edge
// hits are published in the edge variables and end a move.
func (o *Object) UpdatePosition() {
	if !o.Animated || !o.Update || !o.Drawn {
		return
	}
	if o.StepTimeCount != 0 {
		o.StepTimeCount--
		if o.StepTimeCount != 0 {
			return
		}
	}
	o.StepTimeCount = o.StepTime

	s := o.state
	border := EdgeNone
	px, py := o.X, o.Y
	o.PrevX, o.PrevY = px, py
	ox, oy := px, py

	if !o.Repositioned {
		dx, dy := Compass(o.Direction)
		ox += dx * o.StepSize
		oy += dy * o.StepSize
	}

	if ox < MinX {
		ox = MinX
		border = EdgeLeft
	} else if ox+o.XSize() > MaxX+1 {
		ox = MaxX + 1 - o.XSize()
		border = EdgeRight
	}
	if oy-o.YSize() < MinY-1 {
		oy = MinY - 1 + o.YSize()
		border = EdgeTop
	} else if oy > MaxY {
		oy = MaxY
		border = EdgeBottom
	} else if !o.IgnoreHorizon && oy <= s.Horizon {
		oy = s.Horizon + 1
		border = EdgeTop
	}

	o.X, o.Y = ox, oy

	if o.Collide() || !o.CanBeHere() {
		o.X, o.Y = px, py
		border = EdgeNone
		o.FindPosition()
	}

	if border != EdgeNone {
		if o.IsEgo() {
			s.Vars[VarEgoEdge] = uint8(border)
		} else {
			s.Vars[VarObjHit] = uint8(o.Number)
			s.Vars[VarObjEdge] = uint8(border)
		}
		if o.Motion == MotionMoveTo {
			o.EndMoveTo()
		}
	}

	o.Stopped = o.X == px && o.Y == py
	o.Repositioned = false
}

// goodPosition reports whether the object lies fully inside the picture
// area and below the horizon unless it ignores it.
func (o *Object) goodPosition() bool {
	return o.X >= MinX &&
		o.X+o.XSize() <= MaxX+1 &&
		o.Y-o.YSize() >= MinY-1 &&
		o.Y <= MaxY &&
		(o.IgnoreHorizon || o.Y > o.state.Horizon)
}

// FindPosition moves the object to the nearest legal position by walking
// an outward square spiral: left, down, right, up, with the leg length
// growing after every down and up leg.
func (o *Object) FindPosition() {
	if o.Y <= o.state.Horizon && !o.IgnoreHorizon {
		o.Y = o.state.Horizon + 1
	}
	if o.goodPosition() && !o.Collide() && o.CanBeHere() {
		return
	}

	startX, startY := o.X, o.Y
	legLen, legDir, legCnt := 1, 0, 1
	for !o.goodPosition() || o.Collide() || !o.CanBeHere() {
		if legLen > maxSpiralLeg {
			// nowhere on screen is legal
			o.X, o.Y = startX, startY
			return
		}
		switch legDir {
		case 0: // left
			o.X--
			legCnt--
			if legCnt == 0 {
				legDir = 1
				legCnt = legLen
			}
		case 1: // down
			o.Y++
			legCnt--
			if legCnt == 0 {
				legDir = 2
				legLen++
				legCnt = legLen
			}
		case 2: // right
			o.X++
			legCnt--
			if legCnt == 0 {
				legDir = 3
				legCnt = legLen
			}
		case 3: // up
			o.Y--
			legCnt--
			if legCnt == 0 {
				legDir = 0
				legLen++
				legCnt = legLen
			}
		}
	}
}

// Collide reports whether the object's baseline touches that of another
// animated, drawn object. Objects that ignore objects never collide.
// Crossing another object's Y between frames also counts.
func (o *Object) Collide() bool {
	if o.IgnoreObjects {
		return false
	}
	for _, other := range o.state.Objects {
		if !other.Animated || !other.Drawn || other.IgnoreObjects || other.Number == o.Number {
			continue
		}
		if o.X+o.XSize() < other.X || o.X > other.X+other.XSize() {
			continue
		}
		if o.Y == other.Y ||
			(o.Y > other.Y && o.PrevY < other.PrevY) ||
			(o.Y < other.Y && o.PrevY > other.PrevY) {
			return true
		}
	}
	return false
}

// CanBeHere tests the control plane under the object's baseline. Unless the
// priority is fixed it is first recomputed from Y. Priority 15 objects are
// never blocked. For ego the water and special results are published in
// FlagOnWater and FlagHitSpecial.
func (o *Object) CanBeHere() bool {
	s := o.state
	ok := true
	onWater := false
	hitSpecial := false

	if !o.FixedPriority {
		o.Priority = s.CalculatePriority(o.Y)
	}

	if o.Priority != 15 {
		onWater = true
		for x := o.X; x < o.X+o.XSize(); x++ {
			c := uint8(controlBlock)
			if resource.In(x, o.Y) {
				c = s.Planes.Control[resource.Index(x, o.Y)]
			}
			if c == controlWater {
				continue
			}
			onWater = false
			if c == controlBlock {
				ok = false
				break
			}
			if c == controlConditional {
				if !o.IgnoreBlocks {
					ok = false
					break
				}
			} else if c == controlSpecial {
				hitSpecial = true
			}
		}

		if onWater {
			if o.StayOnLand {
				ok = false
			}
		} else if o.StayOnWater {
			ok = false
		}
	}

	if o.IsEgo() {
		s.Flags[FlagOnWater] = onWater
		s.Flags[FlagHitSpecial] = hitSpecial
	}
	return ok
}
