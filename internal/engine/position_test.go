package engine

import (
	"testing"

	"github.com/vovakirdan/tui-agi/internal/resource"
)

func setControl(s *State, x0, x1, y int, v uint8) {
	for x := x0; x < x1; x++ {
		s.Planes.Control[resource.Index(x, y)] = v
	}
}

func TestCanBeHereWater(t *testing.T) {
	s := newTestState(t)
	ego := place(s, 0, 0, 10, 100)
	ego.StayOnWater = true
	setControl(s, 10, 14, 100, 3)

	if !ego.CanBeHere() {
		t.Error("CanBeHere() = false over water, expected true")
	}
	if !s.Flags[FlagOnWater] {
		t.Error("on.water flag not published for ego")
	}

	s.Planes.Control[resource.Index(12, 100)] = 0
	if ego.CanBeHere() {
		t.Error("CanBeHere() = true over a block pixel, expected false")
	}

	setControl(s, 10, 14, 100, 3)
	ego.StayOnWater = false
	ego.StayOnLand = true
	if ego.CanBeHere() {
		t.Error("CanBeHere() = true for stay-on-land over water, expected false")
	}
}

func TestCanBeHereControlClasses(t *testing.T) {
	tests := []struct {
		name         string
		control      uint8
		ignoreBlocks bool
		want         bool
		special      bool
	}{
		{"block", 0, false, false, false},
		{"block ignoring blocks", 0, true, false, false},
		{"conditional", 1, false, false, false},
		{"conditional ignoring blocks", 1, true, true, false},
		{"special", 2, false, true, true},
		{"empty", resource.DefaultControl, false, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t)
			ego := place(s, 0, 0, 10, 100)
			ego.IgnoreBlocks = tc.ignoreBlocks
			setControl(s, 10, 14, 100, tc.control)
			if got := ego.CanBeHere(); got != tc.want {
				t.Errorf("CanBeHere() = %v, expected %v", got, tc.want)
			}
			if s.Flags[FlagHitSpecial] != tc.special {
				t.Errorf("hit.special = %v, expected %v", s.Flags[FlagHitSpecial], tc.special)
			}
		})
	}
}

func TestCanBeHerePriority15(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.FixedPriority = true
	o.Priority = 15
	setControl(s, 10, 14, 100, 0)
	if !o.CanBeHere() {
		t.Error("CanBeHere() = false for priority 15, expected true")
	}
}

func TestCollide(t *testing.T) {
	s := newTestState(t)
	a := place(s, 1, 0, 10, 100)
	b := place(s, 2, 0, 12, 100)

	if !a.Collide() || !b.Collide() {
		t.Error("overlapping objects on the same line did not collide both ways")
	}

	b.IgnoreObjects = true
	if a.Collide() || b.Collide() {
		t.Error("ignore-objects object took part in a collision")
	}

	b.IgnoreObjects = false
	b.Y, b.PrevY = 110, 110
	if a.Collide() {
		t.Error("objects on different lines collided")
	}

	// a crosses b's line between frames
	a.PrevY, a.Y = 105, 115
	if !a.Collide() {
		t.Error("crossing another object's line was not a collision")
	}

	b.X = 20
	if a.Collide() {
		t.Error("objects with disjoint baselines collided")
	}
}

func TestUpdatePositionMoves(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.Direction = 3
	o.StepSize = 2
	o.UpdatePosition()
	if o.X != 12 || o.Y != 100 {
		t.Errorf("position = (%d,%d), expected (12,100)", o.X, o.Y)
	}
	if o.PrevX != 10 || o.Stopped {
		t.Errorf("PrevX = %d Stopped = %v, expected 10 false", o.PrevX, o.Stopped)
	}
	if o.Priority != 9 {
		t.Errorf("Priority = %d, expected 9", o.Priority)
	}
}

func TestUpdatePositionStepTime(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.Direction = 3
	o.StepTime, o.StepTimeCount = 2, 2
	o.UpdatePosition()
	if o.X != 10 {
		t.Fatalf("moved before the step timer expired: X = %d", o.X)
	}
	o.UpdatePosition()
	if o.X != 11 || o.StepTimeCount != 2 {
		t.Errorf("X = %d StepTimeCount = %d, expected 11 2", o.X, o.StepTimeCount)
	}
}

func TestUpdatePositionEdges(t *testing.T) {
	t.Run("object hits right edge and ends move", func(t *testing.T) {
		s := newTestState(t)
		o := place(s, 3, 0, 150, 100)
		o.StartMoveTo(200, 100, 0, 40)
		o.UpdatePosition()
		for i := 0; i < 10 && s.Vars[VarObjEdge] == 0; i++ {
			o.UpdateDirection()
			o.UpdatePosition()
		}
		if o.X != MaxX+1-4 {
			t.Errorf("X = %d, expected %d", o.X, MaxX+1-4)
		}
		if s.Vars[VarObjHit] != 3 || s.Vars[VarObjEdge] != EdgeRight {
			t.Errorf("OBJHIT/OBJEDGE = %d/%d, expected 3/%d", s.Vars[VarObjHit], s.Vars[VarObjEdge], EdgeRight)
		}
		if !s.Flags[40] || o.Motion != MotionNormal {
			t.Error("edge hit did not complete the move")
		}
	})

	t.Run("ego stops at horizon", func(t *testing.T) {
		s := newTestState(t)
		ego := place(s, 0, 0, 50, DefaultHorizon+1)
		ego.Direction = 1
		ego.UpdatePosition()
		if ego.Y != DefaultHorizon+1 {
			t.Errorf("Y = %d, expected %d", ego.Y, DefaultHorizon+1)
		}
		if s.Vars[VarEgoEdge] != EdgeTop {
			t.Errorf("EGOEDGE = %d, expected %d", s.Vars[VarEgoEdge], EdgeTop)
		}
		if !ego.Stopped {
			t.Error("Stopped = false, expected true")
		}
	})

	t.Run("ignore horizon reaches top edge", func(t *testing.T) {
		s := newTestState(t)
		ego := place(s, 0, 0, 50, 1)
		ego.IgnoreHorizon = true
		ego.Direction = 1
		ego.UpdatePosition()
		if ego.Y != 1 || s.Vars[VarEgoEdge] != EdgeTop {
			t.Errorf("Y = %d EGOEDGE = %d, expected 1 %d", ego.Y, s.Vars[VarEgoEdge], EdgeTop)
		}
	})

	t.Run("bottom edge", func(t *testing.T) {
		s := newTestState(t)
		ego := place(s, 0, 0, 50, MaxY)
		ego.Direction = 5
		ego.UpdatePosition()
		if ego.Y != MaxY || s.Vars[VarEgoEdge] != EdgeBottom {
			t.Errorf("Y = %d EGOEDGE = %d, expected %d %d", ego.Y, s.Vars[VarEgoEdge], MaxY, EdgeBottom)
		}
	})
}

func TestUpdatePositionRollsBackOnBlock(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.Direction = 3
	setControl(s, 14, 15, 100, 0)
	o.UpdatePosition()
	if o.X != 10 || o.Y != 100 {
		t.Errorf("position = (%d,%d), expected rollback to (10,100)", o.X, o.Y)
	}
	if !o.Stopped {
		t.Error("Stopped = false after a refused move")
	}
}

func TestFindPositionSpiral(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 4, 50, 100)
	s.Planes.Control[resource.Index(50, 100)] = 0
	o.FindPosition()
	if o.X != 49 || o.Y != 100 {
		t.Errorf("first leg = (%d,%d), expected (49,100)", o.X, o.Y)
	}

	o.X = 50
	s.Planes.Control[resource.Index(49, 100)] = 0
	o.FindPosition()
	if o.X != 49 || o.Y != 101 {
		t.Errorf("second leg = (%d,%d), expected (49,101)", o.X, o.Y)
	}

	o.X, o.Y = 50, 100
	s.Planes.Control[resource.Index(49, 101)] = 0
	s.Planes.Control[resource.Index(50, 101)] = 0
	o.FindPosition()
	if o.X != 51 || o.Y != 101 {
		t.Errorf("third leg = (%d,%d), expected (51,101)", o.X, o.Y)
	}
}

func TestFindPositionBelowHorizon(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 50, 10)
	o.FindPosition()
	if o.Y != DefaultHorizon+1 {
		t.Errorf("Y = %d, expected %d", o.Y, DefaultHorizon+1)
	}
}
