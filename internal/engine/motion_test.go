package engine

import "testing"

func TestCompass(t *testing.T) {
	for d := 0; d <= 8; d++ {
		dx, dy := Compass(d)
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
			t.Errorf("Compass(%d) = (%d,%d), components outside [-1,1]", d, dx, dy)
		}
	}
	if dx, dy := Compass(0); dx != 0 || dy != 0 {
		t.Errorf("Compass(0) = (%d,%d), expected (0,0)", dx, dy)
	}
	if dx, dy := Compass(1); dx != 0 || dy != -1 {
		t.Errorf("Compass(1) = (%d,%d), expected (0,-1)", dx, dy)
	}
}

func TestDirectionIndex(t *testing.T) {
	tests := []struct {
		d    int
		want int
	}{
		{-10, 0}, {-5, 0}, {-4, 1}, {0, 1}, {4, 1}, {5, 2}, {10, 2},
	}
	for _, tc := range tests {
		if got := DirectionIndex(tc.d, 5); got != tc.want {
			t.Errorf("DirectionIndex(%d, 5) = %d, expected %d", tc.d, got, tc.want)
		}
	}
	if got := DirectionFromIndex(0, 1); got != 1 {
		t.Errorf("DirectionFromIndex(0, 1) = %d, expected 1", got)
	}
}

func TestMoveDirection(t *testing.T) {
	tests := []struct {
		name           string
		ox, oy, nx, ny int
		want           int
	}{
		{"aligned", 50, 50, 52, 48, 0},
		{"up", 50, 50, 50, 10, 1},
		{"up right", 50, 50, 90, 10, 2},
		{"right", 50, 50, 90, 50, 3},
		{"down right", 50, 50, 90, 90, 4},
		{"down", 50, 50, 50, 90, 5},
		{"down left", 50, 50, 10, 90, 6},
		{"left", 50, 50, 10, 50, 7},
		{"up left", 50, 50, 10, 10, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MoveDirection(tc.ox, tc.oy, tc.nx, tc.ny, 5); got != tc.want {
				t.Errorf("MoveDirection() = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestWander(t *testing.T) {
	s := newTestState(t)
	ego := place(s, 0, 0, 50, 100)
	ego.StartWander()
	if s.UserControl {
		t.Error("StartWander() on ego kept user control")
	}

	for i := 0; i < 20; i++ {
		ego.Params[0] = 0
		ego.UpdateDirection()
		if ego.Direction < 0 || ego.Direction > 8 {
			t.Fatalf("Direction = %d, expected [0,8]", ego.Direction)
		}
		if int(s.Vars[VarEgoDir]) != ego.Direction {
			t.Fatalf("EGODIR = %d, expected %d", s.Vars[VarEgoDir], ego.Direction)
		}
		if ego.Params[0] < MinDist || ego.Params[0] > MaxDist {
			t.Fatalf("distance = %d, expected [%d,%d]", ego.Params[0], MinDist, MaxDist)
		}
	}

	ego.Params[0] = 10
	dir := ego.Direction
	ego.UpdateDirection()
	if ego.Params[0] != 9 || ego.Direction != dir {
		t.Errorf("mid-run distance/direction = %d/%d, expected 9/%d", ego.Params[0], ego.Direction, dir)
	}
}

func TestFollowArrival(t *testing.T) {
	s := newTestState(t)
	place(s, 0, 0, 12, 100)
	o := place(s, 1, 0, 10, 100)
	o.StartFollow(5, 20)
	o.UpdateDirection()
	if !s.Flags[20] {
		t.Error("completion flag not set on arrival")
	}
	if o.Motion != MotionNormal || o.Direction != 0 {
		t.Errorf("motion/direction = %d/%d, expected normal/0", o.Motion, o.Direction)
	}
}

func TestFollowSteersAndRecovers(t *testing.T) {
	s := newTestState(t)
	place(s, 0, 0, 100, 100)
	o := place(s, 1, 0, 10, 100)
	o.StartFollow(0, 21)
	if o.Params[0] != o.StepSize {
		t.Errorf("arrival distance = %d, expected step size %d", o.Params[0], o.StepSize)
	}

	o.UpdateDirection()
	if o.Direction != 3 {
		t.Fatalf("Direction = %d, expected 3 (right)", o.Direction)
	}

	o.Stopped = true
	o.UpdateDirection()
	if o.Direction < 1 || o.Direction > 8 {
		t.Errorf("Direction = %d, expected [1,8]", o.Direction)
	}
	// maxDist = (|12-102| + 0)/2 + 1 = 46
	if o.Params[2] < o.StepSize || o.Params[2] >= 46 {
		t.Errorf("run length = %d, expected [%d,46)", o.Params[2], o.StepSize)
	}

	o.Stopped = false
	o.Params[2] = 3
	dir := o.Direction
	o.StepSize = 2
	o.UpdateDirection()
	if o.Params[2] != 1 || o.Direction != dir {
		t.Errorf("run = %d direction = %d, expected 1 and %d", o.Params[2], o.Direction, dir)
	}
	o.UpdateDirection()
	if o.Params[2] != 0 {
		t.Errorf("run = %d, expected clamp to 0", o.Params[2])
	}
}

func TestMoveTo(t *testing.T) {
	t.Run("arrives immediately", func(t *testing.T) {
		s := newTestState(t)
		ego := place(s, 0, 0, 50, 100)
		ego.StartMoveTo(50, 100, 3, 30)
		if !s.Flags[30] {
			t.Error("completion flag not set")
		}
		if ego.StepSize != 1 {
			t.Errorf("StepSize = %d, expected restored 1", ego.StepSize)
		}
		if !s.UserControl || s.Vars[VarEgoDir] != 0 || ego.Motion != MotionNormal {
			t.Error("ego did not regain control after arrival")
		}
	})

	t.Run("heads toward target", func(t *testing.T) {
		s := newTestState(t)
		ego := place(s, 0, 0, 50, 100)
		ego.StartMoveTo(80, 100, 0, 31)
		if ego.Direction != 3 || s.Vars[VarEgoDir] != 3 {
			t.Errorf("Direction = %d EGODIR = %d, expected 3", ego.Direction, s.Vars[VarEgoDir])
		}
		if s.UserControl || s.Flags[31] {
			t.Error("move started but control/flag already released")
		}
	})
}

func TestCheckBlock(t *testing.T) {
	tests := []struct {
		name    string
		x, dir  int
		blocked bool
	}{
		{"entering block", 16, 3, true},
		{"moving away", 15, 7, false},
		{"on boundary is outside", 20, 7, false},
		{"inside staying inside", 30, 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t)
			s.SetBlock(20, 90, 40, 110)
			o := place(s, 1, 0, tc.x, 100)
			o.StepSize = 5
			o.Direction = tc.dir
			o.UpdateDirection()
			if o.Blocked != tc.blocked {
				t.Errorf("Blocked = %v, expected %v", o.Blocked, tc.blocked)
			}
			if tc.blocked && o.Direction != 0 {
				t.Errorf("Direction = %d, expected 0", o.Direction)
			}
		})
	}
}

func TestUpdateDirectionRequiresStepStart(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 50, 100)
	o.StartWander()
	o.StepTimeCount = 2
	o.Params[0] = 0
	o.UpdateDirection()
	if o.Params[0] != 0 {
		t.Error("UpdateDirection() ran mid-step")
	}
}
