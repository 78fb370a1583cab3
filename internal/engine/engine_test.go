package engine

import (
	"testing"

	"github.com/vovakirdan/tui-agi/internal/resource"
)

// solidView builds a view whose cels are w x h blocks of one colour with
// transparency 0.
func solidView(loops, cels, w, h int, colour uint8) *resource.View {
	v := &resource.View{Loops: make([]resource.Loop, loops)}
	for l := range v.Loops {
		v.Loops[l].Cels = make([]resource.Cel, cels)
		for c := range v.Loops[l].Cels {
			px := make([]uint8, w*h)
			for i := range px {
				px[i] = colour
			}
			v.Loops[l].Cels[c] = resource.Cel{Width: w, Height: h, Pixels: px}
		}
	}
	return v
}

func newTestState(t *testing.T) *State {
	t.Helper()
	lib := resource.NewLibrary()
	lib.Views[0] = solidView(1, 1, 4, 2, 5)
	lib.Views[1] = solidView(1, 3, 2, 2, 5)
	lib.Views[2] = solidView(4, 1, 2, 2, 5)
	lib.Views[3] = solidView(5, 1, 2, 2, 5)
	lib.Views[4] = solidView(1, 1, 1, 1, 5)
	lib.Views[5] = solidView(1, 1, 3, 4, 7)
	lib.Views[6] = &resource.View{Loops: []resource.Loop{{Cels: []resource.Cel{{
		Width: 2, Height: 1, Mirrored: true, MirrorLoop: 1, Pixels: []uint8{1, 2},
	}}}}}
	return New(lib, nil, Options{Seed: 1})
}

// place animates object n with view v at (x, y) and marks it drawn.
func place(s *State, n, v, x, y int) *Object {
	o := s.Objects[n]
	o.Animate()
	o.SetView(v)
	o.X, o.Y = x, y
	o.PrevX, o.PrevY = x, y
	o.Drawn = true
	o.Repositioned = false
	return o
}

func TestInit(t *testing.T) {
	s := newTestState(t)
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"monitor type", int(s.Vars[VarMonitorType]), 3},
		{"input length", int(s.Vars[VarInputLen]), 41},
		{"voices", int(s.Vars[VarNumVoices]), 3},
		{"animation interval", int(s.Vars[VarAnimationInt]), 2},
		{"memory left", int(s.Vars[VarMemLeft]), 255},
		{"horizon", s.Horizon, DefaultHorizon},
		{"priority base", s.PriorityBase, DefaultPriorityBase},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %d, expected %d", tc.name, tc.got, tc.want)
		}
	}
	if !s.Flags[FlagHasNoise] || !s.Flags[FlagInitLogics] || !s.Flags[FlagSoundOn] {
		t.Error("expected has.noise, init.logics and sound.on flags set")
	}
	if !s.UserControl || !s.GraphicsMode {
		t.Error("expected user control and graphics mode")
	}
	for i, o := range s.Objects {
		if o.Number != i {
			t.Fatalf("Objects[%d].Number = %d", i, o.Number)
		}
	}
}

func TestRoomResetKeepsView(t *testing.T) {
	s := newTestState(t)
	o := place(s, 3, 1, 20, 100)
	o.StepSize = 4
	s.RoomReset()
	if o.Drawn || o.Animated {
		t.Error("RoomReset() left object drawn or animated")
	}
	if o.View != 1 || o.X != 20 {
		t.Errorf("RoomReset() view/x = %d/%d, expected 1/20", o.View, o.X)
	}
	if o.StepSize != 1 {
		t.Errorf("StepSize = %d, expected 1", o.StepSize)
	}
}

func TestObjectBounds(t *testing.T) {
	s := newTestState(t)
	if _, err := s.Object(256); err == nil {
		t.Error("Object(256) error = nil, expected RuntimeBoundsError")
	}
	if err := s.CheckString(24); err == nil {
		t.Error("CheckString(24) error = nil, expected RuntimeBoundsError")
	}
	if err := s.CheckController(49); err != nil {
		t.Errorf("CheckController(49) error = %v", err)
	}
}

func TestCalculatePriority(t *testing.T) {
	s := newTestState(t)
	tests := []struct {
		y    int
		want int
	}{
		{0, 4}, {47, 4}, {48, 5}, {59, 5}, {60, 6}, {155, 13}, {156, 14}, {167, 14},
	}
	for _, tc := range tests {
		if got := s.CalculatePriority(tc.y); got != tc.want {
			t.Errorf("CalculatePriority(%d) = %d, expected %d", tc.y, got, tc.want)
		}
	}

	bands := []struct {
		pri  int
		want int
	}{
		{4, 47}, {5, 59}, {8, 95}, {14, 167},
	}
	for _, tc := range bands {
		if got := s.BandStart(tc.pri); got != tc.want {
			t.Errorf("BandStart(%d) = %d, expected %d", tc.pri, got, tc.want)
		}
	}
}

func TestReposition(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 3, 100)
	o.Reposition(-5, 2)
	if o.X != 0 || o.Y != 102 {
		t.Errorf("Reposition() = (%d,%d), expected (0,102)", o.X, o.Y)
	}
	if !o.Repositioned {
		t.Error("Repositioned = false, expected true")
	}
}

func TestDistance(t *testing.T) {
	s := newTestState(t)
	a := place(s, 1, 0, 10, 100)
	b := place(s, 2, 0, 30, 110)
	if got := a.Distance(b); got != 30 {
		t.Errorf("Distance() = %d, expected 30", got)
	}
	b.Drawn = false
	if got := a.Distance(b); got != 255 {
		t.Errorf("Distance() = %d, expected 255", got)
	}
}

func TestSetCelPullsBackFromRightEdge(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 158, 100)
	o.SetCel(0)
	if o.X != MaxX-4 || !o.Repositioned {
		t.Errorf("SetCel() X = %d repositioned = %v, expected %d true", o.X, o.Repositioned, MaxX-4)
	}
}
