package engine

import (
	"testing"

	"github.com/vovakirdan/tui-agi/internal/resource"
)

func TestAdvanceCel(t *testing.T) {
	tests := []struct {
		name  string
		cycle CycleType
		start int
		want  []int
	}{
		{"normal wraps", CycleNormal, 1, []int{2, 0, 1}},
		{"reverse wraps", CycleReverse, 1, []int{0, 2, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t)
			o := place(s, 1, 1, 50, 100)
			o.CycleType = tc.cycle
			o.SetCel(tc.start)
			for i, want := range tc.want {
				o.AdvanceCel()
				if o.Cel != want {
					t.Fatalf("step %d: Cel = %d, expected %d", i, o.Cel, want)
				}
			}
		})
	}
}

func TestEndLoop(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 1, 50, 100)
	s.Flags[50] = true
	o.StartEndLoop(50)
	if s.Flags[50] {
		t.Fatal("StartEndLoop() did not clear the flag")
	}

	o.AdvanceCel()
	if o.Cel != 0 {
		t.Fatalf("first advance moved to cel %d, expected it swallowed", o.Cel)
	}
	o.AdvanceCel()
	if o.Cel != 1 || s.Flags[50] {
		t.Fatalf("Cel = %d flag = %v, expected 1 false", o.Cel, s.Flags[50])
	}
	o.AdvanceCel()
	if o.Cel != 2 || !s.Flags[50] {
		t.Errorf("Cel = %d flag = %v, expected 2 true", o.Cel, s.Flags[50])
	}
	if o.Cycle || o.CycleType != CycleNormal {
		t.Error("cycling continued after the last cel")
	}
}

func TestReverseLoop(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 1, 50, 100)
	o.SetCel(2)
	o.StartReverseLoop(51)
	o.AdvanceCel()
	o.AdvanceCel()
	if o.Cel != 1 || s.Flags[51] {
		t.Fatalf("Cel = %d flag = %v, expected 1 false", o.Cel, s.Flags[51])
	}
	o.AdvanceCel()
	if o.Cel != 0 || !s.Flags[51] || o.Cycle {
		t.Errorf("Cel = %d flag = %v cycle = %v, expected 0 true false", o.Cel, s.Flags[51], o.Cycle)
	}
}

func TestUpdateLoopAndCel(t *testing.T) {
	tests := []struct {
		name   string
		gameID string
		view   int
		dir    int
		want   int
	}{
		{"four loops up", "", 2, 1, 3},
		{"four loops down", "", 2, 5, 2},
		{"four loops left", "", 2, 7, 1},
		{"four loops stopped keeps loop", "", 2, 0, 0},
		{"five loops keep loop", "", 3, 7, 0},
		{"five loops in KQ4", "KQ4", 3, 7, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(t)
			s.GameID = tc.gameID
			o := place(s, 1, tc.view, 50, 100)
			o.Cycle = false
			o.Direction = tc.dir
			o.UpdateLoopAndCel()
			if o.Loop != tc.want {
				t.Errorf("Loop = %d, expected %d", o.Loop, tc.want)
			}
		})
	}

	t.Run("fixed loop", func(t *testing.T) {
		s := newTestState(t)
		o := place(s, 1, 2, 50, 100)
		o.FixedLoop = true
		o.Direction = 1
		o.UpdateLoopAndCel()
		if o.Loop != 0 {
			t.Errorf("Loop = %d, expected 0", o.Loop)
		}
	})
}

func TestCycleTime(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 1, 50, 100)
	o.CycleTime, o.CycleTimeCount = 2, 2
	o.UpdateLoopAndCel()
	if o.Cel != 0 {
		t.Fatalf("Cel = %d, expected 0 before the cycle timer expires", o.Cel)
	}
	o.UpdateLoopAndCel()
	if o.Cel != 1 || o.CycleTimeCount != 2 {
		t.Errorf("Cel = %d CycleTimeCount = %d, expected 1 2", o.Cel, o.CycleTimeCount)
	}
}

func TestDrawAndRestore(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.Priority = 9
	s.Planes.Priority[resource.Index(11, 100)] = 12

	o.Draw()
	tests := []struct {
		x, y     int
		visual   uint8
		priority uint8
	}{
		{10, 100, 5, 9},
		{13, 99, 5, 9},
		{11, 100, resource.DefaultVisual, 12},
		{14, 100, resource.DefaultVisual, resource.DefaultPriority},
		{10, 98, resource.DefaultVisual, resource.DefaultPriority},
	}
	for _, tc := range tests {
		i := resource.Index(tc.x, tc.y)
		if s.Planes.Visual[i] != tc.visual || s.Planes.Priority[i] != tc.priority {
			t.Errorf("(%d,%d) = %d/%d, expected %d/%d", tc.x, tc.y,
				s.Planes.Visual[i], s.Planes.Priority[i], tc.visual, tc.priority)
		}
	}

	o.RestoreBackground()
	if v := s.Planes.Visual[resource.Index(10, 100)]; v != resource.DefaultVisual {
		t.Errorf("restored visual = %d, expected %d", v, resource.DefaultVisual)
	}
	if p := s.Planes.Priority[resource.Index(11, 100)]; p != 12 {
		t.Errorf("restored priority = %d, expected 12", p)
	}
}

func TestDrawMirrored(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 6, 40, 100)
	o.Priority = 9
	o.Draw()
	if a, b := s.Planes.Visual[resource.Index(40, 100)], s.Planes.Visual[resource.Index(41, 100)]; a != 2 || b != 1 {
		t.Errorf("mirrored row = %d %d, expected 2 1", a, b)
	}
}

func TestDrawOrder(t *testing.T) {
	s := newTestState(t)
	o1 := place(s, 1, 0, 10, 140)
	o1.FixedPriority = true
	o1.Priority = 8
	o2 := place(s, 2, 0, 30, 90)
	o2.Priority = 8
	o3 := place(s, 3, 0, 50, 150)
	o3.Priority = 6
	o4 := place(s, 4, 0, 70, 90)
	o4.Priority = 8
	s.Objects[5].Animate()

	order := s.DrawOrder()
	want := []int{3, 2, 4, 1}
	if len(order) != len(want) {
		t.Fatalf("DrawOrder() has %d objects, expected %d", len(order), len(want))
	}
	for i, o := range order {
		if o.Number != want[i] {
			t.Errorf("DrawOrder()[%d] = %d, expected %d", i, o.Number, want[i])
		}
	}
}

func TestShowErase(t *testing.T) {
	s := newTestState(t)
	o := place(s, 1, 0, 10, 100)
	o.Drawn = false

	o.Show()
	if !o.Drawn || o.Priority != 9 {
		t.Fatalf("Show() drawn = %v priority = %d, expected true 9", o.Drawn, o.Priority)
	}
	if v := s.Planes.Visual[resource.Index(10, 100)]; v != 5 {
		t.Errorf("visual after Show() = %d, expected 5", v)
	}

	o.Erase()
	if o.Drawn {
		t.Error("Erase() left object drawn")
	}
	if v := s.Planes.Visual[resource.Index(10, 100)]; v != resource.DefaultVisual {
		t.Errorf("visual after Erase() = %d, expected %d", v, resource.DefaultVisual)
	}
}

func TestAddToPicture(t *testing.T) {
	s := newTestState(t)
	if err := s.AddToPicture(0, 0, 0, 20, 65, 0, 1); err != nil {
		t.Fatalf("AddToPicture() error = %v", err)
	}
	for y := 64; y <= 65; y++ {
		for x := 20; x <= 23; x++ {
			i := resource.Index(x, y)
			if s.Planes.Visual[i] != 5 || s.Planes.Priority[i] != 6 {
				t.Errorf("(%d,%d) = %d/%d, expected 5/6", x, y, s.Planes.Visual[i], s.Planes.Priority[i])
			}
			if s.Planes.Control[i] != 1 {
				t.Errorf("control (%d,%d) = %d, expected 1", x, y, s.Planes.Control[i])
			}
		}
	}

	if err := s.AddToPicture(99, 0, 0, 20, 65, 0, 1); err == nil {
		t.Error("AddToPicture() with a missing view error = nil")
	}
}

func TestAddToPictureBoxClampedToBand(t *testing.T) {
	s := newTestState(t)
	// band 6 starts at y 60, so a box at y 61 is two lines tall
	if err := s.AddToPicture(5, 0, 0, 30, 61, 0, 0); err != nil {
		t.Fatalf("AddToPicture() error = %v", err)
	}
	tests := []struct {
		x, y int
		want uint8
	}{
		{30, 61, 0}, {31, 61, 0}, {32, 61, 0},
		{30, 60, 0}, {31, 60, 0}, {32, 60, 0},
		{30, 59, resource.DefaultControl},
	}
	for _, tc := range tests {
		if got := s.Planes.Control[resource.Index(tc.x, tc.y)]; got != tc.want {
			t.Errorf("control (%d,%d) = %d, expected %d", tc.x, tc.y, got, tc.want)
		}
	}
	if v := s.Planes.Visual[resource.Index(30, 58)]; v != 7 {
		t.Errorf("visual (30,58) = %d, expected 7", v)
	}
}
