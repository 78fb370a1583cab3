package core

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(40, 25)

	if s.Width() != 40 {
		t.Errorf("Width() = %d, expected 40", s.Width())
	}
	if s.Height() != 25 {
		t.Errorf("Height() = %d, expected 25", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("New screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, Cell{Rune: 'X', Fg: Red, Bg: Blue})
	if got := s.GetCell(5, 5); got != (Cell{Rune: 'X', Fg: Red, Bg: Blue}) {
		t.Errorf("GetCell(5, 5) = %+v, expected red X on blue", got)
	}

	// Set keeps colours.
	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Fg != Red || got.Bg != Blue {
		t.Errorf("after Set GetCell(5, 5) = %+v, expected red Y on blue", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetCell(0, -1, Cell{Rune: 'A'})
	s.SetCell(0, 100, Cell{Rune: 'A'})

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenPixels(t *testing.T) {
	s := NewScreen(4, 4)
	s.Pixels(1, 1, Green, Brown)

	got := s.GetCell(1, 1)
	if got.Rune != HalfBlock || got.Fg != Green || got.Bg != Brown {
		t.Errorf("Pixels() cell = %+v, expected green over brown half block", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 1, "héllo world", Black, White)

	if row := s.Row(1); row != "  héllo wo" {
		t.Errorf("Row(1) = %q, expected clipped text", row)
	}
	if c := s.GetCell(3, 1); c.Rune != 'é' || c.Fg != Black || c.Bg != White {
		t.Errorf("GetCell(3, 1) = %+v, expected black é on white", c)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	fill := Cell{Rune: '#', Fg: White, Bg: Red}
	s.DrawRect(NewRect(2, 2, 3, 3), fill)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			if got := s.GetCell(x, y) == fill; got != inside {
				t.Errorf("cell (%d, %d) filled = %v, expected %v", x, y, got, inside)
			}
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), Black, White)

	expected := "┌───┐\n│   │\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", got, expected)
	}
	if c := s.GetCell(0, 0); c.Fg != Black || c.Bg != White {
		t.Errorf("corner colours = %d on %d, expected black on white", c.Fg, c.Bg)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'A')
	s.Set(4, 4, 'B')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize() = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'A' {
		t.Error("Resize() should preserve content inside the new bounds")
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("Resize() should blank cells that were cut off")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", White, Black)
	s.DrawText(0, 1, "de", White, Black)

	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q, expected %q", got, "abc\nde ")
	}
	if got := s.Row(5); got != strings.Repeat(" ", 3) {
		t.Errorf("Row(5) = %q, expected spaces", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"wraps at space", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"explicit newline", "a\nb", 10, []string{"a", "b"}},
		{"long word is cut", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"collapses spaces", "a   b", 10, []string{"a b"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapText(tc.text, tc.width)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("WrapText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}
