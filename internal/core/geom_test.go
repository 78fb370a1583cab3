package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	c := r.Centered(10, 5)
	if c != NewRect(10, 15, 10, 5) {
		t.Errorf("Centered(10, 5) = %+v, expected {10 15 10 5}", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min() should return the smaller value")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max() should return the larger value")
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{Black, "#000000"},
		{Brown, "#AA5500"},
		{Yellow, "#FFFF55"},
		{White, "#FFFFFF"},
		{Color(0x1E), "#FFFF55"}, // wraps
	}
	for _, tc := range tests {
		if got := tc.c.Hex(); got != tc.expected {
			t.Errorf("Color(%d).Hex() = %s, expected %s", tc.c, got, tc.expected)
		}
	}
}

func TestTextAttr(t *testing.T) {
	tests := []struct {
		name     string
		fg, bg   int
		graphics bool
		wantFg   Color
		wantBg   Color
	}{
		{"text mode keeps background", 14, 1, false, Yellow, Blue},
		{"graphics forces white", 0, 1, true, Black, White},
		{"graphics keeps black", 15, 0, true, White, Black},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fg, bg := TextAttr(tc.fg, tc.bg, tc.graphics)
			if fg != tc.wantFg || bg != tc.wantBg {
				t.Errorf("TextAttr(%d, %d, %v) = %d, %d, expected %d, %d",
					tc.fg, tc.bg, tc.graphics, fg, bg, tc.wantFg, tc.wantBg)
			}
		})
	}
}
