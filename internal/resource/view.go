package resource

import "fmt"

// View is a decoded animation resource: a set of loops (one per orientation),
// each an ordered list of cels.
type View struct {
	Loops       []Loop
	Description string
}

// Loop is one orientation of a view.
type Loop struct {
	Cels []Cel
}

// Cel is a single bitmap frame.
type Cel struct {
	Width       int
	Height      int
	Transparent uint8

	// Mirrored cels are stored once and drawn right-to-left in every loop
	// other than MirrorLoop.
	Mirrored   bool
	MirrorLoop int

	Pixels []uint8 // row-major palette indices, Width*Height
}

// Pixel returns the colour at (x, y) of the cel, reading right-to-left when
// flip is set.
func (c *Cel) Pixel(x, y int, flip bool) uint8 {
	if flip {
		x = c.Width - 1 - x
	}
	return c.Pixels[y*c.Width+x]
}

// Loop returns loop n, or nil when out of range.
func (v *View) Loop(n int) *Loop {
	if v == nil || n < 0 || n >= len(v.Loops) {
		return nil
	}
	return &v.Loops[n]
}

// Cel returns cel n, or nil when out of range.
func (l *Loop) Cel(n int) *Cel {
	if l == nil || n < 0 || n >= len(l.Cels) {
		return nil
	}
	return &l.Cels[n]
}

// DecodeView decodes a raw VIEW resource.
func DecodeView(data []byte) (*View, error) {
	rd := func(pos int) (int, error) {
		if pos < 0 || pos >= len(data) {
			return 0, fmt.Errorf("resource: view offset %d out of range", pos)
		}
		return int(data[pos]), nil
	}
	rdWord := func(pos int) (int, error) {
		lo, err := rd(pos)
		if err != nil {
			return 0, err
		}
		hi, err := rd(pos + 1)
		if err != nil {
			return 0, err
		}
		return lo | hi<<8, nil
	}

	numLoops, err := rd(2)
	if err != nil {
		return nil, err
	}
	descOffset, err := rdWord(3)
	if err != nil {
		return nil, err
	}

	v := &View{Loops: make([]Loop, numLoops)}
	for i := 0; i < numLoops; i++ {
		loopOffset, err := rdWord(5 + i*2)
		if err != nil {
			return nil, err
		}
		numCels, err := rd(loopOffset)
		if err != nil {
			return nil, err
		}
		cels := make([]Cel, numCels)
		for j := 0; j < numCels; j++ {
			celOffset, err := rdWord(loopOffset + 1 + j*2)
			if err != nil {
				return nil, err
			}
			if err := decodeCel(data, loopOffset+celOffset, i, &cels[j]); err != nil {
				return nil, err
			}
		}
		v.Loops[i].Cels = cels
	}

	if descOffset > 0 && descOffset < len(data) {
		end := descOffset
		for end < len(data) && data[end] != 0 {
			end++
		}
		v.Description = string(data[descOffset:end])
	}
	return v, nil
}

func decodeCel(data []byte, pos, loop int, c *Cel) error {
	if pos+3 > len(data) {
		return fmt.Errorf("resource: cel header at %d out of range", pos)
	}
	c.Width = int(data[pos])
	c.Height = int(data[pos+1])
	flags := data[pos+2]
	c.Transparent = flags & 0x0F
	c.MirrorLoop = int(flags>>4) & 7
	c.Mirrored = flags&0x80 != 0 && c.MirrorLoop != loop

	c.Pixels = make([]uint8, c.Width*c.Height)
	fill(c.Pixels, c.Transparent)

	pos += 3
	x, y := 0, 0
	for y < c.Height {
		if pos >= len(data) {
			return fmt.Errorf("resource: cel data truncated")
		}
		chunk := data[pos]
		pos++
		if chunk == 0 {
			x = 0
			y++
			continue
		}
		colour, run := chunk>>4, int(chunk&0x0F)
		for k := 0; k < run && x < c.Width; k++ {
			c.Pixels[y*c.Width+x] = colour
			x++
		}
	}
	return nil
}
