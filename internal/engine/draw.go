package engine

import "github.com/vovakirdan/tui-agi/internal/resource"

// Draw composites the current cel into the state planes. The covered
// pixels are saved first so RestoreBackground can undo the draw. A pixel is
// drawn only when it is not transparent and the object's priority is at
// least the plane priority there.
func (o *Object) Draw() {
	c := o.celRes()
	if c == nil {
		o.save = saveArea{}
		return
	}
	p := o.state.Planes
	top := o.Y - c.Height + 1
	flip := c.Mirrored && c.MirrorLoop != o.Loop

	o.save = saveArea{
		valid:    true,
		x:        o.X,
		y:        o.Y,
		w:        c.Width,
		h:        c.Height,
		visual:   make([]uint8, c.Width*c.Height),
		priority: make([]uint8, c.Width*c.Height),
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			sx, sy := o.X+x, top+y
			if !resource.In(sx, sy) {
				continue
			}
			i := resource.Index(sx, sy)
			o.save.visual[y*c.Width+x] = p.Visual[i]
			o.save.priority[y*c.Width+x] = p.Priority[i]

			if o.Priority < int(p.Priority[i]) {
				continue
			}
			colour := c.Pixel(x, y, flip)
			if colour == c.Transparent {
				continue
			}
			p.Visual[i] = colour
			p.Priority[i] = uint8(o.Priority)
		}
	}
}

// RestoreBackground puts back the pixels saved by the last Draw.
func (o *Object) RestoreBackground() {
	if !o.save.valid {
		return
	}
	p := o.state.Planes
	sa := &o.save
	top := sa.y - sa.h + 1
	for y := 0; y < sa.h; y++ {
		for x := 0; x < sa.w; x++ {
			sx, sy := sa.x+x, top+y
			if !resource.In(sx, sy) {
				continue
			}
			i := resource.Index(sx, sy)
			p.Visual[i] = sa.visual[y*sa.w+x]
			p.Priority[i] = sa.priority[y*sa.w+x]
		}
	}
	sa.valid = false
}

// drawPermanent composites the cel into p without saving the background,
// then draws the control box when ControlBox is a control class (0-3).
func (o *Object) drawPermanent(p *resource.Planes) {
	c := o.celRes()
	if c == nil {
		return
	}
	top := o.Y - c.Height + 1
	flip := c.Mirrored && c.MirrorLoop != o.Loop

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			sx, sy := o.X+x, top+y
			if !resource.In(sx, sy) {
				continue
			}
			i := resource.Index(sx, sy)
			if o.Priority < int(p.Priority[i]) {
				continue
			}
			colour := c.Pixel(x, y, flip)
			if colour == c.Transparent {
				continue
			}
			p.Visual[i] = colour
			p.Priority[i] = uint8(o.Priority)
		}
	}

	if o.ControlBox > 3 {
		return
	}

	// The box is as tall as the object but no taller than the priority
	// band its baseline is in.
	s := o.state
	band := s.CalculatePriority(o.Y)
	bandHeight := 0
	for yy := o.Y; ; yy-- {
		bandHeight++
		if yy <= 0 || s.CalculatePriority(yy-1) != band {
			break
		}
	}
	height := c.Height
	if height > bandHeight {
		height = bandHeight
	}

	box := uint8(o.ControlBox)
	set := func(x, y int) {
		if resource.In(x, y) {
			p.Control[resource.Index(x, y)] = box
		}
	}
	for i := 0; i < c.Width; i++ {
		set(o.X+i, o.Y)
	}
	if height > 1 {
		for i := 1; i < height; i++ {
			set(o.X, o.Y-i)
			set(o.X+c.Width-1, o.Y-i)
		}
		for i := 1; i < c.Width-1; i++ {
			set(o.X+i, o.Y-(height-1))
		}
	}
}
