// Package resource holds the contracts the interpreter uses to reach game
// resources (views, pictures, sounds, words, inventory items) together with
// an in-memory library and a reader for the LOGDIR/VOL container format.
package resource

// Picture area dimensions.
const (
	Width  = 160
	Height = 168
)

// Default plane fill values for an empty picture.
const (
	DefaultVisual   = 15
	DefaultPriority = 4
	DefaultControl  = 4
)

// Planes is the shared pixel state of the picture area. The rasterizer
// initialises it when a picture is drawn; the entity engine composites into
// Visual and Priority every frame and reads Control for placement tests.
// All three are row-major, Width*Height bytes.
type Planes struct {
	Visual   []uint8 // palette indices 0-15
	Priority []uint8 // priority bands 4-15
	Control  []uint8 // control classes 0-3, DefaultControl where none
}

// NewPlanes allocates cleared planes.
func NewPlanes() *Planes {
	p := &Planes{
		Visual:   make([]uint8, Width*Height),
		Priority: make([]uint8, Width*Height),
		Control:  make([]uint8, Width*Height),
	}
	p.Clear()
	return p
}

// Clear resets every plane to its empty-picture value.
func (p *Planes) Clear() {
	fill(p.Visual, DefaultVisual)
	fill(p.Priority, DefaultPriority)
	fill(p.Control, DefaultControl)
}

// CopyFrom overwrites p with the contents of src.
func (p *Planes) CopyFrom(src *Planes) {
	copy(p.Visual, src.Visual)
	copy(p.Priority, src.Priority)
	copy(p.Control, src.Control)
}

// Clone returns a deep copy of p.
func (p *Planes) Clone() *Planes {
	c := &Planes{
		Visual:   make([]uint8, len(p.Visual)),
		Priority: make([]uint8, len(p.Priority)),
		Control:  make([]uint8, len(p.Control)),
	}
	c.CopyFrom(p)
	return c
}

// In reports whether (x, y) lies inside the picture area.
func In(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Index returns the plane offset of (x, y). The caller must check In first.
func Index(x, y int) int {
	return y*Width + x
}

func fill(b []uint8, v uint8) {
	for i := range b {
		b[i] = v
	}
}
