package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-agi/internal/core"
	"github.com/vovakirdan/tui-agi/internal/interp"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

// Scales the picture can be drawn at. At scale 1 every picture pixel gets
// a terminal column and each cell stacks two pixel rows.
var scales = []int{1, 2, 4}

// ScaleFor returns the smallest scale whose frame fits a terminal of the
// given size.
func ScaleFor(width, height int) int {
	for _, s := range scales {
		w, h := resource.Width/s, resource.Height/(2*s)
		if w <= width && h+4 <= height {
			return s
		}
	}
	return scales[len(scales)-1]
}

// Frame keeps the last picture the interpreter presented. It implements
// interp.Presenter.
type Frame struct {
	planes  *resource.Planes
	present int
}

var _ interp.Presenter = (*Frame)(nil)

// NewFrame creates a frame showing an empty picture.
func NewFrame() *Frame {
	return &Frame{planes: resource.NewPlanes()}
}

// Present implements interp.Presenter.
func (f *Frame) Present(p *resource.Planes) {
	f.planes.CopyFrom(p)
	f.present++
}

// Presents returns how many frames were presented.
func (f *Frame) Presents() int { return f.present }

// Renderer composites a frame and the console into a cell buffer and
// styles it for the terminal.
type Renderer struct {
	scale  int
	screen *core.Screen
	lg     *lipgloss.Renderer
	styles map[colourPair]lipgloss.Style
}

// NewRenderer creates a renderer at the given picture scale. A nil lg
// uses the default lipgloss renderer for stdout.
func NewRenderer(scale int, lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	r := &Renderer{
		screen: core.NewScreen(1, 1),
		lg:     lg,
		styles: make(map[colourPair]lipgloss.Style),
	}
	r.SetScale(scale)
	return r
}

// Render composes and styles one frame.
func (r *Renderer) Render(f *Frame, c *Console) string {
	return r.RenderScreen(r.Compose(f, c))
}

// SetScale changes the picture scale. Unknown scales fall back to 2.
func (r *Renderer) SetScale(scale int) {
	switch scale {
	case 1, 2, 4:
		r.scale = scale
	default:
		r.scale = 2
	}
}

// Scale returns the picture scale.
func (r *Renderer) Scale() int { return r.scale }

// PictureSize returns the picture area size in cells.
func (r *Renderer) PictureSize() (int, int) {
	return resource.Width / r.scale, resource.Height / (2 * r.scale)
}

// Compose draws the frame and console and returns the cell buffer.
func (r *Renderer) Compose(f *Frame, c *Console) *core.Screen {
	if c.TextMode() {
		return r.composeText(c)
	}

	w, h := r.PictureSize()
	s := r.screen
	s.Resize(w, h+4)
	s.Clear()

	// Status line.
	if status := c.Status(); status != "" {
		s.DrawRect(core.NewRect(0, 0, w, 1), core.Cell{Rune: ' ', Fg: core.Black, Bg: core.White})
		s.DrawText(0, 0, status, core.Black, core.White)
	}

	// Picture.
	step := r.scale
	for y := 0; y < h; y++ {
		py := y * 2 * step
		for x := 0; x < w; x++ {
			px := x * step
			top := f.planes.Visual[resource.Index(px, py)]
			bottom := f.planes.Visual[resource.Index(px, py+step)]
			s.Pixels(x, 1+y, core.Color(top), core.Color(bottom))
		}
	}

	// Text written over and below the picture.
	for ty := 0; ty < TextRows; ty++ {
		for tx := 0; tx < TextCols; tx++ {
			cell := c.grid.GetCell(tx, ty)
			if cell.Rune == 0 {
				if ty <= inputRow-1 || cell.Bg == core.Black {
					continue
				}
				cell.Rune = ' '
			}
			s.SetCell(tx*w/TextCols, r.row(ty, h), cell)
		}
	}

	if c.input != "" {
		s.DrawText(0, r.row(inputRow, h), c.input+"_", core.White, core.Black)
	}

	if lines := c.Window(); lines != nil {
		area := core.NewRect(0, 1, w, h)
		drawWindow(s, lines, c.window.row, c.window.col, area, func(ty int) int { return r.row(ty, h) },
			func(tx int) int { return tx * w / TextCols })
	}
	return s
}

// row maps a text grid row to a buffer row.
func (r *Renderer) row(ty, pictureHeight int) int {
	switch {
	case ty < pictureTop:
		return statusRow
	case ty <= pictureBottom:
		return 1 + (ty-pictureTop)*pictureHeight/(pictureBottom-pictureTop+1)
	default:
		return 1 + pictureHeight + ty - inputRow
	}
}

func (r *Renderer) composeText(c *Console) *core.Screen {
	s := r.screen
	s.Resize(TextCols, TextRows)
	for ty := 0; ty < TextRows; ty++ {
		for tx := 0; tx < TextCols; tx++ {
			cell := c.grid.GetCell(tx, ty)
			if cell.Rune == 0 {
				cell.Rune = ' '
			}
			s.SetCell(tx, ty, cell)
		}
	}
	if c.input != "" {
		s.DrawText(0, inputRow, c.input+"_", c.fg, c.bg)
	}
	if lines := c.Window(); lines != nil {
		ident := func(v int) int { return v }
		drawWindow(s, lines, c.window.row, c.window.col, core.NewRect(0, 0, TextCols, TextRows), ident, ident)
	}
	return s
}

// drawWindow draws a boxed message. A negative row or column centres the
// box inside area.
func drawWindow(s *core.Screen, lines []string, row, col int, area core.Rect, mapRow, mapCol func(int) int) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	box := area.Centered(width+4, len(lines)+2)
	if row >= 0 {
		box.Y = mapRow(row)
	}
	if col >= 0 {
		box.X = mapCol(col)
	}
	box.X = core.Clamp(box.X, 0, core.Max(0, s.Width()-box.W))
	box.Y = core.Clamp(box.Y, 0, core.Max(0, s.Height()-box.H))

	s.DrawRect(box, core.Cell{Rune: ' ', Fg: core.Black, Bg: core.White})
	s.DrawBox(box, core.Red, core.White)
	for i, l := range lines {
		s.DrawText(box.X+2, box.Y+1+i, l, core.Black, core.White)
	}
}

type colourPair struct{ fg, bg core.Color }

func (r *Renderer) styleFor(fg, bg core.Color) lipgloss.Style {
	key := colourPair{fg, bg}
	if st, ok := r.styles[key]; ok {
		return st
	}
	st := r.lg.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	r.styles[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
