package core

// Color is an EGA palette index, 0-15. The picture planes, view cels and
// text attributes all use it.
type Color uint8

// The 16 EGA colours.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

var egaHex = [16]string{
	"#000000", "#0000AA", "#00AA00", "#00AAAA",
	"#AA0000", "#AA00AA", "#AA5500", "#AAAAAA",
	"#555555", "#5555FF", "#55FF55", "#55FFFF",
	"#FF5555", "#FF55FF", "#FFFF55", "#FFFFFF",
}

// Hex returns the colour as #RRGGBB. Indices above 15 wrap.
func (c Color) Hex() string {
	return egaHex[c&0x0F]
}

// TextAttr splits a text attribute byte into foreground and background.
// In graphics mode only black and white backgrounds exist: any non-zero
// background becomes white.
func TextAttr(fg, bg int, graphics bool) (Color, Color) {
	f, b := Color(fg&0x0F), Color(bg&0x0F)
	if graphics && b != Black {
		b = White
	}
	return f, b
}
