package schema

import "fmt"

// RGB is a color in 8-bit channels.
type RGB struct {
	Red   int
	Green int
	Blue  int
}

// Color is a member of the fixed palette of the graphing API.
type Color int

// Palette members in enumeration order. The order matters: nearest-color
// lookups resolve ties to the member declared first.
const (
	ColorLightRed Color = iota
	ColorRed
	ColorDarkRed
	ColorLightOrange
	ColorOrange
	ColorDarkOrange
	ColorLightYellow
	ColorYellow
	ColorDarkYellow
	ColorLightGreen
	ColorGreen
	ColorDarkGreen
	ColorLightBlue
	ColorBlue
	ColorDarkBlue
	ColorLightCyan
	ColorCyan
	ColorDarkCyan
	ColorLightPurple
	ColorPurple
	ColorDarkPurple
	ColorLightPink
	ColorPink
	ColorDarkPink
	ColorLightBrown
	ColorBrown
	ColorDarkBrown
	ColorLightGray
	ColorGray
	ColorDarkGray
	ColorBlack
	ColorWhite
)

type paletteEntry struct {
	name string
	rgb  RGB
}

var palette = [...]paletteEntry{
	ColorLightRed:    {"LIGHT_RED", RGB{255, 112, 112}},
	ColorRed:         {"RED", RGB{255, 41, 41}},
	ColorDarkRed:     {"DARK_RED", RGB{164, 0, 0}},
	ColorLightOrange: {"LIGHT_ORANGE", RGB{255, 150, 100}},
	ColorOrange:      {"ORANGE", RGB{255, 110, 33}},
	ColorDarkOrange:  {"DARK_ORANGE", RGB{180, 70, 16}},
	ColorLightYellow: {"LIGHT_YELLOW", RGB{255, 255, 120}},
	ColorYellow:      {"YELLOW", RGB{245, 245, 0}},
	ColorDarkYellow:  {"DARK_YELLOW", RGB{170, 170, 0}},
	ColorLightGreen:  {"LIGHT_GREEN", RGB{165, 255, 85}},
	ColorGreen:       {"GREEN", RGB{55, 250, 55}},
	ColorDarkGreen:   {"DARK_GREEN", RGB{40, 150, 40}},
	ColorLightBlue:   {"LIGHT_BLUE", RGB{135, 206, 250}},
	ColorBlue:        {"BLUE", RGB{30, 144, 255}},
	ColorDarkBlue:    {"DARK_BLUE", RGB{0, 0, 200}},
	ColorLightCyan:   {"LIGHT_CYAN", RGB{150, 255, 255}},
	ColorCyan:        {"CYAN", RGB{30, 230, 230}},
	ColorDarkCyan:    {"DARK_CYAN", RGB{0, 160, 160}},
	ColorLightPurple: {"LIGHT_PURPLE", RGB{220, 160, 255}},
	ColorPurple:      {"PURPLE", RGB{180, 65, 240}},
	ColorDarkPurple:  {"DARK_PURPLE", RGB{120, 0, 160}},
	ColorLightPink:   {"LIGHT_PINK", RGB{255, 160, 240}},
	ColorPink:        {"PINK", RGB{255, 100, 255}},
	ColorDarkPink:    {"DARK_PINK", RGB{210, 0, 210}},
	ColorLightBrown:  {"LIGHT_BROWN", RGB{230, 180, 140}},
	ColorBrown:       {"BROWN", RGB{191, 133, 72}},
	ColorDarkBrown:   {"DARK_BROWN", RGB{124, 62, 2}},
	ColorLightGray:   {"LIGHT_GRAY", RGB{200, 200, 200}},
	ColorGray:        {"GRAY", RGB{164, 164, 164}},
	ColorDarkGray:    {"DARK_GRAY", RGB{121, 121, 121}},
	ColorBlack:       {"BLACK", RGB{0, 0, 0}},
	ColorWhite:       {"WHITE", RGB{255, 255, 255}},
}

// Colors returns every palette member in enumeration order.
func Colors() []Color {
	colors := make([]Color, len(palette))
	for i := range palette {
		colors[i] = Color(i)
	}
	return colors
}

// Valid reports whether c is a palette member.
func (c Color) Valid() bool {
	return c >= 0 && int(c) < len(palette)
}

// Name returns the enumerant name, e.g. "LIGHT_RED".
func (c Color) Name() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return palette[c].name
}

// RGB returns the canonical RGB value of the palette member.
func (c Color) RGB() RGB {
	if !c.Valid() {
		return RGB{}
	}
	return palette[c].rgb
}

func (c Color) String() string {
	return c.Name()
}
