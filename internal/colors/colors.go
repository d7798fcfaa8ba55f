// Package colors converts legacy color notations to RGB and snaps them onto
// the palette of the graphing API.
package colors

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/steveyegge/graphmig/internal/schema"
)

type hsv struct {
	h, s, v float64
}

// Legacy color wheel, hue in [0, 1].
var wheel = map[string]hsv{
	"11": {0.775, 1, 1},
	"12": {0.8, 1, 1},
	"13": {0.83, 1, 1},
	"14": {0.05, 1, 1},
	"15": {0.08, 1, 1},
	"16": {0.105, 1, 1},
	// yellow area
	"21": {0.13, 1, 1},
	"22": {0.14, 1, 1},
	"23": {0.155, 1, 1},
	"24": {0.185, 1, 1},
	"25": {0.21, 1, 1},
	"26": {0.25, 1, 1},
	// green area
	"31": {0.45, 1, 1},
	"32": {0.5, 1, 1},
	"33": {0.515, 1, 1},
	"34": {0.53, 1, 1},
	"35": {0.55, 1, 1},
	"36": {0.57, 1, 1},
	// blue area
	"41": {0.59, 1, 1},
	"42": {0.62, 1, 1},
	"43": {0.66, 1, 1},
	"44": {0.71, 1, 1},
	"45": {0.73, 1, 1},
	"46": {0.75, 1, 1},
	// special colors
	"51": {0, 0, 0.5},
	"52": {0.067, 0.7, 0.5},
	"53": {0.083, 0.8, 0.55},
}

// FromHex parses "#RRGGBB".
func FromHex(hexstr string) (schema.RGB, error) {
	if !strings.HasPrefix(hexstr, "#") {
		hexstr = "#" + hexstr
	}
	if len(hexstr) != 7 {
		return schema.RGB{}, fmt.Errorf("invalid hex color %q", hexstr)
	}
	c, err := colorful.Hex(hexstr)
	if err != nil {
		return schema.RGB{}, fmt.Errorf("invalid hex color %q: %w", hexstr, err)
	}
	r, g, b := c.RGB255()
	return schema.RGB{Red: int(r), Green: int(g), Blue: int(b)}, nil
}

// FromWheel resolves "<wheel-id>/<nuance>" references such as "14/a".
// Nuance "b" darkens yellow and green hues and desaturates all others.
func FromWheel(ref string) (schema.RGB, error) {
	name, nuance, ok := strings.Cut(ref, "/")
	if !ok {
		return schema.RGB{}, fmt.Errorf("invalid color wheel reference %q", ref)
	}
	c, ok := wheel[name]
	if !ok {
		return schema.RGB{}, fmt.Errorf("unknown color wheel entry %q", name)
	}
	if nuance == "b" {
		if name[0] == '2' || name[0] == '3' {
			c.v *= 0.8
		} else {
			c.s *= 0.6
		}
	}
	return toRGB(hsvToColor(c)), nil
}

// hsvToColor splits the hue into six sectors the way the legacy tool did.
// colorful.Hsv works on degrees and differs in the last bit for some wheel
// entries, which changes the truncated channel.
func hsvToColor(c hsv) colorful.Color {
	if c.s == 0 {
		return colorful.Color{R: c.v, G: c.v, B: c.v}
	}
	i := int(c.h * 6)
	f := c.h*6 - float64(i)
	p := c.v * (1 - c.s)
	q := c.v * (1 - c.s*f)
	t := c.v * (1 - c.s*(1-f))
	switch i % 6 {
	case 0:
		return colorful.Color{R: c.v, G: t, B: p}
	case 1:
		return colorful.Color{R: q, G: c.v, B: p}
	case 2:
		return colorful.Color{R: p, G: c.v, B: t}
	case 3:
		return colorful.Color{R: p, G: q, B: c.v}
	case 4:
		return colorful.Color{R: t, G: p, B: c.v}
	default:
		return colorful.Color{R: c.v, G: p, B: q}
	}
}

// FromLegacy accepts either notation.
func FromLegacy(legacy string) (schema.RGB, error) {
	if strings.HasPrefix(legacy, "#") {
		return FromHex(legacy)
	}
	return FromWheel(legacy)
}

// toRGB truncates channels the way the legacy tool did.
func toRGB(c colorful.Color) schema.RGB {
	return schema.RGB{
		Red:   int(c.R * 255),
		Green: int(c.G * 255),
		Blue:  int(c.B * 255),
	}
}

// Nearest returns the palette color closest to rgb by Euclidean distance.
// Ties go to the color enumerated first.
func Nearest(rgb schema.RGB) schema.Color {
	best := schema.ColorLightRed
	bestDistance := -1
	for _, c := range schema.Colors() {
		d := squaredDistance(rgb, c.RGB())
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// Squared distances order the same as distances and stay exact.
func squaredDistance(a, b schema.RGB) int {
	dr := a.Red - b.Red
	dg := a.Green - b.Green
	db := a.Blue - b.Blue
	return dr*dr + dg*dg + db*db
}

// Parse converts a legacy color to the nearest palette color.
func Parse(legacy string) (schema.Color, error) {
	rgb, err := FromLegacy(legacy)
	if err != nil {
		return 0, err
	}
	return Nearest(rgb), nil
}
