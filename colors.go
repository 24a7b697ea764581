package gridterm

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// MaxColors is the number of entries in a colour table. Attribute values
// above it encode a background mode: attr / MaxColors.
const MaxColors = 32

// Background modes encoded in the attribute.
const (
	BackgroundBlack = 0 // plain black background
	BackgroundSame  = 1 // background in the foreground colour
	BackgroundDark  = 2 // background in the shade colour
)

// ColorShade is the table index used for BackgroundDark.
const ColorShade = 28

// defaultPalette is the engine's stock colour table.
var defaultPalette = [...]string{
	"#000000", "#ffffff", "#808080", "#ff8000", "#c00000", "#008040", "#0040ff", "#804000",
	"#606060", "#c0c0c0", "#ff00ff", "#ffff00", "#ff4040", "#00ff00", "#00ffff", "#c08040",
	"#900090", "#9020ff", "#00a0a0", "#6c6c30", "#ffff90", "#ff00a0", "#20ffdc", "#b8a8ff",
	"#ff8080", "#b4b400", "#a0c0d0", "#00b0ff", "#282828",
}

// ColorTable maps attribute colour indices to colours. Value type; pass it
// explicitly to whatever draws.
type ColorTable struct {
	entries [MaxColors]Color
}

// DefaultColorTable returns the stock palette.
func DefaultColorTable() ColorTable {
	t, err := ParseColorTable(defaultPalette[:])
	if err != nil {
		panic(err)
	}
	return t
}

// ParseColorTable builds a table from "#rrggbb" strings. Missing entries are
// black; extra entries are an error.
func ParseColorTable(hex []string) (ColorTable, error) {
	var t ColorTable
	if len(hex) > MaxColors {
		return t, fmt.Errorf("gridterm: colour table has %d entries, max %d", len(hex), MaxColors)
	}
	for i := range t.entries {
		t.entries[i] = ColorBlack
	}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return t, fmt.Errorf("gridterm: colour %d: %w", i, err)
		}
		t.entries[i] = fromColorful(c)
	}
	return t, nil
}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// Set replaces one entry. Out-of-range indices are ignored.
func (t *ColorTable) Set(index int, c Color) {
	if index >= 0 && index < MaxColors {
		t.entries[index] = c
	}
}

// Index returns the colour at a table index, or BadColor if out of range.
func (t ColorTable) Index(index int) Color {
	if index < 0 || index >= MaxColors {
		return BadColor()
	}
	return t.entries[index]
}

// Foreground returns the glyph colour for an attribute.
func (t ColorTable) Foreground(attr int) Color {
	return t.Index((attr & AttrValueMask) % MaxColors)
}

// Background returns the cell background colour for an attribute.
func (t ColorTable) Background(attr int) Color {
	switch BackgroundMode(attr) {
	case BackgroundSame:
		return t.Foreground(attr)
	case BackgroundDark:
		return t.Index(ColorShade)
	default:
		return ColorBlack
	}
}

// BackgroundMode extracts the background mode from an attribute.
func BackgroundMode(attr int) int {
	return (attr & AttrValueMask) / MaxColors
}

// Blend mixes a toward b in CIE L*a*b* space; t=0 returns a.
func Blend(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	out := fromColorful(ca.BlendLab(cb, clamp01(t)))
	out.A = a.A + (b.A-a.A)*clamp01(t)
	return out
}

// BadColor flags an attribute with no table entry.
func BadColor() Color {
	return Color{R: 1, G: 0, B: 1, A: 1}
}

// CursorColor is the default cursor outline.
func CursorColor() Color {
	return Color{R: 1, G: 1, B: 0, A: 1}
}

// WipeColor is the default fill for wiped cells.
func WipeColor() Color {
	return ColorBlack
}
