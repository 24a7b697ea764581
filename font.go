package gridterm

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFontName names the built-in monospaced font.
const DefaultFontName = "Go Mono"

// DefaultFontSize is the point size used when no preference exists.
const DefaultFontSize = 13.0

// FontDescriptor identifies a font by name and size. It is what gets
// persisted; a Font is resolved from it through a FontRegistry.
type FontDescriptor struct {
	Name string
	Size float64
}

// FontMetrics are the measurements that size a terminal cell.
type FontMetrics struct {
	PreferredAdvance float64 // widest advance over printable ASCII
	Ascent           float64
	Descent          float64
	LineGap          float64
}

// TileSize returns the whole-pixel cell size implied by the metrics.
func (m FontMetrics) TileSize() (w, h float64) {
	w = math.Ceil(m.PreferredAdvance)
	h = math.Ceil(m.Ascent + m.Descent + m.LineGap)
	if w <= 0 {
		w = FallbackTileWidth
	}
	if h <= 0 {
		h = FallbackTileHeight
	}
	return w, h
}

// Font is a loaded TrueType face with its metrics computed once.
type Font struct {
	desc    FontDescriptor
	face    *text.GoTextFace
	metrics FontMetrics
}

// NewFont parses TTF/OTF data at the given size.
func NewFont(name string, ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("gridterm: failed to parse font %q: %w", name, err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	return &Font{
		desc:    FontDescriptor{Name: name, Size: size},
		face:    face,
		metrics: measureFace(face),
	}, nil
}

// measureFace computes the cell metrics of a face.
func measureFace(face *text.GoTextFace) FontMetrics {
	m := face.Metrics()
	var adv float64
	for r := rune(0x20); r < 0x7F; r++ {
		adv = max(adv, text.Advance(string(r), face))
	}
	return FontMetrics{
		PreferredAdvance: adv,
		Ascent:           m.HAscent,
		Descent:          m.HDescent,
		LineGap:          m.HLineGap,
	}
}

// Descriptor returns the name and size the font was loaded with.
func (f *Font) Descriptor() FontDescriptor {
	return f.desc
}

// Metrics returns the precomputed cell metrics.
func (f *Font) Metrics() FontMetrics {
	return f.metrics
}

// Face returns the underlying GoTextFace for text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// FontRegistry resolves font descriptors to loaded fonts. It always knows
// the built-in Go Mono font.
type FontRegistry struct {
	data   map[string][]byte
	loaded map[FontDescriptor]*Font
}

// NewFontRegistry creates a registry holding the built-in font.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{
		data:   map[string][]byte{DefaultFontName: gomono.TTF},
		loaded: make(map[FontDescriptor]*Font),
	}
}

// Register adds TTF/OTF data under a name.
func (r *FontRegistry) Register(name string, ttfData []byte) {
	r.data[name] = ttfData
}

// Load returns the font for a descriptor. Unknown names fall back to the
// built-in font at the requested size.
func (r *FontRegistry) Load(desc FontDescriptor) (*Font, error) {
	if desc.Size <= 0 {
		desc.Size = DefaultFontSize
	}
	data, ok := r.data[desc.Name]
	if !ok {
		debugf("font %q not registered, using %s", desc.Name, DefaultFontName)
		desc.Name = DefaultFontName
		data = r.data[DefaultFontName]
	}
	if f, ok := r.loaded[desc]; ok {
		return f, nil
	}
	f, err := NewFont(desc.Name, data, desc.Size)
	if err != nil {
		return nil, err
	}
	r.loaded[desc] = f
	return f, nil
}

// Default returns the built-in font at the default size.
func (r *FontRegistry) Default() (*Font, error) {
	return r.Load(FontDescriptor{Name: DefaultFontName, Size: DefaultFontSize})
}
