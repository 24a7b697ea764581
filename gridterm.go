package gridterm

import (
	"errors"
	"fmt"
	"image/color"
	"log"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default glyph tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default cell background.
var ColorBlack = Color{0, 0, 0, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in pixel space. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MouseButton is the button index reported to the engine's mouse-press hook.
type MouseButton uint8

const (
	ButtonNone  MouseButton = iota
	ButtonLeft              // primary (left) mouse button
	ButtonRight             // secondary (right) mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command key
)

// Fallback geometry used when no font or preference is available.
const (
	FallbackTileWidth  = 8.0
	FallbackTileHeight = 16.0
	FallbackColumns    = 80
	FallbackRows       = 24
)

// Errors returned by the grid, dispatcher, and asset loaders.
var (
	// ErrOutOfRange reports direct grid access outside the grid extent.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrAssetLoad reports a tileset that could not be loaded. Windows fall
	// back to glyph rendering.
	ErrAssetLoad = errors.New("tileset load failed")
	// ErrGeometryMismatch reports a declared tile size that does not fit the
	// atlas image. It is always reported wrapped together with ErrAssetLoad.
	ErrGeometryMismatch = errors.New("tile size does not fit atlas")
	// ErrBadUpdate reports a malformed update operation.
	ErrBadUpdate = errors.New("malformed update")
)

// assetError wraps a cause so that errors.Is matches both ErrAssetLoad and
// the cause.
type assetError struct {
	cause error
	msg   string
}

func (e *assetError) Error() string {
	return fmt.Sprintf("gridterm: %s: %v", e.msg, e.cause)
}

func (e *assetError) Is(target error) bool {
	return target == ErrAssetLoad
}

func (e *assetError) Unwrap() error {
	return e.cause
}

// globalDebug enables assertions and stderr diagnostics.
var globalDebug bool

// SetDebugMode turns debug diagnostics on or off. In debug mode out-of-range
// grid access panics and every render pass logs its statistics.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf logs only in debug mode.
func debugf(format string, args ...any) {
	if globalDebug {
		log.Printf("gridterm: "+format, args...)
	}
}
