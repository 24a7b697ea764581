package gridterm

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseEvent is a pointer press mapped to a grid cell.
type MouseEvent struct {
	Term     int // index of the terminal that was clicked
	Col, Row int
	X, Y     float64 // pointer position in pixels
	Button   MouseButton
	Mods     KeyModifiers
}

// Code returns the key-equivalent the engine expects for a mouse press: the
// button in the low nibble and the modifiers above it.
func (e MouseEvent) Code() int {
	return int(e.Button) | int(e.Mods)<<4
}

// MouseSink receives accepted pointer presses.
type MouseSink interface {
	OnMouse(MouseEvent)
}

// MouseSinkFunc adapts a function to MouseSink.
type MouseSinkFunc func(MouseEvent)

// OnMouse calls f(e).
func (f MouseSinkFunc) OnMouse(e MouseEvent) {
	f(e)
}

// SetMouseSink sets the receiver of accepted presses. nil drops them.
func (w *Window) SetMouseSink(sink MouseSink) {
	w.sink = sink
}

// PointerEvent maps a press at pixel (x, y) to a cell. ok is false when the
// press is outside the grid or inside the clickable inset, or when no
// supported button is given.
func (w *Window) PointerEvent(x, y float64, button MouseButton, mods KeyModifiers) (MouseEvent, bool) {
	if button != ButtonLeft && button != ButtonRight {
		return MouseEvent{}, false
	}
	col, row, ok := w.cfg.Mapper().PixelToCell(x, y)
	if !ok {
		return MouseEvent{}, false
	}
	return MouseEvent{
		Term:   w.cfg.Index,
		Col:    col,
		Row:    row,
		X:      x,
		Y:      y,
		Button: button,
		Mods:   mods,
	}, true
}

// press maps a press and delivers it to the sink.
func (w *Window) press(x, y float64, button MouseButton, mods KeyModifiers) bool {
	e, ok := w.PointerEvent(x, y, button, mods)
	if !ok {
		return false
	}
	debugf("term %d: mouse %d at (%d, %d) code %#x", e.Term, e.Button, e.Col, e.Row, e.Code())
	if w.sink != nil {
		w.sink.OnMouse(e)
	}
	return true
}

// readModifiers returns the current modifier key state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// ProcessInput reads the mouse and delivers new left or right presses.
// Called from Update; call it directly when driving the window manually.
func (w *Window) ProcessInput() {
	var button MouseButton
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		button = ButtonLeft
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		button = ButtonRight
	default:
		return
	}
	mx, my := ebiten.CursorPosition()
	w.press(float64(mx), float64(my), button, readModifiers())
}
