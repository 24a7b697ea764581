package gridterm

// syntheticClick is a queued pointer press in window pixel coordinates.
type syntheticClick struct {
	x, y   float64
	button MouseButton
	mods   KeyModifiers
}

// InjectClick queues a press at (x, y). It is delivered on the next Update
// instead of real mouse input, one event per frame.
func (w *Window) InjectClick(x, y float64, button MouseButton) {
	w.InjectClickMods(x, y, button, 0)
}

// InjectClickMods queues a press with modifier keys held.
func (w *Window) InjectClickMods(x, y float64, button MouseButton, mods KeyModifiers) {
	w.injectQueue = append(w.injectQueue, syntheticClick{x: x, y: y, button: button, mods: mods})
}

// InjectCellClick queues a press at the centre of a cell.
func (w *Window) InjectCellClick(col, row int, button MouseButton) {
	r := w.cfg.Mapper().CellRect(col, row, 1, 1)
	w.InjectClick(r.X+r.Width/2, r.Y+r.Height/2, button)
}

// PendingInjections returns the number of queued synthetic presses.
func (w *Window) PendingInjections() int {
	return len(w.injectQueue)
}

// processInjectedInput pops one queued press and delivers it. Returns true if
// an event was consumed, in which case real input is skipped this frame.
func (w *Window) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	evt := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]

	w.press(evt.x, evt.y, evt.button, evt.mods)
	return true
}
