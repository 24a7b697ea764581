package gridterm

import "testing"

func TestWindow_CursorPulseMarksCursor(t *testing.T) {
	w := newTestWindow(t)
	w.HandleCursor(UpdateInfo{X: 2, Y: 1, Count: 2})
	w.Surface().Render(w, w.Dirty())

	w.SetCursorPulse(true, 1, 0.5)
	w.updatePulse(0.25)
	if !w.NeedsDisplay() {
		t.Fatal("pulse should dirty the cursor cells")
	}
	if a := w.Surface().cursorAlpha; a >= 1 || a < 0.5 {
		t.Errorf("cursorAlpha = %v, want in [0.5, 1)", a)
	}
	x0, y0, x1, y1 := w.Dirty().Bounds()
	if x0 != 2 || y0 != 1 || x1 != 4 || y1 != 2 {
		t.Errorf("dirty = (%d,%d)-(%d,%d), want (2,1)-(4,2)", x0, y0, x1, y1)
	}

	cmds := w.Surface().Render(w, w.Dirty())
	last := cmds[len(cmds)-1]
	if last.Type != CommandCursor {
		t.Fatalf("last command = %+v, want the cursor", last)
	}
	want := Blend(w.Surface().WipeColor, w.Surface().CursorColor, w.Surface().cursorAlpha)
	if last.Color != want {
		t.Errorf("cursor color = %+v, want %+v", last.Color, want)
	}
	if last.Color == w.Surface().CursorColor {
		t.Error("pulsed cursor should be tinted toward the wipe colour")
	}
}

func TestWindow_CursorPulseReverses(t *testing.T) {
	w := newTestWindow(t)
	w.HandleCursor(UpdateInfo{X: 0, Y: 0, Count: 1})
	w.SetCursorPulse(true, 1, 0.5)

	w.updatePulse(0.5)
	if a := w.Surface().cursorAlpha; a > 0.51 {
		t.Errorf("alpha after half a period = %v, want 0.5", a)
	}
	w.updatePulse(0.5)
	if a := w.Surface().cursorAlpha; a < 0.99 {
		t.Errorf("alpha after a full period = %v, want 1", a)
	}
}

func TestWindow_CursorPulseIdleWithoutCursor(t *testing.T) {
	w := newTestWindow(t)
	w.SetCursorPulse(true, 0, 0)
	w.updatePulse(0.3)
	if w.NeedsDisplay() {
		t.Error("pulse without a cursor should not dirty anything")
	}
	if w.pulse.period != defaultPulsePeriod || w.pulse.low != defaultPulseLow {
		t.Errorf("pulse = %+v, want defaults", w.pulse)
	}
}

func TestWindow_CursorPulseDisable(t *testing.T) {
	w := newTestWindow(t)
	w.HandleCursor(UpdateInfo{X: 0, Y: 0, Count: 1})
	w.SetCursorPulse(true, 1, 0.5)
	w.updatePulse(0.2)
	w.SetCursorPulse(false, 0, 0)
	if w.pulse != nil || w.Surface().cursorAlpha != 1 {
		t.Error("disabling should restore a solid cursor")
	}
}
