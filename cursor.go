package gridterm

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cursorPulse fades the cursor outline toward the wipe colour and back.
type cursorPulse struct {
	tween  *gween.Tween
	low    float32
	period float32
	fading bool // true while going from 1 to low
}

// Default pulse parameters.
const (
	defaultPulseLow    = 0.35
	defaultPulsePeriod = 1.2 // seconds for a full fade out and back
)

// SetCursorPulse enables or disables the cursor fade. period is the time of
// one full cycle in seconds; low is the smallest share of cursor colour left
// in the mix. Out-of-range values use the defaults.
func (w *Window) SetCursorPulse(enabled bool, period, low float64) {
	if !enabled {
		w.pulse = nil
		w.surface.setCursorAlpha(1)
		w.markCursor()
		return
	}
	if period <= 0 {
		period = defaultPulsePeriod
	}
	if low <= 0 || low >= 1 {
		low = defaultPulseLow
	}
	p := &cursorPulse{low: float32(low), period: float32(period)}
	p.start(1, p.low)
	p.fading = true
	w.pulse = p
}

func (p *cursorPulse) start(from, to float32) {
	p.tween = gween.New(from, to, p.period/2, ease.InOutSine)
}

// update advances the tween and returns the current mix.
func (p *cursorPulse) update(dt float32) float64 {
	val, done := p.tween.Update(dt)
	if done {
		if p.fading {
			p.start(p.low, 1)
		} else {
			p.start(1, p.low)
		}
		p.fading = !p.fading
	}
	return float64(val)
}

// updatePulse advances the pulse and repaints the cursor cells when its
// mix changed.
func (w *Window) updatePulse(dt float64) {
	if w.pulse == nil {
		return
	}
	if _, ok := w.grid.Cursor(); !ok {
		return
	}
	a := w.pulse.update(float32(dt))
	if a == w.surface.cursorAlpha {
		return
	}
	w.surface.setCursorAlpha(a)
	w.markCursor()
}

// markCursor dirties the cells under the cursor.
func (w *Window) markCursor() {
	r, ok := w.grid.Cursor()
	if !ok {
		return
	}
	x0, y0, x1, y1 := w.cfg.Mapper().CellSpan(r)
	w.dirty.Mark(x0, y0, x1-x0, y1-y0)
}
