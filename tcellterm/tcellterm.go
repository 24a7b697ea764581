// Package tcellterm draws a gridterm window onto a tcell terminal screen,
// one grid cell per terminal cell, and maps terminal mouse events back to
// gridterm mouse events.
//
// Terminals cannot blit atlas tiles, so tile references are drawn as the
// TilePlaceholder rune in the tile's attribute colour.
package tcellterm

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/gridterm"
)

// TilePlaceholder stands in for atlas tiles.
const TilePlaceholder = '#'

// Source is what the renderer draws from. *gridterm.Window implements it.
type Source interface {
	gridterm.CellSource
	Config() gridterm.TermConfig
}

// Renderer draws a Source onto a tcell screen at a cell offset.
type Renderer struct {
	screen tcell.Screen
	colors gridterm.ColorTable

	// OffsetX and OffsetY place grid cell (0, 0) on the screen.
	OffsetX, OffsetY int

	painted bool
}

// New creates a renderer for screen.
func New(screen tcell.Screen, colors gridterm.ColorTable) *Renderer {
	return &Renderer{screen: screen, colors: colors}
}

// Invalidate forces the next Draw to repaint every cell.
func (r *Renderer) Invalidate() {
	r.painted = false
}

// Draw repaints the dirty cells of src (everything on the first call),
// positions the terminal cursor, clears the dirty region, and shows the
// screen.
func (r *Renderer) Draw(src Source, dirty *gridterm.DirtyRegion) {
	cols, rows := src.GridSize()
	if !r.painted {
		dirty.MarkAll(cols, rows)
		r.painted = true
	}
	if !dirty.Empty() {
		dirty.Clip(cols, rows)
		x0, y0, x1, y1 := dirty.Bounds()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				mainc, style := r.cell(src.EntityAt(x, y))
				r.screen.SetContent(r.OffsetX+x, r.OffsetY+y, mainc, nil, style)
			}
		}
		dirty.Clear()
	}

	if rect, ok := src.CursorRect(); ok {
		x0, y0, x1, _ := src.Config().Mapper().CellSpan(rect)
		if x1 > x0 {
			r.screen.ShowCursor(r.OffsetX+x0, r.OffsetY+y0)
		} else {
			r.screen.HideCursor()
		}
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

// cell picks the rune and style of one grid cell: the feature glyph over a
// background from the terrain, or the terrain glyph alone.
func (r *Renderer) cell(e gridterm.Entity) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	switch {
	case e.IsNull():
		return ' ', style
	case !e.FeatureIsNull():
		bg := e.Attr
		if !e.TerrainIsNull() && gridterm.BackgroundMode(e.Attr) == gridterm.BackgroundBlack {
			bg = e.TerrainAttr
		}
		style = style.Foreground(r.fg(e.Attr)).Background(r.bg(bg))
		return glyph(e.Char, e.Attr), style
	default:
		style = style.Foreground(r.fg(e.TerrainAttr)).Background(r.bg(e.TerrainAttr))
		return glyph(e.TerrainChar, e.TerrainAttr), style
	}
}

// glyph returns a rune that occupies exactly one terminal cell.
func glyph(c rune, attr int) rune {
	if gridterm.IsGraphicAttr(attr) {
		return TilePlaceholder
	}
	if runewidth.RuneWidth(c) != 1 {
		return '?'
	}
	return c
}

func (r *Renderer) fg(attr int) tcell.Color {
	return toTcell(r.colors.Foreground(attr))
}

func (r *Renderer) bg(attr int) tcell.Color {
	if gridterm.IsGraphicAttr(attr) {
		return tcell.ColorBlack
	}
	return toTcell(r.colors.Background(attr))
}

// toTcell converts a colour to a 24-bit tcell colour.
func toTcell(c gridterm.Color) tcell.Color {
	cr, cg, cb := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// MouseEvent maps a terminal mouse event with the left or right button down
// to a cell of src. ok is false for other events and for presses outside the
// grid or inside its clickable inset.
func (r *Renderer) MouseEvent(src Source, ev *tcell.EventMouse) (gridterm.MouseEvent, bool) {
	var button gridterm.MouseButton
	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		button = gridterm.ButtonLeft
	case ev.Buttons()&tcell.Button2 != 0:
		button = gridterm.ButtonRight
	default:
		return gridterm.MouseEvent{}, false
	}

	cfg := src.Config()
	cells := cfg.Mapper()
	cells.TileW, cells.TileH = 1, 1
	cells.Origin = gridterm.Vec2{X: float64(r.OffsetX), Y: float64(r.OffsetY)}

	x, y := ev.Position()
	col, row, ok := cells.PixelToCell(float64(x), float64(y))
	if !ok {
		return gridterm.MouseEvent{}, false
	}
	return gridterm.MouseEvent{
		Term:   cfg.Index,
		Col:    col,
		Row:    row,
		X:      float64(x),
		Y:      float64(y),
		Button: button,
		Mods:   convertMod(ev.Modifiers()),
	}, true
}

func convertMod(m tcell.ModMask) gridterm.KeyModifiers {
	var mods gridterm.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= gridterm.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= gridterm.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= gridterm.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= gridterm.ModMeta
	}
	return mods
}

// Resize matches the window's grid to the screen size minus the offset.
func (r *Renderer) Resize(w *gridterm.Window) {
	sw, sh := r.screen.Size()
	w.Resize(sh-r.OffsetY, sw-r.OffsetX)
	r.Invalidate()
}
