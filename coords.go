package gridterm

import "math"

// Inset is the number of cells excluded from pointer hit testing on each
// edge of the grid.
type Inset struct {
	Left, Top, Right, Bottom int
}

// MainTermInset is the clickable inset of the main terminal: the sidebar
// columns, the message line, and the status line do not accept clicks.
var MainTermInset = Inset{Left: 14, Top: 1, Right: 0, Bottom: 1}

// Mapper converts between pixel coordinates and grid cells.
type Mapper struct {
	TileW, TileH  float64
	Origin        Vec2 // pixel position of cell (0, 0)
	Columns, Rows int
	Inset         Inset
}

// integral reports whether both tile dimensions are whole pixels.
func (m Mapper) integral() bool {
	return m.TileW == math.Trunc(m.TileW) && m.TileH == math.Trunc(m.TileH)
}

// PixelToCell maps a pointer position to the cell under it. ok is false when
// the point is outside the grid or inside the clickable inset.
func (m Mapper) PixelToCell(px, py float64) (col, row int, ok bool) {
	if m.TileW <= 0 || m.TileH <= 0 {
		return 0, 0, false
	}
	lx := px - m.Origin.X
	ly := py - m.Origin.Y
	if lx < 0 || ly < 0 {
		return 0, 0, false
	}

	if m.integral() {
		col = int(lx) / int(m.TileW)
		row = int(ly) / int(m.TileH)
	} else {
		// Fractional tiles: hit testing works on whole pixels.
		col = int(math.Floor(math.Round(lx) / m.TileW))
		row = int(math.Floor(math.Round(ly) / m.TileH))
	}

	if col < m.Inset.Left || col >= m.Columns-m.Inset.Right ||
		row < m.Inset.Top || row >= m.Rows-m.Inset.Bottom {
		return 0, 0, false
	}
	return col, row, true
}

// CellOrigin returns the exact pixel origin of a cell.
func (m Mapper) CellOrigin(col, row int) (x, y float64) {
	return m.Origin.X + float64(col)*m.TileW, m.Origin.Y + float64(row)*m.TileH
}

// CellRect returns the pixel rectangle covering w×h cells from (col, row).
func (m Mapper) CellRect(col, row, w, h int) Rect {
	x, y := m.CellOrigin(col, row)
	return Rect{X: x, Y: y, Width: float64(w) * m.TileW, Height: float64(h) * m.TileH}
}

// CellSpan returns the cells touched by a pixel rectangle, clipped to the
// grid, as [x0, x1) × [y0, y1). An empty span has x0 == x1 or y0 == y1.
func (m Mapper) CellSpan(r Rect) (x0, y0, x1, y1 int) {
	if r.Empty() || m.TileW <= 0 || m.TileH <= 0 {
		return 0, 0, 0, 0
	}
	lx := r.X - m.Origin.X
	ly := r.Y - m.Origin.Y
	x0 = int(math.Floor(lx / m.TileW))
	y0 = int(math.Floor(ly / m.TileH))
	x1 = int(math.Ceil((lx + r.Width) / m.TileW))
	y1 = int(math.Ceil((ly + r.Height) / m.TileH))

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, m.Columns)
	y1 = min(y1, m.Rows)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0
	}
	return x0, y0, x1, y1
}
