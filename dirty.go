package gridterm

// DirtyRegion accumulates the cells that changed since the last render pass
// as a minimal bounding rectangle in cell coordinates. The zero value is an
// empty region.
type DirtyRegion struct {
	x0, y0 int // inclusive
	x1, y1 int // exclusive
	set    bool
}

// Mark grows the region to cover the w×h block of cells starting at (x, y).
// Empty blocks are ignored.
func (d *DirtyRegion) Mark(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if !d.set {
		d.x0, d.y0 = x, y
		d.x1, d.y1 = x+w, y+h
		d.set = true
		return
	}
	d.x0 = min(d.x0, x)
	d.y0 = min(d.y0, y)
	d.x1 = max(d.x1, x+w)
	d.y1 = max(d.y1, y+h)
}

// MarkAll covers a whole grid of the given size.
func (d *DirtyRegion) MarkAll(columns, rows int) {
	d.Mark(0, 0, columns, rows)
}

// Empty reports whether nothing has been marked.
func (d *DirtyRegion) Empty() bool {
	return !d.set
}

// Bounds returns the covered cells as [x0, x1) × [y0, y1).
// An empty region returns all zeros.
func (d *DirtyRegion) Bounds() (x0, y0, x1, y1 int) {
	if !d.set {
		return 0, 0, 0, 0
	}
	return d.x0, d.y0, d.x1, d.y1
}

// Contains reports whether cell (x, y) is covered.
func (d *DirtyRegion) Contains(x, y int) bool {
	return d.set && x >= d.x0 && x < d.x1 && y >= d.y0 && y < d.y1
}

// Clip restricts the region to a grid of the given size.
func (d *DirtyRegion) Clip(columns, rows int) {
	if !d.set {
		return
	}
	d.x0 = max(d.x0, 0)
	d.y0 = max(d.y0, 0)
	d.x1 = min(d.x1, columns)
	d.y1 = min(d.y1, rows)
	if d.x0 >= d.x1 || d.y0 >= d.y1 {
		d.Clear()
	}
}

// Clear empties the region.
func (d *DirtyRegion) Clear() {
	*d = DirtyRegion{}
}
