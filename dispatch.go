package gridterm

import "fmt"

// UpdateKind identifies an engine update operation.
type UpdateKind uint8

const (
	UpdateText   UpdateKind = iota // run of text glyphs
	UpdateTile                     // run of atlas tiles (graphic attributes)
	UpdateWipe                     // run of cells reset to null
	UpdateClear                    // whole grid reset
	UpdateCursor                   // cursor moved or hidden
)

// String returns the operation name used in logs.
func (k UpdateKind) String() string {
	switch k {
	case UpdateText:
		return "text"
	case UpdateTile:
		return "tile"
	case UpdateWipe:
		return "wipe"
	case UpdateClear:
		return "clear"
	case UpdateCursor:
		return "cursor"
	default:
		return fmt.Sprintf("UpdateKind(%d)", uint8(k))
	}
}

// Update is a single transient operation from the engine. Runs start at
// (X, Y) and cover Count cells to the right. Terrain slices are optional;
// feature slices are required for text and tile runs.
type Update struct {
	Kind  UpdateKind
	X, Y  int
	Count int

	FeatureChars []rune
	FeatureAttrs []int
	TerrainChars []rune
	TerrainAttrs []int

	// Cursor fields (UpdateCursor only). CursorValid false hides the cursor.
	Cursor      Rect
	CursorValid bool
}

// TextRun builds a text run from a string drawn in a single attribute.
func TextRun(x, y int, s string, attr int) Update {
	chars := []rune(s)
	attrs := make([]int, len(chars))
	for i := range attrs {
		attrs[i] = attr
	}
	return Update{Kind: UpdateText, X: x, Y: y, Count: len(chars), FeatureChars: chars, FeatureAttrs: attrs}
}

// TileRun builds a tile run from parallel feature slices and optional
// terrain slices.
func TileRun(x, y int, chars []rune, attrs []int, terrainChars []rune, terrainAttrs []int) Update {
	return Update{
		Kind: UpdateTile, X: x, Y: y, Count: len(chars),
		FeatureChars: chars, FeatureAttrs: attrs,
		TerrainChars: terrainChars, TerrainAttrs: terrainAttrs,
	}
}

// WipeRun builds a wipe of n cells, optionally repainting terrain.
func WipeRun(x, y, n int, terrainChars []rune, terrainAttrs []int) Update {
	return Update{Kind: UpdateWipe, X: x, Y: y, Count: n, TerrainChars: terrainChars, TerrainAttrs: terrainAttrs}
}

// Clear builds a whole-grid reset.
func Clear() Update {
	return Update{Kind: UpdateClear}
}

// CursorMove builds a cursor update to the given pixel rectangle.
func CursorMove(r Rect) Update {
	return Update{Kind: UpdateCursor, Cursor: r, CursorValid: true}
}

// CursorHide builds a cursor invalidation.
func CursorHide() Update {
	return Update{Kind: UpdateCursor}
}

// Dispatcher applies updates, in order, to one grid and accumulates the
// cells they touched into a dirty region.
type Dispatcher struct {
	grid   *Grid
	dirty  *DirtyRegion
	mapper Mapper
}

// NewDispatcher binds a dispatcher to a grid and a dirty region. The mapper
// converts cursor rectangles to cells.
func NewDispatcher(grid *Grid, dirty *DirtyRegion, mapper Mapper) *Dispatcher {
	return &Dispatcher{grid: grid, dirty: dirty, mapper: mapper}
}

// SetMapper replaces the pixel geometry after a resize or font change.
func (d *Dispatcher) SetMapper(m Mapper) {
	d.mapper = m
}

// Apply runs one update to completion. Parts of a run outside the grid are
// dropped without error: the engine may still be using the previous
// geometry while a resize is in flight.
func (d *Dispatcher) Apply(u Update) error {
	switch u.Kind {
	case UpdateText, UpdateTile:
		if u.FeatureChars == nil || u.FeatureAttrs == nil {
			return fmt.Errorf("gridterm: %s run at (%d, %d) without feature data: %w", u.Kind, u.X, u.Y, ErrBadUpdate)
		}
		if u.Count < 0 {
			return fmt.Errorf("gridterm: %s run with count %d: %w", u.Kind, u.Count, ErrBadUpdate)
		}
		d.applyRun(u)
	case UpdateWipe:
		if u.Count < 0 {
			return fmt.Errorf("gridterm: wipe run with count %d: %w", u.Count, ErrBadUpdate)
		}
		d.applyWipe(u)
	case UpdateClear:
		d.grid.Reset()
		d.dirty.MarkAll(d.grid.Columns(), d.grid.Rows())
	case UpdateCursor:
		d.applyCursor(u)
	default:
		return fmt.Errorf("gridterm: %s: %w", u.Kind, ErrBadUpdate)
	}
	return nil
}

// clip returns the in-bounds part [start, end) of a run of n cells from
// column x on row y, as offsets into the run.
func (d *Dispatcher) clip(x, y, n int) (start, end int) {
	if y < 0 || y >= d.grid.Rows() || n <= 0 {
		return 0, 0
	}
	start = max(0, -x)
	end = min(n, d.grid.Columns()-x)
	if start >= end {
		return 0, 0
	}
	return start, end
}

func (d *Dispatcher) applyRun(u Update) {
	n := min(u.Count, len(u.FeatureChars), len(u.FeatureAttrs))
	start, end := d.clip(u.X, u.Y, n)
	if start == end {
		debugf("%s run at (%d, %d) clipped away", u.Kind, u.X, u.Y)
		return
	}
	terrainN := min(len(u.TerrainChars), len(u.TerrainAttrs))

	for i := start; i < end; i++ {
		x := u.X + i
		e := d.grid.at(x, u.Y).withFeature(u.FeatureChars[i], u.FeatureAttrs[i])
		if i < terrainN {
			e = e.withTerrain(u.TerrainChars[i], u.TerrainAttrs[i])
		}
		d.grid.set(x, u.Y, e)
	}
	d.dirty.Mark(u.X+start, u.Y, end-start, 1)
}

func (d *Dispatcher) applyWipe(u Update) {
	start, end := d.clip(u.X, u.Y, u.Count)
	if start == end {
		return
	}
	terrainN := min(len(u.TerrainChars), len(u.TerrainAttrs))

	for i := start; i < end; i++ {
		x := u.X + i
		e := d.grid.at(x, u.Y).withFeature(0, 0)
		if i < terrainN {
			e = e.withTerrain(u.TerrainChars[i], u.TerrainAttrs[i])
		}
		d.grid.set(x, u.Y, e)
	}
	d.dirty.Mark(u.X+start, u.Y, end-start, 1)
}

func (d *Dispatcher) applyCursor(u Update) {
	old, oldValid := d.grid.Cursor()
	if oldValid {
		d.markPixels(old)
	}
	if u.CursorValid {
		d.grid.SetCursor(u.Cursor)
		d.markPixels(u.Cursor)
	} else {
		d.grid.InvalidateCursor()
	}
}

// markPixels dirties every cell a pixel rectangle touches.
func (d *Dispatcher) markPixels(r Rect) {
	x0, y0, x1, y1 := d.mapper.CellSpan(r)
	d.dirty.Mark(x0, y0, x1-x0, y1-y0)
}
