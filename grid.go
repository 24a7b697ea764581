package gridterm

import "fmt"

// Grid is the per-window cell store: a row-major buffer of entities plus the
// last known cursor rectangle in pixel space. A Grid is owned by exactly one
// Window; it is not safe for concurrent use.
type Grid struct {
	cells   []Entity // row-major, len = rows * columns
	rows    int
	columns int

	cursor      Rect
	cursorValid bool
}

// NewGrid creates a grid of null entities. Non-positive sizes produce an
// empty grid.
func NewGrid(rows, columns int) *Grid {
	g := &Grid{}
	g.Resize(rows, columns)
	return g
}

// Resize replaces the buffer with a new one of the given size. Every cell
// becomes null and the cursor is invalidated.
func (g *Grid) Resize(rows, columns int) {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	g.rows = rows
	g.columns = columns
	g.cells = make([]Entity, rows*columns)
	g.cursor = Rect{}
	g.cursorValid = false
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// Contains reports whether (x, y) lies within the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.columns && y >= 0 && y < g.rows
}

// Cell returns the entity at column x, row y.
func (g *Grid) Cell(x, y int) (Entity, error) {
	if !g.Contains(x, y) {
		return EntityNull, g.outOfRange("Cell", x, y)
	}
	return g.cells[y*g.columns+x], nil
}

// SetCell stores e at column x, row y.
func (g *Grid) SetCell(x, y int, e Entity) error {
	if !g.Contains(x, y) {
		return g.outOfRange("SetCell", x, y)
	}
	g.cells[y*g.columns+x] = e
	return nil
}

// at and set skip bounds checks; callers clip first.
func (g *Grid) at(x, y int) Entity {
	return g.cells[y*g.columns+x]
}

func (g *Grid) set(x, y int, e Entity) {
	g.cells[y*g.columns+x] = e
}

// Reset sets every cell to null and invalidates the cursor.
func (g *Grid) Reset() {
	clear(g.cells)
	g.cursor = Rect{}
	g.cursorValid = false
}

// Cursor returns the stored cursor rectangle and whether it may be drawn.
func (g *Grid) Cursor() (Rect, bool) {
	return g.cursor, g.cursorValid
}

// SetCursor stores a new cursor rectangle and marks it valid.
func (g *Grid) SetCursor(r Rect) {
	g.cursor = r
	g.cursorValid = true
}

// InvalidateCursor hides the cursor. The last rectangle is kept so that its
// area can still be repainted.
func (g *Grid) InvalidateCursor() {
	g.cursorValid = false
}

// outOfRange builds the error for a bad access. Debug builds treat this as an
// assertion failure.
func (g *Grid) outOfRange(op string, x, y int) error {
	if globalDebug {
		debugCheckCell(op, x, y, g.columns, g.rows)
	}
	return fmt.Errorf("gridterm: %s(%d, %d) outside %dx%d grid: %w", op, x, y, g.columns, g.rows, ErrOutOfRange)
}
