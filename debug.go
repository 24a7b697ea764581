package gridterm

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds the metrics of one render pass. Only populated when debug
// mode is on.
type debugStats struct {
	renderTime time.Duration
	submitTime time.Duration
	cells      int
	glyphs     int
	tiles      int
	commands   int
}

// log prints the pass statistics to stderr.
func (s debugStats) log() {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[gridterm] render: %v | submit: %v | total: %v\n",
		s.renderTime, s.submitTime, s.renderTime+s.submitTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[gridterm] cells: %d | glyphs: %d | tiles: %d | commands: %d\n",
		s.cells, s.glyphs, s.tiles, s.commands)
}

// debugCheckCell panics when a grid access falls outside the grid.
func debugCheckCell(op string, x, y, columns, rows int) {
	if x < 0 || y < 0 || x >= columns || y >= rows {
		panic(fmt.Sprintf("gridterm debug: %s (%d, %d) outside %dx%d grid", op, x, y, columns, rows))
	}
}

// debugCheckDirty warns on stderr when a dirty region reaches past the grid,
// which means an update was not clipped.
func debugCheckDirty(d *DirtyRegion, columns, rows int) {
	if d.Empty() {
		return
	}
	x0, y0, x1, y1 := d.Bounds()
	if x0 < 0 || y0 < 0 || x1 > columns || y1 > rows {
		_, _ = fmt.Fprintf(os.Stderr, "[gridterm] warning: dirty region [%d,%d)-[%d,%d) exceeds %dx%d grid\n",
			x0, y0, x1, y1, columns, rows)
	}
}
