package gridterm

import "time"

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandFill   CommandType = iota // solid rectangle
	CommandGlyph                     // single glyph from the terminal font
	CommandTile                      // atlas tile blit
	CommandCursor                    // cursor outline
)

// Layer records which part of a cell a command draws.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerTerrain
	LayerFeature
	LayerCursor
)

// DrawCommand is a single draw instruction emitted by a render pass.
type DrawCommand struct {
	Type     CommandType
	Layer    Layer
	Col, Row int   // cell the command belongs to (-1 for the cursor)
	Dst      Rect  // destination rectangle in pixels
	Src      Rect  // atlas source rectangle (CommandTile only)
	Char     rune  // glyph (CommandGlyph only)
	Color    Color // fill, glyph, or outline colour
}

// CellSource is what a Surface draws from. It is implemented by whatever
// holds the per-window state.
type CellSource interface {
	EntityAt(x, y int) Entity
	GraphicsEnabled() bool
	CursorRect() (Rect, bool)
	GridSize() (columns, rows int)
}

const defaultCommandCap = 1024

// Surface turns grid content into draw commands and submits them to a
// persistent canvas image.
type Surface struct {
	mapper  Mapper
	font    *Font
	colors  ColorTable
	tileset *Tileset // shared, never mutated

	// CursorColor and WipeColor may be changed at any time.
	CursorColor Color
	WipeColor   Color
	cursorAlpha float64

	commands []DrawCommand
	painted  bool
	canvas   *canvas
	stats    debugStats
}

// NewSurface creates a surface for a terminal configuration. font may be nil,
// in which case glyph commands are still emitted but not drawn.
func NewSurface(cfg TermConfig, font *Font, colors ColorTable) *Surface {
	return &Surface{
		mapper:      cfg.Mapper(),
		font:        font,
		colors:      colors,
		CursorColor: CursorColor(),
		WipeColor:   WipeColor(),
		cursorAlpha: 1,
		commands:    make([]DrawCommand, 0, defaultCommandCap),
	}
}

// UpdateConfiguration applies a new configuration and font. The next pass
// repaints everything.
func (s *Surface) UpdateConfiguration(cfg TermConfig, font *Font) {
	s.mapper = cfg.Mapper()
	if font != nil {
		s.font = font
	}
	s.Invalidate()
}

// SetTileset attaches a shared tileset, or detaches it when ts is nil.
func (s *Surface) SetTileset(ts *Tileset) {
	s.tileset = ts
	s.Invalidate()
}

// Tileset returns the attached tileset, if any.
func (s *Surface) Tileset() *Tileset {
	return s.tileset
}

// Mapper returns the surface's pixel geometry.
func (s *Surface) Mapper() Mapper {
	return s.mapper
}

// Invalidate forces the next render pass to cover the whole grid.
func (s *Surface) Invalidate() {
	s.painted = false
}

// setCursorAlpha sets how far the cursor outline is from the wipe colour:
// 1 is the full cursor colour.
func (s *Surface) setCursorAlpha(a float64) {
	s.cursorAlpha = clamp01(a)
}

// Render emits the draw commands for every dirty cell (all cells on the
// first pass after construction or Invalidate), followed by the cursor, and
// clears the dirty region. The returned slice is reused by the next call.
func (s *Surface) Render(src CellSource, dirty *DirtyRegion) []DrawCommand {
	s.commands = s.commands[:0]
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
		s.stats = debugStats{}
	}

	cols, rows := src.GridSize()
	cursor, cursorValid := src.CursorRect()

	if !s.painted {
		dirty.MarkAll(cols, rows)
		s.painted = true
	}
	if dirty.Empty() {
		return s.commands
	}
	// Cells under the cursor are repainted so that the outline never
	// accumulates over its previous stroke.
	if cursorValid {
		x0, y0, x1, y1 := s.mapper.CellSpan(cursor)
		dirty.Mark(x0, y0, x1-x0, y1-y0)
	}
	if globalDebug {
		debugCheckDirty(dirty, cols, rows)
	}
	dirty.Clip(cols, rows)

	tiles := src.GraphicsEnabled() && s.tileset != nil
	layout := s.layout()
	x0, y0, x1, y1 := dirty.Bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.emitCell(x, y, src.EntityAt(x, y), layout, tiles)
		}
	}

	if cursorValid {
		c := s.CursorColor
		if s.cursorAlpha < 1 {
			c = Blend(s.WipeColor, s.CursorColor, s.cursorAlpha)
		}
		s.commands = append(s.commands, DrawCommand{
			Type:  CommandCursor,
			Layer: LayerCursor,
			Col:   -1,
			Row:   -1,
			Dst:   cursor,
			Color: c,
		})
	}
	dirty.Clear()

	if globalDebug {
		s.stats.renderTime = time.Since(t0)
		s.stats.cells = (x1 - x0) * (y1 - y0)
		s.stats.commands = len(s.commands)
	}
	return s.commands
}

// layout returns the masking scheme of the attached tileset. Without one,
// attributes use the default graphic bit.
func (s *Surface) layout() TileLayout {
	if s.tileset == nil {
		return DefaultTileLayout
	}
	return s.tileset.Layout
}

// emitCell appends the commands of one cell: background, terrain, feature.
func (s *Surface) emitCell(x, y int, e Entity, layout TileLayout, tiles bool) {
	dst := s.mapper.CellRect(x, y, 1, 1)
	s.commands = append(s.commands, DrawCommand{
		Type: CommandFill, Layer: LayerBackground, Col: x, Row: y, Dst: dst, Color: s.WipeColor,
	})
	if e.IsNull() {
		return
	}

	if !e.TerrainIsNull() {
		switch {
		case tiles && layout.IsGraphic(e.TerrainAttr):
			s.emitTile(x, y, dst, LayerTerrain, s.tileset.TerrainBounds(e))
		case e.FeatureIsNull():
			s.emitGlyph(x, y, dst, LayerTerrain, e.TerrainChar, layout.ColorAttr(e.TerrainAttr))
		case !layout.IsGraphic(e.TerrainAttr):
			// Covered by a feature glyph: the terrain only tints the cell.
			s.emitBackground(x, y, dst, LayerTerrain, e.TerrainAttr)
		}
	}

	if !e.FeatureIsNull() {
		switch {
		case tiles && layout.IsGraphic(e.Attr):
			s.emitTile(x, y, dst, LayerFeature, s.tileset.FeatureBounds(e))
		case layout.IsGraphic(e.Attr):
			s.emitGlyph(x, y, dst, LayerFeature, e.Char, layout.ColorAttr(e.Attr))
		default:
			s.emitBackground(x, y, dst, LayerFeature, e.Attr)
			s.emitGlyph(x, y, dst, LayerFeature, e.Char, e.Attr)
		}
	}
}

func (s *Surface) emitTile(x, y int, dst Rect, layer Layer, src Rect) {
	s.commands = append(s.commands, DrawCommand{
		Type: CommandTile, Layer: layer, Col: x, Row: y, Dst: dst, Src: src, Color: ColorWhite,
	})
	s.stats.tiles++
}

func (s *Surface) emitGlyph(x, y int, dst Rect, layer Layer, c rune, attr int) {
	s.commands = append(s.commands, DrawCommand{
		Type: CommandGlyph, Layer: layer, Col: x, Row: y, Dst: dst, Char: c, Color: s.colors.Foreground(attr),
	})
	s.stats.glyphs++
}

// emitBackground fills the cell when a plain glyph attribute asks for a
// non-black background.
func (s *Surface) emitBackground(x, y int, dst Rect, layer Layer, attr int) {
	if BackgroundMode(attr) == BackgroundBlack {
		return
	}
	s.commands = append(s.commands, DrawCommand{
		Type: CommandFill, Layer: layer, Col: x, Row: y, Dst: dst, Color: s.colors.Background(attr),
	})
}
