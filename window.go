package gridterm

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine return codes.
const (
	CodeOK          = 0  // the update was applied
	CodeEngineError = -1 // the update was rejected; the engine logs and continues
)

// UpdateInfo carries one engine callback: a start cell, a run length, and
// parallel character/attribute arrays. Terrain arrays may be nil.
type UpdateInfo struct {
	X, Y  int
	Count int

	FeatureChars []rune
	FeatureAttrs []int
	TerrainChars []rune
	TerrainAttrs []int
}

// Window holds the rendering state of one terminal: its configuration, grid,
// dirty region, and surface. It implements CellSource for its own surface.
type Window struct {
	cfg        TermConfig
	grid       *Grid
	dirty      DirtyRegion
	dispatcher *Dispatcher
	surface    *Surface
	font       *Font

	tileset  *Tileset
	graphics bool

	sink        MouseSink
	injectQueue []syntheticClick
	pulse       *cursorPulse
	replay      *Replay

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewWindow creates a window for a configuration. font may be nil for
// windows that never draw glyphs (tests, tile-only terminals).
func NewWindow(cfg TermConfig, font *Font, colors ColorTable) *Window {
	w := &Window{
		cfg:           cfg,
		grid:          NewGrid(cfg.Rows, cfg.Columns),
		surface:       NewSurface(cfg, font, colors),
		font:          font,
		ScreenshotDir: "screenshots",
	}
	w.dispatcher = NewDispatcher(w.grid, &w.dirty, cfg.Mapper())
	w.dirty.MarkAll(cfg.Columns, cfg.Rows)
	return w
}

// Config returns the current configuration.
func (w *Window) Config() TermConfig {
	return w.cfg
}

// Grid returns the window's grid. Writes through it bypass dirty tracking.
func (w *Window) Grid() *Grid {
	return w.grid
}

// Surface returns the window's render surface.
func (w *Window) Surface() *Surface {
	return w.surface
}

// Dirty returns the pending dirty region.
func (w *Window) Dirty() *DirtyRegion {
	return &w.dirty
}

// NeedsDisplay reports whether any cell changed since the last render.
func (w *Window) NeedsDisplay() bool {
	return !w.dirty.Empty()
}

// --- CellSource ---

// EntityAt returns the cell at (x, y), or the null entity outside the grid.
func (w *Window) EntityAt(x, y int) Entity {
	if !w.grid.Contains(x, y) {
		return EntityNull
	}
	return w.grid.at(x, y)
}

// GraphicsEnabled reports whether tile references draw from an atlas.
func (w *Window) GraphicsEnabled() bool {
	return w.graphics && w.tileset != nil
}

// CursorRect returns the cursor rectangle and whether it may be drawn.
func (w *Window) CursorRect() (Rect, bool) {
	return w.grid.Cursor()
}

// GridSize returns the grid extent.
func (w *Window) GridSize() (columns, rows int) {
	return w.grid.Columns(), w.grid.Rows()
}

// --- Updates ---

// Apply runs one update. See Dispatcher.Apply.
func (w *Window) Apply(u Update) error {
	return w.dispatcher.Apply(u)
}

// ApplyAll runs updates in order and stops at the first error.
func (w *Window) ApplyAll(updates []Update) error {
	for _, u := range updates {
		if err := w.dispatcher.Apply(u); err != nil {
			return err
		}
	}
	return nil
}

// code converts an apply error into an engine return code.
func (w *Window) code(u Update, err error) int {
	if err != nil {
		log.Printf("gridterm: term %d: %s update rejected: %v", w.cfg.Index, u.Kind, err)
		return CodeEngineError
	}
	return CodeOK
}

// HandleClear is the engine's clear callback.
func (w *Window) HandleClear() int {
	u := Clear()
	return w.code(u, w.dispatcher.Apply(u))
}

// HandleText is the engine's text callback.
func (w *Window) HandleText(info UpdateInfo) int {
	u := info.update(UpdateText)
	return w.code(u, w.dispatcher.Apply(u))
}

// HandlePict is the engine's tile callback.
func (w *Window) HandlePict(info UpdateInfo) int {
	u := info.update(UpdateTile)
	return w.code(u, w.dispatcher.Apply(u))
}

// HandleWipe is the engine's wipe callback.
func (w *Window) HandleWipe(info UpdateInfo) int {
	u := info.update(UpdateWipe)
	return w.code(u, w.dispatcher.Apply(u))
}

// HandleCursor is the engine's cursor callback. The cursor covers Count
// cells from (X, Y); a non-positive Count hides it.
func (w *Window) HandleCursor(info UpdateInfo) int {
	u := CursorHide()
	if info.Count > 0 {
		u = CursorMove(w.cfg.Mapper().CellRect(info.X, info.Y, info.Count, 1))
	}
	return w.code(u, w.dispatcher.Apply(u))
}

func (info UpdateInfo) update(kind UpdateKind) Update {
	return Update{
		Kind:         kind,
		X:            info.X,
		Y:            info.Y,
		Count:        info.Count,
		FeatureChars: info.FeatureChars,
		FeatureAttrs: info.FeatureAttrs,
		TerrainChars: info.TerrainChars,
		TerrainAttrs: info.TerrainAttrs,
	}
}

// --- Geometry ---

// Resize changes the grid extent. The configuration, grid, and mapper are
// all replaced before this returns, so the next update sees the new
// geometry. The main terminal never shrinks below 80×24.
func (w *Window) Resize(rows, columns int) {
	w.reconfigure(w.cfg.WithSize(rows, columns), nil)
}

// SetFont changes the terminal font. The cell size follows the font's
// metrics; the grid extent is kept.
func (w *Window) SetFont(font *Font) {
	if font == nil {
		return
	}
	w.font = font
	w.reconfigure(w.cfg.WithFont(font.Descriptor(), font.Metrics()), font)
}

// SetVisible records the window's visibility in its configuration.
func (w *Window) SetVisible(visible bool) {
	w.cfg = w.cfg.WithVisible(visible)
}

func (w *Window) reconfigure(cfg TermConfig, font *Font) {
	w.cfg = cfg
	if w.grid.Rows() != cfg.Rows || w.grid.Columns() != cfg.Columns {
		w.grid.Resize(cfg.Rows, cfg.Columns)
	}
	w.dispatcher.SetMapper(cfg.Mapper())
	w.surface.UpdateConfiguration(cfg, font)
	w.dirty.Clear()
	w.dirty.MarkAll(cfg.Columns, cfg.Rows)
	debugf("term %d: %dx%d cells of %gx%g", cfg.Index, cfg.Columns, cfg.Rows, cfg.TileW, cfg.TileH)
}

// --- Tilesets ---

// UseImageTileset switches to tile rendering with a shared tileset. A nil
// tileset is the same as UseTextTileset.
func (w *Window) UseImageTileset(ts *Tileset) {
	if ts == nil {
		w.UseTextTileset()
		return
	}
	w.tileset = ts
	w.graphics = true
	w.surface.SetTileset(ts)
	w.dirty.MarkAll(w.cfg.Columns, w.cfg.Rows)
}

// UseTextTileset switches to glyph rendering.
func (w *Window) UseTextTileset() {
	w.tileset = nil
	w.graphics = false
	w.surface.SetTileset(nil)
	w.dirty.MarkAll(w.cfg.Columns, w.cfg.Rows)
}

// LoadImageTileset loads an atlas and switches to it. On failure the window
// falls back to glyph rendering and the error is returned.
func (w *Window) LoadImageTileset(path string, tileW, tileH float64, layout TileLayout) error {
	ts, err := LoadTileset(path, tileW, tileH, layout)
	if err != nil {
		log.Printf("gridterm: term %d: %v; using text", w.cfg.Index, err)
		w.UseTextTileset()
		return err
	}
	w.UseImageTileset(ts)
	return nil
}

// Tileset returns the active tileset, or nil in text mode.
func (w *Window) Tileset() *Tileset {
	return w.tileset
}

// --- Frame loop ---

// Update advances the cursor pulse, runs one replay step, and delivers one
// pending pointer event, injected or real. dt is in seconds.
func (w *Window) Update(dt float64) {
	w.updatePulse(dt)
	if w.replay != nil {
		w.replay.step(w)
	}
	if w.processInjectedInput() {
		return
	}
	w.ProcessInput()
}

// Draw renders pending changes and composites the window onto screen.
func (w *Window) Draw(screen *ebiten.Image) {
	w.surface.Draw(screen, w, &w.dirty)
	w.flushScreenshots()
}

// Dispose releases the window's images. Shared tilesets are left alone.
func (w *Window) Dispose() {
	w.surface.Dispose()
}
