// Package gridterm renders character-cell game terminals with [Ebitengine].
//
// A game engine describes its screen as a grid of cells. Each cell holds a
// feature glyph drawn over a terrain glyph, and each glyph carries an
// attribute that selects a colour or, with the graphic bit set, a tile in an
// atlas image. gridterm stores that grid, tracks which cells changed, and
// repaints only those cells into a persistent canvas every frame.
//
// # Quick start
//
// Create a [Window] from a [TermConfig] and feed it engine updates:
//
//	fonts := gridterm.NewFontRegistry()
//	font, _ := fonts.Default()
//	cfg := gridterm.NewTermConfig(gridterm.MainTermIndex, 24, 80, font.Descriptor(), font.Metrics())
//	w := gridterm.NewWindow(cfg, font, gridterm.DefaultColorTable())
//
//	w.Apply(gridterm.TextRun(0, 0, "Hello", 1))
//
// Call [Window.Update] and [Window.Draw] from your [ebiten.Game]:
//
//	func (g *Game) Update() error        { g.term.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.term.Draw(s) }
//
// Engines that use return codes call the Handle methods instead of Apply:
// [Window.HandleText], [Window.HandlePict], [Window.HandleWipe],
// [Window.HandleCursor], and [Window.HandleClear]. They return [CodeOK] or
// [CodeEngineError] and log the reason for a rejected update.
//
// # Updates
//
// Every change goes through a [Dispatcher], which writes the grid and marks
// the touched cells in a [DirtyRegion]. Runs that extend past the grid are
// clipped, so an engine that is still using the previous geometry while a
// resize is in flight never writes out of bounds.
//
// # Rendering
//
// A [Surface] turns the dirty part of the grid into a list of
// [DrawCommand] values (background fills, terrain, feature, and finally the
// cursor outline) and submits them to its canvas. [Surface.Render] is
// separate from [Surface.Submit] so that the command list can be inspected
// without a GPU.
//
// Attributes below [MaxColors] index a [ColorTable]; higher values select a
// background mode. With a [Tileset] attached, graphic attributes draw atlas
// tiles located by a [TileGeometry]. Without one, they fall back to glyphs.
//
// # Input
//
// Left and right presses are mapped to cells by a [Mapper] and delivered to
// a [MouseSink]. The main terminal has an inset of cells along its edges that
// never report presses. [Window.InjectClick] queues synthetic presses for
// scripted runs and tests, and a [Replay] drives a whole session from JSON.
//
// # Subpackages
//
//   - gridterm/prefs stores preferences in a JSON document.
//   - gridterm/graphics reads the TOML manifest of tile graphics modes.
//   - gridterm/ecs bridges mouse events and updates to a [Donburi] world.
//   - gridterm/tcellterm draws a window onto a [tcell] terminal screen.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
// [tcell]: https://github.com/gdamore/tcell
package gridterm
