package gridterm

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// cursorStrokeWidth is the outline width of the cursor in pixels.
const cursorStrokeWidth = 1

// Submit executes draw commands on target in order.
func (s *Surface) Submit(target *ebiten.Image, cmds []DrawCommand) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	var op ebiten.DrawImageOptions
	var top text.DrawOptions
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CommandFill:
			submitFill(target, cmd)
		case CommandTile:
			s.submitTile(target, cmd, &op)
		case CommandGlyph:
			s.submitGlyph(target, cmd, &top)
		case CommandCursor:
			submitCursor(target, cmd)
		}
	}

	if globalDebug {
		s.stats.submitTime = time.Since(t0)
		s.stats.log()
	}
}

// pixelRect rounds a pixel rectangle outward to whole pixels.
func pixelRect(r Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width+0.5), int(r.Y+r.Height+0.5))
}

// submitFill fills the destination rectangle. SubImage clips to target.
func submitFill(target *ebiten.Image, cmd *DrawCommand) {
	sub, ok := target.SubImage(pixelRect(cmd.Dst)).(*ebiten.Image)
	if !ok || sub.Bounds().Empty() {
		return
	}
	sub.Fill(cmd.Color.toRGBA())
}

// submitTile draws the atlas sub image scaled to the destination cell.
func (s *Surface) submitTile(target *ebiten.Image, cmd *DrawCommand, op *ebiten.DrawImageOptions) {
	if s.tileset == nil || cmd.Src.Empty() {
		return
	}
	src := s.tileset.subImage(cmd.Src)

	op.GeoM.Reset()
	op.GeoM.Scale(cmd.Dst.Width/cmd.Src.Width, cmd.Dst.Height/cmd.Src.Height)
	op.GeoM.Translate(cmd.Dst.X, cmd.Dst.Y)
	op.ColorScale.Reset()
	if cmd.Color != ColorWhite {
		a := float32(cmd.Color.A)
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	}
	target.DrawImage(src, op)
}

// submitGlyph draws one glyph centred horizontally in its cell.
func (s *Surface) submitGlyph(target *ebiten.Image, cmd *DrawCommand, op *text.DrawOptions) {
	if s.font == nil {
		return
	}
	face := s.font.Face()
	glyph := string(cmd.Char)
	adv := text.Advance(glyph, face)

	op.GeoM.Reset()
	op.GeoM.Translate(cmd.Dst.X+glyphOffset(cmd.Dst.Width, adv), cmd.Dst.Y)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(cmd.Color.toRGBA())
	text.Draw(target, glyph, face, op)
}

// glyphOffset centres an advance within a cell width, truncated to whole
// pixels so that glyphs stay crisp.
func glyphOffset(cellW, advance float64) float64 {
	off := (cellW - advance) / 2
	if off < 0 {
		return 0
	}
	return float64(int(off))
}

// submitCursor strokes the cursor outline inside its rectangle.
func submitCursor(target *ebiten.Image, cmd *DrawCommand) {
	r := cmd.Dst
	if r.Empty() {
		return
	}
	half := float32(cursorStrokeWidth) / 2
	vector.StrokeRect(target,
		float32(r.X)+half, float32(r.Y)+half,
		float32(r.Width)-cursorStrokeWidth, float32(r.Height)-cursorStrokeWidth,
		cursorStrokeWidth, cmd.Color.toRGBA(), false)
}

// Draw renders the dirty cells of src into the surface's persistent canvas
// and composites the canvas onto screen.
func (s *Surface) Draw(screen *ebiten.Image, src CellSource, dirty *DirtyRegion) {
	cols, rows := src.GridSize()
	w := int(s.mapper.Origin.X + float64(cols)*s.mapper.TileW + 0.5)
	h := int(s.mapper.Origin.Y + float64(rows)*s.mapper.TileH + 0.5)
	if s.canvas == nil {
		s.canvas = newCanvas(w, h)
		s.painted = false
	} else if s.canvas.Width() != w || s.canvas.Height() != h {
		s.canvas.Resize(w, h)
		s.painted = false
	}

	cmds := s.Render(src, dirty)
	if len(cmds) > 0 {
		s.Submit(s.canvas.Image(), cmds)
	}
	s.canvas.DrawAt(screen, 0, 0)
}

// Canvas returns the persistent image the surface draws into, or nil before
// the first Draw.
func (s *Surface) Canvas() *ebiten.Image {
	if s.canvas == nil {
		return nil
	}
	return s.canvas.Image()
}

// Dispose releases the canvas image.
func (s *Surface) Dispose() {
	if s.canvas != nil {
		s.canvas.Dispose()
		s.canvas = nil
	}
}
