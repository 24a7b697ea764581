package gridterm

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// TileAxis selects which half of a (code, attribute) pair picks the atlas row.
type TileAxis uint8

const (
	AxisAttrRow TileAxis = iota // attribute selects the row, character the column
	AxisCharRow                 // character selects the row, attribute the column
)

// TileLayout describes how a tileset asset encodes tile references.
type TileLayout struct {
	GraphicMask int // attribute bit flagging a tile reference
	ValueMask   int // mask applied to both code and attribute before lookup
	Axis        TileAxis
}

// DefaultTileLayout matches the classic pict encoding: high bit flags a
// tile, the low seven bits of the attribute pick the row and the low seven
// bits of the character pick the column.
var DefaultTileLayout = TileLayout{
	GraphicMask: AttrGraphicMask,
	ValueMask:   AttrValueMask,
	Axis:        AxisAttrRow,
}

// IsGraphic reports whether attr carries the layout's tile bit. A zero
// GraphicMask means AttrGraphicMask.
func (l TileLayout) IsGraphic(attr int) bool {
	mask := l.GraphicMask
	if mask == 0 {
		mask = AttrGraphicMask
	}
	return attr&mask != 0
}

// Value strips everything but the lookup bits from a code or attribute. A
// zero ValueMask means AttrValueMask.
func (l TileLayout) Value(v int) int {
	mask := l.ValueMask
	if mask == 0 {
		mask = AttrValueMask
	}
	return v & mask
}

// ColorAttr returns attr without the layout's tile bit, for glyph colouring.
func (l TileLayout) ColorAttr(attr int) int {
	mask := l.GraphicMask
	if mask == 0 {
		mask = AttrGraphicMask
	}
	return attr &^ mask
}

// TileGeometry is the derived grid of an atlas image. Value type, computed
// once at construction.
type TileGeometry struct {
	ImageW, ImageH int
	TileW, TileH   float64
	Columns, Rows  int
	Layout         TileLayout
}

// NewTileGeometry derives the atlas grid: columns and rows are the image
// size divided by the tile size, truncated toward zero.
func NewTileGeometry(imageW, imageH int, tileW, tileH float64, layout TileLayout) (TileGeometry, error) {
	if tileW <= 0 || tileH <= 0 {
		return TileGeometry{}, &assetError{cause: ErrGeometryMismatch, msg: fmt.Sprintf("tile size %gx%g", tileW, tileH)}
	}
	if tileW > float64(imageW) || tileH > float64(imageH) {
		return TileGeometry{}, &assetError{
			cause: ErrGeometryMismatch,
			msg:   fmt.Sprintf("tile size %gx%g larger than atlas %dx%d", tileW, tileH, imageW, imageH),
		}
	}
	if layout.GraphicMask == 0 {
		layout.GraphicMask = AttrGraphicMask
	}
	if layout.ValueMask == 0 {
		layout.ValueMask = AttrValueMask
	}
	return TileGeometry{
		ImageW:  imageW,
		ImageH:  imageH,
		TileW:   tileW,
		TileH:   tileH,
		Columns: int(float64(imageW) / tileW),
		Rows:    int(float64(imageH) / tileH),
		Layout:  layout,
	}, nil
}

// Cell maps a (code, attribute) pair to an atlas column and row. Indices
// beyond the atlas are clamped to its last column or row.
func (g TileGeometry) Cell(code rune, attr int) (col, row int) {
	c := g.Layout.Value(int(code))
	a := g.Layout.Value(attr)
	if g.Layout.Axis == AxisCharRow {
		col, row = a, c
	} else {
		col, row = c, a
	}
	return clampIndex(col, g.Columns), clampIndex(row, g.Rows)
}

func clampIndex(i, n int) int {
	if i < 0 || n <= 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Bounds returns the source rectangle of the tile for (code, attr).
func (g TileGeometry) Bounds(code rune, attr int) Rect {
	col, row := g.Cell(code, attr)
	return Rect{
		X:      float64(col) * g.TileW,
		Y:      float64(row) * g.TileH,
		Width:  g.TileW,
		Height: g.TileH,
	}
}

// FeatureBounds returns the source rectangle of the entity's feature tile.
func (g TileGeometry) FeatureBounds(e Entity) Rect {
	return g.Bounds(e.Char, e.Attr)
}

// TerrainBounds returns the source rectangle of the entity's terrain tile.
func (g TileGeometry) TerrainBounds(e Entity) Rect {
	return g.Bounds(e.TerrainChar, e.TerrainAttr)
}

// Tileset pairs an atlas image with its geometry. It is never mutated after
// construction and may be shared by any number of windows.
type Tileset struct {
	TileGeometry
	image *ebiten.Image
	path  string
}

// NewTileset wraps an already loaded atlas image.
func NewTileset(img *ebiten.Image, tileW, tileH float64, layout TileLayout) (*Tileset, error) {
	if img == nil {
		return nil, &assetError{cause: fmt.Errorf("nil image"), msg: "tileset"}
	}
	b := img.Bounds()
	geom, err := NewTileGeometry(b.Dx(), b.Dy(), tileW, tileH, layout)
	if err != nil {
		return nil, err
	}
	return &Tileset{TileGeometry: geom, image: img}, nil
}

// LoadTileset reads an atlas image file and builds a tileset from it.
func LoadTileset(path string, tileW, tileH float64, layout TileLayout) (*Tileset, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, &assetError{cause: err, msg: "load " + path}
	}
	ts, err := NewTileset(img, tileW, tileH, layout)
	if err != nil {
		img.Deallocate()
		return nil, err
	}
	ts.path = path
	return ts, nil
}

// Image returns the atlas image.
func (t *Tileset) Image() *ebiten.Image {
	return t.image
}

// Path returns the file the tileset was loaded from, if any.
func (t *Tileset) Path() string {
	return t.path
}

// subImage returns the atlas sub image for a source rectangle.
func (t *Tileset) subImage(r Rect) *ebiten.Image {
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
	return t.image.SubImage(rect).(*ebiten.Image)
}
