package gridterm

import "github.com/hajimehoshi/ebiten/v2"

// canvas is the persistent offscreen image a Surface paints into. Cells that
// are not dirty keep their pixels from earlier passes.
type canvas struct {
	image *ebiten.Image
	w, h  int
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 1), max(h, 1)
	return &canvas{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying image.
func (c *canvas) Image() *ebiten.Image {
	return c.image
}

// Width returns the canvas width in pixels.
func (c *canvas) Width() int {
	return c.w
}

// Height returns the canvas height in pixels.
func (c *canvas) Height() int {
	return c.h
}

// DrawAt composites the canvas onto dst at (x, y).
func (c *canvas) DrawAt(dst *ebiten.Image, x, y float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	dst.DrawImage(c.image, &op)
}

// Resize deallocates the old image and creates a blank one.
func (c *canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if c.image != nil {
		c.image.Deallocate()
	}
	c.image = ebiten.NewImage(w, h)
	c.w = w
	c.h = h
}

// Dispose deallocates the image. The canvas must not be used afterwards.
func (c *canvas) Dispose() {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
}
