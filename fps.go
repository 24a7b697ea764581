package gridterm

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultFramesPerSecond is the frame rate used when no preference exists.
const DefaultFramesPerSecond = 60

// ApplyFrameRate applies the FramesPerSecond preference. 0 ties updates to
// the display refresh rate; anything else fixes the tick rate.
func ApplyFrameRate(fps int) {
	if fps <= 0 {
		ebiten.SetTPS(ebiten.SyncWithFPS)
		debugf("frame rate unthrottled")
		return
	}
	ebiten.SetTPS(fps)
	debugf("frame rate %d", fps)
}

// FrameRateFromPreferences reads FramesPerSecond, defaulting to 60.
func FrameRateFromPreferences(p Preferences) int {
	if fps, ok := p.Int(KeyFramesPerSecond); ok && fps >= 0 {
		return fps
	}
	return DefaultFramesPerSecond
}

// FPSOverlay draws the actual FPS and TPS in a corner of the screen. The
// text is refreshed every half second.
type FPSOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

// NewFPSOverlay creates an overlay. 100x32 is enough for two lines.
func NewFPSOverlay() *FPSOverlay {
	return &FPSOverlay{img: ebiten.NewImage(100, 32), elapsed: 0.5}
}

// Update advances the refresh timer. dt is in seconds.
func (o *FPSOverlay) Update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw composites the overlay at the top-right corner of screen.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(screen.Bounds().Dx()-o.img.Bounds().Dx()), 0)
	screen.DrawImage(o.img, &op)
}
