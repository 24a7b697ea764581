package gridterm

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labelled capture of the window's surface. It is taken
// at the end of the next Draw and written to ScreenshotDir as a PNG.
func (w *Window) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (w *Window) flushScreenshots() {
	if len(w.screenshotQueue) == 0 {
		return
	}
	defer func() { w.screenshotQueue = w.screenshotQueue[:0] }()

	canvas := w.surface.Canvas()
	if canvas == nil {
		return
	}
	if err := os.MkdirAll(w.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[gridterm] screenshot: %v\n", err)
		return
	}

	img := Snapshot(canvas)
	now := time.Now()
	for _, label := range w.screenshotQueue {
		path := filepath.Join(w.ScreenshotDir, screenshotName(w.cfg.Index, now, label))
		if err := savePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[gridterm] screenshot: term %d: %v\n", w.cfg.Index, err)
		}
	}
}

// screenshotName builds term<index>_<stamp>_<label>.png. Label runes outside
// [A-Za-z0-9.-] become '_'.
func screenshotName(term int, at time.Time, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "capture"
	}
	label = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
	return fmt.Sprintf("term%d_%s_%s.png", term, at.Format("20060102_150405"), label)
}

// Snapshot copies a canvas into a straight-alpha image.
func Snapshot(src *ebiten.Image) *image.NRGBA {
	b := src.Bounds()
	premul := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	src.ReadPixels(premul.Pix)

	out := image.NewNRGBA(premul.Rect)
	draw.Draw(out, out.Rect, premul, image.Point{}, draw.Src)
	return out
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
