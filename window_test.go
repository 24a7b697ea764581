package gridterm

import (
	"errors"
	"testing"
)

func TestWindow_HandleCodes(t *testing.T) {
	w := newTestWindow(t)
	info := UpdateInfo{X: 1, Y: 2, Count: 2, FeatureChars: []rune("ok"), FeatureAttrs: []int{1, 1}}
	if got := w.HandleText(info); got != CodeOK {
		t.Errorf("HandleText = %d, want CodeOK", got)
	}
	if got := w.HandlePict(info); got != CodeOK {
		t.Errorf("HandlePict = %d, want CodeOK", got)
	}
	if got := w.HandleWipe(UpdateInfo{X: 1, Y: 2, Count: 1}); got != CodeOK {
		t.Errorf("HandleWipe = %d, want CodeOK", got)
	}
	if got := w.HandleCursor(UpdateInfo{X: 1, Y: 2, Count: 1}); got != CodeOK {
		t.Errorf("HandleCursor = %d, want CodeOK", got)
	}
	if got := w.HandleClear(); got != CodeOK {
		t.Errorf("HandleClear = %d, want CodeOK", got)
	}
	if got := w.HandleText(UpdateInfo{Count: 3}); got != CodeEngineError {
		t.Errorf("malformed HandleText = %d, want CodeEngineError", got)
	}
}

func TestWindow_ResizeIsAHardBoundary(t *testing.T) {
	cfg := NewTermConfig(0, 24, 80, FontDescriptor{}, FontMetrics{})
	w := NewWindow(cfg, nil, DefaultColorTable())
	_ = w.Apply(TextRun(10, 10, "old", 1))
	w.Surface().Render(w, w.Dirty())

	w.Resize(30, 100)
	if e, _ := w.Grid().Cell(10, 10); !e.IsNull() {
		t.Errorf("Cell(10, 10) = %+v, want null after resize", e)
	}
	if c, r := w.GridSize(); c != 100 || r != 30 {
		t.Fatalf("grid = %dx%d, want 100x30", c, r)
	}
	if !w.NeedsDisplay() {
		t.Error("resize should dirty the whole grid")
	}

	if err := w.Apply(TextRun(90, 25, "x", 1)); err != nil {
		t.Fatal(err)
	}
	if e, _ := w.Grid().Cell(90, 25); e.Char != 'x' {
		t.Errorf("Cell(90, 25) = %q, want 'x'", e.Char)
	}

	before := append([]Entity(nil), w.Grid().cells...)
	w.Dirty().Clear()
	if err := w.Apply(TextRun(150, 25, "y", 1)); err != nil {
		t.Errorf("out-of-range run should be clipped, got %v", err)
	}
	if !w.Dirty().Empty() {
		t.Errorf("clipped run marked %v", w.Dirty())
	}
	for i, e := range w.Grid().cells {
		if e != before[i] {
			t.Fatalf("clipped run changed cell %d to %+v", i, e)
		}
	}
	if w.Config().Mapper().Columns != 100 {
		t.Error("mapper not rebuilt")
	}
}

func TestWindow_ResizeMainTermMinimum(t *testing.T) {
	cfg := NewTermConfig(0, 24, 80, FontDescriptor{}, FontMetrics{})
	w := NewWindow(cfg, nil, DefaultColorTable())
	w.Resize(10, 10)
	if c, r := w.GridSize(); c != 80 || r != 24 {
		t.Errorf("main grid = %dx%d, want 80x24", c, r)
	}
}

func TestWindow_SetFont(t *testing.T) {
	w := newTestWindow(t)
	fonts := NewFontRegistry()
	f, err := fonts.Load(FontDescriptor{Name: DefaultFontName, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	w.SetFont(f)
	tw, th := f.Metrics().TileSize()
	if got := w.Config(); got.TileW != tw || got.TileH != th || got.Font.Size != 20 {
		t.Errorf("config = %+v, want tile %vx%v", got, tw, th)
	}
	if c, r := w.GridSize(); c != 80 || r != 24 {
		t.Errorf("grid changed to %dx%d", c, r)
	}
}

func TestWindow_LoadImageTilesetFallsBack(t *testing.T) {
	w := newTestWindow(t)
	err := w.LoadImageTileset("testdata/missing.png", 16, 16, DefaultTileLayout)
	if !errors.Is(err, ErrAssetLoad) {
		t.Errorf("err = %v, want ErrAssetLoad", err)
	}
	if w.GraphicsEnabled() || w.Tileset() != nil {
		t.Error("window should be in text mode")
	}
	if !w.NeedsDisplay() {
		t.Error("switching tilesets should repaint")
	}
}

func TestWindow_EntityAtOutside(t *testing.T) {
	w := newTestWindow(t)
	if e := w.EntityAt(-1, 500); !e.IsNull() {
		t.Errorf("EntityAt outside = %+v, want null", e)
	}
}

func TestWindow_ApplyAllStopsAtError(t *testing.T) {
	w := newTestWindow(t)
	err := w.ApplyAll([]Update{
		TextRun(0, 0, "a", 1),
		{Kind: UpdateText, Count: 1},
		TextRun(1, 0, "b", 1),
	})
	if !errors.Is(err, ErrBadUpdate) {
		t.Fatalf("err = %v, want ErrBadUpdate", err)
	}
	if e, _ := w.Grid().Cell(1, 0); !e.IsNull() {
		t.Error("updates after the error should not run")
	}
}
