package graphics

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/gridterm"
	"github.com/phanxgames/gridterm/prefs"
)

const manifest = `
[[mode]]
id = 1
name = "Original Tiles"
image = "8x8.png"
tile_width = 8
tile_height = 8

[[mode]]
id = 2
name = "Adam Bolt"
image = "16x16.png"
tile_width = 16
tile_height = 16
axis = "char-row"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(manifest), "/gfx")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Modes) != 2 {
		t.Fatalf("len(Modes) = %d, want 2", len(m.Modes))
	}
	mode, ok := m.Mode(2)
	if !ok {
		t.Fatal("mode 2 missing")
	}
	if mode.Name != "Adam Bolt" || mode.TileWidth != 16 {
		t.Errorf("mode 2 = %+v", mode)
	}
	if got := m.ImagePath(mode); got != filepath.Join("/gfx", "16x16.png") {
		t.Errorf("ImagePath = %q", got)
	}
	l, err := mode.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if l.Axis != gridterm.AxisCharRow || l.GraphicMask != 0x80 || l.ValueMask != 0x7F {
		t.Errorf("Layout = %+v", l)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[[mode]`},
		{"reserved id", "[[mode]]\nid = 0\nimage = \"a.png\"\ntile_width = 8\ntile_height = 8\n"},
		{"no image", "[[mode]]\nid = 1\ntile_width = 8\ntile_height = 8\n"},
		{"zero tile", "[[mode]]\nid = 1\nimage = \"a.png\"\ntile_width = 0\ntile_height = 8\n"},
		{"bad axis", "[[mode]]\nid = 1\nimage = \"a.png\"\ntile_width = 8\ntile_height = 8\naxis = \"diagonal\"\n"},
		{"duplicate", "[[mode]]\nid = 1\nimage = \"a.png\"\ntile_width = 8\ntile_height = 8\n" +
			"[[mode]]\nid = 1\nimage = \"b.png\"\ntile_width = 8\ntile_height = 8\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.toml), ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTileset_TextAndUnknown(t *testing.T) {
	m, err := Parse([]byte(manifest), "")
	if err != nil {
		t.Fatal(err)
	}
	ts, err := m.LoadTileset(TextMode)
	if err != nil || ts != nil {
		t.Errorf("text mode = %v, %v, want nil, nil", ts, err)
	}
	if _, err := m.LoadTileset(9); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func writeAtlas(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeAtlas(t, filepath.Join(dir, "8x8.png"), 128, 64)
	path := filepath.Join(dir, "graphics.toml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ts, err := m.LoadTileset(1)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Columns != 16 || ts.Rows != 8 {
		t.Errorf("atlas grid = %dx%d, want 16x8", ts.Columns, ts.Rows)
	}
}

func TestApply_FallsBackToText(t *testing.T) {
	m, err := Parse([]byte(manifest), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := gridterm.NewTermConfig(0, 24, 80, gridterm.FontDescriptor{}, gridterm.FontMetrics{})
	w := gridterm.NewWindow(cfg, nil, gridterm.DefaultColorTable())

	p := prefs.New()
	if err := p.SetInt(gridterm.KeyGraphicsID, 2); err != nil {
		t.Fatal(err)
	}
	err = m.Apply(p, w)
	if !errors.Is(err, gridterm.ErrAssetLoad) {
		t.Errorf("err = %v, want ErrAssetLoad", err)
	}
	if w.GraphicsEnabled() {
		t.Error("window should fall back to text")
	}
}

func TestSelected_Default(t *testing.T) {
	if got := Selected(prefs.New()); got != TextMode {
		t.Errorf("Selected = %d, want %d", got, TextMode)
	}
}
