package gridterm

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestFontMetrics_TileSize(t *testing.T) {
	tests := []struct {
		name string
		m    FontMetrics
		w, h float64
	}{
		{"rounds up", FontMetrics{PreferredAdvance: 7.2, Ascent: 11.1, Descent: 3, LineGap: 0.5}, 8, 15},
		{"whole", FontMetrics{PreferredAdvance: 8, Ascent: 12, Descent: 4}, 8, 16},
		{"fallback", FontMetrics{}, FallbackTileWidth, FallbackTileHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.m.TileSize()
			if w != tt.w || h != tt.h {
				t.Errorf("TileSize = %vx%v, want %vx%v", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestNewFont_GoMono(t *testing.T) {
	f, err := NewFont(DefaultFontName, gomono.TTF, 13)
	if err != nil {
		t.Fatal(err)
	}
	m := f.Metrics()
	if m.PreferredAdvance <= 0 || m.Ascent <= 0 {
		t.Errorf("metrics = %+v, want positive advance and ascent", m)
	}
	w, h := m.TileSize()
	if w < m.PreferredAdvance || h <= w {
		t.Errorf("tile = %vx%v for advance %v", w, h, m.PreferredAdvance)
	}
	if f.Face() == nil {
		t.Error("Face should not be nil")
	}
}

func TestNewFont_BadData(t *testing.T) {
	if _, err := NewFont("junk", []byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontRegistry_Load(t *testing.T) {
	r := NewFontRegistry()
	a, err := r.Load(FontDescriptor{Name: DefaultFontName, Size: 12})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Load(FontDescriptor{Name: DefaultFontName, Size: 12})
	if a != b {
		t.Error("same descriptor should return the cached font")
	}

	c, err := r.Load(FontDescriptor{Name: "Monaco", Size: 12})
	if err != nil {
		t.Fatal(err)
	}
	if c.Descriptor().Name != DefaultFontName {
		t.Errorf("unknown font resolved to %q, want %q", c.Descriptor().Name, DefaultFontName)
	}

	d, _ := r.Load(FontDescriptor{Name: DefaultFontName})
	if d.Descriptor().Size != DefaultFontSize {
		t.Errorf("zero size = %v, want %v", d.Descriptor().Size, DefaultFontSize)
	}
}

func TestFontRegistry_Register(t *testing.T) {
	r := NewFontRegistry()
	r.Register("Mono Copy", gomono.TTF)
	f, err := r.Load(FontDescriptor{Name: "Mono Copy", Size: 10})
	if err != nil {
		t.Fatal(err)
	}
	if f.Descriptor().Name != "Mono Copy" {
		t.Errorf("name = %q, want Mono Copy", f.Descriptor().Name)
	}
}
