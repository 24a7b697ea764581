// Package graphics reads the manifest of tile graphics modes and resolves
// the GraphicsID preference to a tileset.
//
// A manifest is a TOML file listing the available atlases:
//
//	[[mode]]
//	id = 1
//	name = "Original Tiles"
//	image = "8x8.png"
//	tile_width = 8
//	tile_height = 8
//
// Mode 0 is always text and never appears in a manifest.
package graphics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/phanxgames/gridterm"
)

// TextMode is the GraphicsID of glyph rendering.
const TextMode = 0

// ErrUnknownMode reports a GraphicsID with no manifest entry.
var ErrUnknownMode = errors.New("graphics: unknown mode")

// Mode is one tile graphics mode.
type Mode struct {
	ID          int    `toml:"id"`
	Name        string `toml:"name"`
	Image       string `toml:"image"`
	TileWidth   int    `toml:"tile_width"`
	TileHeight  int    `toml:"tile_height"`
	Axis        string `toml:"axis"`         // "attr-row" (default) or "char-row"
	GraphicMask int    `toml:"graphic_mask"` // defaults to 0x80
	ValueMask   int    `toml:"value_mask"`   // defaults to 0x7f
}

// Layout returns the tile layout described by the mode.
func (m Mode) Layout() (gridterm.TileLayout, error) {
	l := gridterm.DefaultTileLayout
	switch m.Axis {
	case "", "attr-row":
		l.Axis = gridterm.AxisAttrRow
	case "char-row":
		l.Axis = gridterm.AxisCharRow
	default:
		return l, fmt.Errorf("graphics: mode %d: unknown axis %q", m.ID, m.Axis)
	}
	if m.GraphicMask != 0 {
		l.GraphicMask = m.GraphicMask
	}
	if m.ValueMask != 0 {
		l.ValueMask = m.ValueMask
	}
	return l, nil
}

// Manifest is the parsed list of graphics modes.
type Manifest struct {
	Modes []Mode `toml:"mode"`

	dir string // directory image paths are relative to
}

// Parse decodes a manifest. Image paths are resolved against dir.
func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("graphics: parse manifest: %w", err)
	}
	seen := make(map[int]bool, len(m.Modes))
	for i, mode := range m.Modes {
		switch {
		case mode.ID == TextMode:
			return nil, fmt.Errorf("graphics: mode %d: id 0 is reserved for text", i)
		case seen[mode.ID]:
			return nil, fmt.Errorf("graphics: mode %d: duplicate id %d", i, mode.ID)
		case mode.Image == "":
			return nil, fmt.Errorf("graphics: mode %d: no image", mode.ID)
		case mode.TileWidth <= 0 || mode.TileHeight <= 0:
			return nil, fmt.Errorf("graphics: mode %d: tile size %dx%d", mode.ID, mode.TileWidth, mode.TileHeight)
		}
		if _, err := mode.Layout(); err != nil {
			return nil, err
		}
		seen[mode.ID] = true
	}
	m.dir = dir
	return &m, nil
}

// Load reads a manifest file. Image paths are relative to its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphics: read manifest: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Mode returns the mode with the given id.
func (m *Manifest) Mode(id int) (Mode, bool) {
	for _, mode := range m.Modes {
		if mode.ID == id {
			return mode, true
		}
	}
	return Mode{}, false
}

// ImagePath returns the resolved path of a mode's atlas.
func (m *Manifest) ImagePath(mode Mode) string {
	if filepath.IsAbs(mode.Image) || m.dir == "" {
		return mode.Image
	}
	return filepath.Join(m.dir, mode.Image)
}

// LoadTileset loads the atlas of mode id. TextMode returns a nil tileset.
func (m *Manifest) LoadTileset(id int) (*gridterm.Tileset, error) {
	if id == TextMode {
		return nil, nil
	}
	mode, ok := m.Mode(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, id)
	}
	layout, err := mode.Layout()
	if err != nil {
		return nil, err
	}
	return gridterm.LoadTileset(m.ImagePath(mode), float64(mode.TileWidth), float64(mode.TileHeight), layout)
}

// Selected returns the GraphicsID preference, TextMode when unset.
func Selected(p gridterm.Preferences) int {
	if id, ok := p.Int(gridterm.KeyGraphicsID); ok && id >= 0 {
		return id
	}
	return TextMode
}

// Apply switches the windows to the mode selected in p. On any failure every
// window falls back to text and the error is returned.
func (m *Manifest) Apply(p gridterm.Preferences, windows ...*gridterm.Window) error {
	ts, err := m.LoadTileset(Selected(p))
	if err != nil {
		for _, w := range windows {
			w.UseTextTileset()
		}
		return err
	}
	for _, w := range windows {
		w.UseImageTileset(ts)
	}
	return nil
}
