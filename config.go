package gridterm

import (
	"fmt"
	"math"
)

// MainTermIndex is the index of the main game terminal.
const MainTermIndex = 0

// Minimum grid of the main terminal; the engine cannot lay out less.
const (
	MainTermMinColumns = 80
	MainTermMinRows    = 24
)

// TermConfig is an immutable description of one terminal window: its grid,
// cell size, font, and visibility. Changing anything returns a new value.
type TermConfig struct {
	Index            int
	Rows, Columns    int
	TileW, TileH     float64
	Font             FontDescriptor
	PreferredAdvance float64
	Visible          bool
}

// NewTermConfig builds a configuration whose cell size is derived from the
// font metrics. Non-positive sizes fall back to 80×24.
func NewTermConfig(index, rows, columns int, font FontDescriptor, m FontMetrics) TermConfig {
	if rows <= 0 {
		rows = FallbackRows
	}
	if columns <= 0 {
		columns = FallbackColumns
	}
	tw, th := m.TileSize()
	return TermConfig{
		Index:            index,
		Rows:             rows,
		Columns:          columns,
		TileW:            tw,
		TileH:            th,
		Font:             font,
		PreferredAdvance: m.PreferredAdvance,
		Visible:          index == MainTermIndex,
	}
}

// WithFont returns a copy using a different font; the cell size follows the
// new metrics.
func (c TermConfig) WithFont(font FontDescriptor, m FontMetrics) TermConfig {
	c.Font = font
	c.TileW, c.TileH = m.TileSize()
	c.PreferredAdvance = m.PreferredAdvance
	return c
}

// WithSize returns a copy with a different grid. The main terminal never
// shrinks below its minimum grid.
func (c TermConfig) WithSize(rows, columns int) TermConfig {
	if c.Index == MainTermIndex {
		rows = max(rows, MainTermMinRows)
		columns = max(columns, MainTermMinColumns)
	}
	c.Rows = max(rows, 1)
	c.Columns = max(columns, 1)
	return c
}

// WithVisible returns a copy with a different visibility.
func (c TermConfig) WithVisible(visible bool) TermConfig {
	c.Visible = visible
	return c
}

// PreferredContentBounds is the pixel size of the full grid.
func (c TermConfig) PreferredContentBounds() Rect {
	return Rect{Width: float64(c.Columns) * c.TileW, Height: float64(c.Rows) * c.TileH}
}

// WindowMinimumSize is the smallest content size the window may take.
func (c TermConfig) WindowMinimumSize() Vec2 {
	if c.Index == MainTermIndex {
		return Vec2{X: MainTermMinColumns * c.TileW, Y: MainTermMinRows * c.TileH}
	}
	return Vec2{X: c.TileW, Y: c.TileH}
}

// WindowTitle names the window: the game for the main terminal, Term-N for
// the others.
func (c TermConfig) WindowTitle(game string) string {
	if c.Index == MainTermIndex {
		return game
	}
	return fmt.Sprintf("Term-%d", c.Index)
}

// GridForContentSize returns the grid that fits a content area, used when
// the user drags a window edge.
func (c TermConfig) GridForContentSize(w, h float64) (rows, columns int) {
	return int(math.Floor(h / c.TileH)), int(math.Floor(w / c.TileW))
}

// Mapper returns the coordinate mapper for this configuration. Only the main
// terminal has a clickable inset.
func (c TermConfig) Mapper() Mapper {
	m := Mapper{TileW: c.TileW, TileH: c.TileH, Columns: c.Columns, Rows: c.Rows}
	if c.Index == MainTermIndex {
		m.Inset = MainTermInset
	}
	return m
}

// Preferences is the key-value store configuration is persisted to.
type Preferences interface {
	Int(key string) (int, bool)
	Float(key string) (float64, bool)
	String(key string) (string, bool)
	Bool(key string) (bool, bool)
	SetInt(key string, v int) error
	SetFloat(key string, v float64) error
	SetString(key string, v string) error
	SetBool(key string, v bool) error
}

// Preference keys.
const (
	KeyGraphicsID      = "GraphicsID"      // selected graphics mode; 0 is text
	KeyFramesPerSecond = "FramesPerSecond" // frame rate limit; 0 is unthrottled

	KeyColumns  = "Columns"
	KeyRows     = "Rows"
	KeyFontName = "FontName"
	KeyFontSize = "FontSize"
	KeyVisible  = "Visible"
)

// TermKey returns the preference key of a per-terminal field.
func TermKey(index int, field string) string {
	return fmt.Sprintf("TerminalConfiguration-%d.%s", index, field)
}

// RegisterDefaults writes the stock value of every terminal key that is not
// present yet: the main terminal visible at 80×24, the others hidden.
func RegisterDefaults(p Preferences, font FontDescriptor, maxTerminals int) error {
	setInt := func(key string, v int) error {
		if _, ok := p.Int(key); ok {
			return nil
		}
		return p.SetInt(key, v)
	}
	for i := 0; i < maxTerminals; i++ {
		if err := setInt(TermKey(i, KeyColumns), FallbackColumns); err != nil {
			return err
		}
		if err := setInt(TermKey(i, KeyRows), FallbackRows); err != nil {
			return err
		}
		if _, ok := p.String(TermKey(i, KeyFontName)); !ok {
			if err := p.SetString(TermKey(i, KeyFontName), font.Name); err != nil {
				return err
			}
		}
		if _, ok := p.Float(TermKey(i, KeyFontSize)); !ok {
			if err := p.SetFloat(TermKey(i, KeyFontSize), font.Size); err != nil {
				return err
			}
		}
		if _, ok := p.Bool(TermKey(i, KeyVisible)); !ok {
			if err := p.SetBool(TermKey(i, KeyVisible), i == MainTermIndex); err != nil {
				return err
			}
		}
	}
	if err := setInt(KeyGraphicsID, 0); err != nil {
		return err
	}
	return setInt(KeyFramesPerSecond, 60)
}

// RestoreTermConfig reads a terminal's configuration from preferences,
// loading its font through the registry. Missing keys use fallbacks.
func RestoreTermConfig(p Preferences, index int, fonts *FontRegistry) (TermConfig, error) {
	desc := FontDescriptor{Name: DefaultFontName, Size: DefaultFontSize}
	if name, ok := p.String(TermKey(index, KeyFontName)); ok && name != "" {
		desc.Name = name
	}
	if size, ok := p.Float(TermKey(index, KeyFontSize)); ok && size > 0 {
		desc.Size = size
	}
	font, err := fonts.Load(desc)
	if err != nil {
		return TermConfig{}, fmt.Errorf("gridterm: restore terminal %d: %w", index, err)
	}

	rows, _ := p.Int(TermKey(index, KeyRows))
	cols, _ := p.Int(TermKey(index, KeyColumns))
	cfg := NewTermConfig(index, rows, cols, font.Descriptor(), font.Metrics())
	cfg = cfg.WithSize(cfg.Rows, cfg.Columns)
	if visible, ok := p.Bool(TermKey(index, KeyVisible)); ok {
		cfg = cfg.WithVisible(visible)
	}
	return cfg, nil
}

// Save writes the configuration's persisted fields.
func (c TermConfig) Save(p Preferences) error {
	if err := p.SetInt(TermKey(c.Index, KeyColumns), c.Columns); err != nil {
		return err
	}
	if err := p.SetInt(TermKey(c.Index, KeyRows), c.Rows); err != nil {
		return err
	}
	if err := p.SetString(TermKey(c.Index, KeyFontName), c.Font.Name); err != nil {
		return err
	}
	if err := p.SetFloat(TermKey(c.Index, KeyFontSize), c.Font.Size); err != nil {
		return err
	}
	return p.SetBool(TermKey(c.Index, KeyVisible), c.Visible)
}
