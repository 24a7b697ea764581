package gridterm

// Attribute bits shared by the renderer and the tile resolver.
const (
	AttrGraphicMask = 0x80 // set on attributes that reference an atlas tile
	AttrValueMask   = 0x7F // colour index or tile row/column
)

// Entity is the content of one grid cell: a feature glyph drawn on top of a
// terrain glyph. Value type, stored directly in the grid buffer.
type Entity struct {
	Char        rune // highest-priority character for the cell
	Attr        int  // attributes applied to Char
	TerrainChar rune // character drawn underneath Char
	TerrainAttr int  // attributes applied to TerrainChar
}

// EntityNull marks an unused cell. It is not the same as a blank glyph: the
// engine usually fills space with a real "blank" character, and that
// character is drawn like any other.
var EntityNull = Entity{}

// IsNull reports whether every field is zero.
func (e Entity) IsNull() bool {
	return e == EntityNull
}

// FeatureIsNull reports whether the feature pair is unset.
func (e Entity) FeatureIsNull() bool {
	return e.Char == 0 && e.Attr == 0
}

// TerrainIsNull reports whether the terrain pair is unset.
func (e Entity) TerrainIsNull() bool {
	return e.TerrainChar == 0 && e.TerrainAttr == 0
}

// FeatureIsGraphic reports whether the feature carries the default tile bit.
// Renderers with a tileset ask its TileLayout instead.
func (e Entity) FeatureIsGraphic() bool {
	return IsGraphicAttr(e.Attr)
}

// TerrainIsGraphic reports whether the terrain carries the default tile bit.
func (e Entity) TerrainIsGraphic() bool {
	return IsGraphicAttr(e.TerrainAttr)
}

// IsGraphicAttr reports whether attr has the graphic bit set.
func IsGraphicAttr(attr int) bool {
	return attr&AttrGraphicMask != 0
}

// withFeature returns e with the feature pair replaced.
func (e Entity) withFeature(c rune, a int) Entity {
	e.Char = c
	e.Attr = a
	return e
}

// withTerrain returns e with the terrain pair replaced.
func (e Entity) withTerrain(c rune, a int) Entity {
	e.TerrainChar = c
	e.TerrainAttr = a
	return e
}
