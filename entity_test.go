package gridterm

import "testing"

func TestEntity_Null(t *testing.T) {
	if !EntityNull.IsNull() {
		t.Error("EntityNull should be null")
	}
	blank := Entity{Char: ' ', Attr: 1}
	if blank.IsNull() {
		t.Error("a blank glyph is a real entity")
	}
	if blank.FeatureIsNull() {
		t.Error("blank feature should not be null")
	}
	if !blank.TerrainIsNull() {
		t.Error("blank terrain should be null")
	}
}

func TestEntity_Graphic(t *testing.T) {
	e := Entity{Char: 'a', Attr: 0x81, TerrainChar: '.', TerrainAttr: 0x05}
	if !e.FeatureIsGraphic() {
		t.Error("feature attr 0x81 should be graphic")
	}
	if e.TerrainIsGraphic() {
		t.Error("terrain attr 0x05 should not be graphic")
	}
	if IsGraphicAttr(AttrValueMask) {
		t.Error("0x7F should not be graphic")
	}
}

func TestEntity_WithLayers(t *testing.T) {
	e := EntityNull.withTerrain('.', 2).withFeature('@', 1)
	want := Entity{Char: '@', Attr: 1, TerrainChar: '.', TerrainAttr: 2}
	if e != want {
		t.Errorf("entity = %+v, want %+v", e, want)
	}
	if e = e.withFeature(0, 0); !e.FeatureIsNull() || e.TerrainIsNull() {
		t.Errorf("clearing the feature changed the terrain: %+v", e)
	}
}
