package gamedata

import (
	"testing"
	"testing/fstest"

	"github.com/samdwyer/dungeondice/internal/dice"
)

func TestLoadTreasurePool(t *testing.T) {
	pool, err := LoadTreasurePool()
	if err != nil {
		t.Fatalf("Failed to load treasure pool: %v", err)
	}

	if len(pool) != 36 {
		t.Errorf("Expected 36 treasure tokens, got %d", len(pool))
	}

	counts := map[string]int{}
	for _, tr := range pool {
		counts[tr.ID]++
	}
	expected := map[string]int{"dragon_scales": 6, "ring_of_invisibility": 4, "vorpal_sword": 3}
	for id, want := range expected {
		if counts[id] != want {
			t.Errorf("Expected %d %q tokens, got %d", want, id, counts[id])
		}
	}
}

func TestPool(t *testing.T) {
	pool := Pool([]TreasureDef{{ID: "a", Count: 2}, {ID: "b", Count: 0}, {ID: "c", Count: 1}})
	if len(pool) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(pool))
	}
	if pool[0].ID != "a" || pool[1].ID != "a" || pool[2].ID != "c" {
		t.Errorf("Unexpected pool order: %v", pool)
	}
}

func TestFaceRegistryCoversDice(t *testing.T) {
	registry, err := LoadFaceRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	for n := 0; n < dice.Ally(0).Faces(); n++ {
		a := dice.Ally(n)
		def := registry.Ally(a.ID())
		if def == nil {
			t.Errorf("Ally face %q not found", a.ID())
		} else if def.Name != a.String() {
			t.Errorf("Expected name %q, got %q", a.String(), def.Name)
		}
	}
	for n := 0; n < dice.Monster(0).Faces(); n++ {
		m := dice.Monster(n)
		if def := registry.Monster(m.ID()); def == nil {
			t.Errorf("Monster face %q not found", m.ID())
		}
	}

	if registry.Monster("orc") != nil {
		t.Error("Unknown face should return nil")
	}
}

func TestLoadFSErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": {Data: []byte("{not json")},
	}

	if _, err := LoadFS[FacesFile](fsys, "missing.json"); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadFS[FacesFile](fsys, "broken.json"); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestEmptyTablesAreRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"treasure.json": {Data: []byte(`{"treasures": []}`)},
	}
	file, err := LoadFS[TreasuresFile](fsys, "treasure.json")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(Pool(file.Treasures)) != 0 {
		t.Error("Expected empty pool")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#GGGGGG", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestFaceDefMethods(t *testing.T) {
	def := FaceDef{
		ID:    "test",
		Name:  "Test Face",
		Glyph: "T",
		Color: "#FF0000",
	}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if def.TCellColor() != MustParseHexColor("#FF0000") {
		t.Error("TCellColor did not match the parsed hex color")
	}

	empty := FaceDef{Color: "nope"}
	if empty.GlyphRune() != '?' {
		t.Errorf("Expected fallback glyph '?', got %c", empty.GlyphRune())
	}
}
