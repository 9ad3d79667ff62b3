package gamedata

import "github.com/gdamore/tcell/v2"

// FaceDef describes how a die face is presented.
type FaceDef struct {
	ID     string `json:"id"`               // Matches dice.Ally.ID / dice.Monster.ID (e.g., "goblin")
	Name   string `json:"name"`             // Display name (e.g., "Goblin")
	Glyph  string `json:"glyph"`            // Single character for rendering (e.g., "g")
	Color  string `json:"color"`            // Hex color code (e.g., "#00FF00")
	Combat string `json:"combat,omitempty"` // What the face does in the monster phase
	Loot   string `json:"loot,omitempty"`   // What the face does in the loot phase
	Flavor string `json:"flavor,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (f *FaceDef) GlyphRune() rune {
	if len(f.Glyph) == 0 {
		return '?'
	}
	return rune(f.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (f *FaceDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(f.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// FacesFile represents the structure of faces.json.
type FacesFile struct {
	Allies   []FaceDef `json:"allies"`
	Monsters []FaceDef `json:"monsters"`
}

// LoadFaces loads face definitions from the embedded faces.json file.
func LoadFaces() (FacesFile, error) {
	return Load[FacesFile]("faces.json")
}
