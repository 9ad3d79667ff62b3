package gamedata

import "errors"

var (
	// ErrNoFaces is returned when faces.json defines no ally or no monster faces.
	ErrNoFaces = errors.New("no faces loaded from faces.json")
	// ErrNoTreasure is returned when treasure.json yields an empty pool.
	ErrNoTreasure = errors.New("no treasure loaded from treasure.json")
)

// FaceRegistry holds loaded face definitions keyed by ID.
type FaceRegistry struct {
	allies   map[string]*FaceDef
	monsters map[string]*FaceDef
}

// NewFaceRegistry creates a registry from loaded face definitions.
func NewFaceRegistry(file FacesFile) *FaceRegistry {
	r := &FaceRegistry{
		allies:   make(map[string]*FaceDef, len(file.Allies)),
		monsters: make(map[string]*FaceDef, len(file.Monsters)),
	}
	for i := range file.Allies {
		r.allies[file.Allies[i].ID] = &file.Allies[i]
	}
	for i := range file.Monsters {
		r.monsters[file.Monsters[i].ID] = &file.Monsters[i]
	}
	return r
}

// LoadFaceRegistry loads and creates a registry from the embedded faces.json.
func LoadFaceRegistry() (*FaceRegistry, error) {
	file, err := LoadFaces()
	if err != nil {
		return nil, err
	}
	if len(file.Allies) == 0 || len(file.Monsters) == 0 {
		return nil, ErrNoFaces
	}
	return NewFaceRegistry(file), nil
}

// Ally returns the ally face with the given ID, or nil if not found.
func (r *FaceRegistry) Ally(id string) *FaceDef {
	return r.allies[id]
}

// Monster returns the dungeon face with the given ID, or nil if not found.
func (r *FaceRegistry) Monster(id string) *FaceDef {
	return r.monsters[id]
}

// =============================================================================
// Treasure pool
// =============================================================================

// LoadTreasurePool loads treasure.json and expands it into a token pool.
func LoadTreasurePool() ([]TreasureDef, error) {
	defs, err := LoadTreasures()
	if err != nil {
		return nil, err
	}
	pool := Pool(defs)
	if len(pool) == 0 {
		return nil, ErrNoTreasure
	}
	return pool, nil
}

// MustLoadTreasurePool loads the treasure pool, panicking on error.
func MustLoadTreasurePool() []TreasureDef {
	pool, err := LoadTreasurePool()
	if err != nil {
		panic(err)
	}
	return pool
}
