package gamedata

// TreasureDef defines a treasure token kind and how many copies the pool holds.
type TreasureDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// TreasuresFile represents the structure of treasure.json.
type TreasuresFile struct {
	Treasures []TreasureDef `json:"treasures"`
}

// LoadTreasures loads treasure definitions from the embedded treasure.json file.
func LoadTreasures() ([]TreasureDef, error) {
	file, err := Load[TreasuresFile]("treasure.json")
	if err != nil {
		return nil, err
	}
	return file.Treasures, nil
}

// Pool expands treasure definitions into one token per copy, in definition order.
func Pool(defs []TreasureDef) []TreasureDef {
	total := 0
	for _, d := range defs {
		total += d.Count
	}
	pool := make([]TreasureDef, 0, total)
	for _, d := range defs {
		for i := 0; i < d.Count; i++ {
			pool = append(pool, d)
		}
	}
	return pool
}
