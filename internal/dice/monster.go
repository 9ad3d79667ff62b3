package dice

// Monster is a face of a dungeon die.
type Monster int

const (
	Goblin Monster = iota
	Skeleton
	Ooze
	Dragon
	Chest
	Potion
)

// Faces returns the number of dungeon die faces.
func (Monster) Faces() int { return 6 }

// Nth returns the dungeon face with index n.
func (Monster) Nth(n int) Monster {
	checkFace("monster", n, Monster(0).Faces())
	return Monster(n)
}

// String returns the face name.
func (m Monster) String() string {
	switch m {
	case Goblin:
		return "Goblin"
	case Skeleton:
		return "Skeleton"
	case Ooze:
		return "Ooze"
	case Dragon:
		return "Dragon"
	case Chest:
		return "Chest"
	case Potion:
		return "Potion"
	default:
		return "Unknown"
	}
}

// ID returns the identifier used by the face tables in gamedata.
func (m Monster) ID() string {
	switch m {
	case Goblin:
		return "goblin"
	case Skeleton:
		return "skeleton"
	case Ooze:
		return "ooze"
	case Dragon:
		return "dragon"
	case Chest:
		return "chest"
	case Potion:
		return "potion"
	default:
		return "unknown"
	}
}

// IsHostile reports whether the face must be defeated in the monster phase.
func (m Monster) IsHostile() bool {
	return m == Goblin || m == Skeleton || m == Ooze
}

// IsLoot reports whether the face is a chest or a potion.
func (m Monster) IsLoot() bool {
	return m == Chest || m == Potion
}
