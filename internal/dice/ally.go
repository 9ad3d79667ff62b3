package dice

// Ally is a face of a party die.
type Ally int

const (
	Fighter Ally = iota
	Cleric
	Mage
	Champion
	Thief
	Scroll
)

// Faces returns the number of party die faces.
func (Ally) Faces() int { return 6 }

// Nth returns the party face with index n.
func (Ally) Nth(n int) Ally {
	checkFace("ally", n, Ally(0).Faces())
	return Ally(n)
}

// String returns the face name.
func (a Ally) String() string {
	switch a {
	case Fighter:
		return "Fighter"
	case Cleric:
		return "Cleric"
	case Mage:
		return "Mage"
	case Champion:
		return "Champion"
	case Thief:
		return "Thief"
	case Scroll:
		return "Scroll"
	default:
		return "Unknown"
	}
}

// ID returns the identifier used by the face tables in gamedata.
func (a Ally) ID() string {
	switch a {
	case Fighter:
		return "fighter"
	case Cleric:
		return "cleric"
	case Mage:
		return "mage"
	case Champion:
		return "champion"
	case Thief:
		return "thief"
	case Scroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// IsCompanion reports whether the face is a companion rather than a scroll.
func (a Ally) IsCompanion() bool {
	return a != Scroll
}

// GrantsReroll reports whether spending this ally rerolls dice instead of fighting.
func (a Ally) GrantsReroll() bool {
	return a == Scroll
}

// OpensChests reports whether this ally may open a chest.
func (a Ally) OpensChests() bool {
	return a.IsCompanion()
}
