// Package combat provides the matchup table that decides whether spending an
// ally clears a single die or every die showing the targeted face.
package combat

import "github.com/samdwyer/dungeondice/internal/dice"

// Matchup pairs an ally face with a dungeon face it sweeps entirely.
// AnyAlly and AnyMonster turn the respective side into a wildcard.
type Matchup struct {
	Ally       dice.Ally
	Monster    dice.Monster
	AnyAlly    bool
	AnyMonster bool
}

// Matches reports whether the matchup covers the given pair.
func (m Matchup) Matches(a dice.Ally, target dice.Monster) bool {
	return (m.AnyAlly || m.Ally == a) && (m.AnyMonster || m.Monster == target)
}

// Table is an immutable list of affects-all matchups.
type Table []Matchup

// DefaultTable returns the standard matchups:
//   - Fighter sweeps Goblins, Cleric sweeps Skeletons, Mage sweeps Oozes
//   - the Champion sweeps anything
//   - the Thief sweeps Chests
//   - any ally sweeps Potions
func DefaultTable() Table {
	return Table{
		{Ally: dice.Fighter, Monster: dice.Goblin},
		{Ally: dice.Cleric, Monster: dice.Skeleton},
		{Ally: dice.Mage, Monster: dice.Ooze},
		{Ally: dice.Champion, AnyMonster: true},
		{Ally: dice.Thief, Monster: dice.Chest},
		{Monster: dice.Potion, AnyAlly: true},
	}
}

// AffectsAll reports whether ally a clears every die equal to target.
func (t Table) AffectsAll(a dice.Ally, target dice.Monster) bool {
	for _, m := range t {
		if m.Matches(a, target) {
			return true
		}
	}
	return false
}
