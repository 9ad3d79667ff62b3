package game

import (
	"slices"

	"github.com/samdwyer/dungeondice/internal/combat"
	"github.com/samdwyer/dungeondice/internal/cursor"
	"github.com/samdwyer/dungeondice/internal/dice"
	"github.com/samdwyer/dungeondice/internal/gamedata"
)

// Cursor roles within each collection.
const (
	RosterActor  = 0 // ally being spent
	RosterReroll = 1 // party die to mark for a reroll

	DungeonTarget = 0 // monster or loot the actor acts on
	DungeonReroll = 1 // dungeon die to mark for a reroll

	GraveyardPick = 0
	RegroupPick   = 0
)

// dragonWakes is how many dragon faces wake the dragon and how many
// companions it takes to slay it.
const dragonWakes = 3

// RegroupChoice is an option offered between levels.
type RegroupChoice int

const (
	// ChoiceDescend continues to the next, larger level.
	ChoiceDescend RegroupChoice = iota
	// ChoiceRetire banks the level reached and ends the delve.
	ChoiceRetire
)

// String returns a human-readable choice name.
func (c RegroupChoice) String() string {
	switch c {
	case ChoiceDescend:
		return "Descend"
	case ChoiceRetire:
		return "Retire"
	default:
		return "Unknown"
	}
}

type (
	allyInvariants    = []cursor.Invariant[dice.Ally]
	monsterInvariants = []cursor.Invariant[dice.Monster]
	regroupInvariants = []cursor.Invariant[RegroupChoice]
)

// Rules is the static configuration of a game: the legality policy installed
// by each phase, the affects-all matchups and the treasure pool composition.
// It is built once and never modified.
type Rules struct {
	monsterRoster        allyInvariants
	lootRosterAny        allyInvariants
	lootRosterCompanions allyInvariants
	dragonRoster         allyInvariants
	graveyard            allyInvariants

	monsterDungeon     monsterInvariants
	lootDungeonAny     monsterInvariants
	lootDungeonChests  monsterInvariants
	lootDungeonPotions monsterInvariants

	regroupAny        regroupInvariants
	regroupRetireOnly regroupInvariants

	matchups combat.Table
	treasure []gamedata.TreasureDef
}

// NewRules builds the rule tables around the given matchups and treasure pool.
// The pool holds one entry per token.
func NewRules(matchups combat.Table, treasure []gamedata.TreasureDef) *Rules {
	anyAlly := cursor.Always[dice.Ally]
	notActor := func(c *cursor.Cursor[dice.Ally], i int, _ dice.Ally) bool {
		return i != c.Index(RosterActor)
	}
	companion := func(_ *cursor.Cursor[dice.Ally], _ int, a dice.Ally) bool {
		return a.IsCompanion()
	}
	faceIs := func(want dice.Monster) cursor.Invariant[dice.Monster] {
		return func(_ *cursor.Cursor[dice.Monster], _ int, m dice.Monster) bool { return m == want }
	}
	hostile := func(_ *cursor.Cursor[dice.Monster], _ int, m dice.Monster) bool {
		return m.IsHostile()
	}
	loot := func(_ *cursor.Cursor[dice.Monster], _ int, m dice.Monster) bool {
		return m.IsLoot()
	}
	notDragon := func(_ *cursor.Cursor[dice.Monster], _ int, m dice.Monster) bool {
		return m != dice.Dragon
	}
	retire := func(_ *cursor.Cursor[RegroupChoice], _ int, c RegroupChoice) bool {
		return c == ChoiceRetire
	}

	return &Rules{
		monsterRoster:        allyInvariants{anyAlly, notActor},
		lootRosterAny:        allyInvariants{anyAlly, notActor},
		lootRosterCompanions: allyInvariants{companion, notActor},
		dragonRoster:         allyInvariants{companion, notActor},
		graveyard:            allyInvariants{anyAlly},

		monsterDungeon:     monsterInvariants{hostile, notDragon},
		lootDungeonAny:     monsterInvariants{loot, notDragon},
		lootDungeonChests:  monsterInvariants{faceIs(dice.Chest), notDragon},
		lootDungeonPotions: monsterInvariants{faceIs(dice.Potion), notDragon},

		regroupAny:        regroupInvariants{cursor.Always[RegroupChoice]},
		regroupRetireOnly: regroupInvariants{retire},

		matchups: slices.Clone(matchups),
		treasure: slices.Clone(treasure),
	}
}

// DefaultRules loads the embedded treasure pool and pairs it with the
// default matchup table.
func DefaultRules() (*Rules, error) {
	pool, err := gamedata.LoadTreasurePool()
	if err != nil {
		return nil, err
	}
	return NewRules(combat.DefaultTable(), pool), nil
}
