// Package game implements the turn engine: the phase state machine, the
// dice collections it drives and the resolution of every action.
package game

// Kind is the top-level node of the phase state machine.
type Kind int

const (
	// KindSetup deals a fresh party at the start of a delve. Never stable.
	KindSetup Kind = iota
	// KindMonster is the encounter where allies defeat hostile dungeon faces.
	KindMonster
	// KindLoot is where allies open chests and quaff potions.
	KindLoot
	// KindDragon is the showdown with three or more dragon faces.
	KindDragon
	// KindEmpty means the band has nothing left to act with and the delve is lost.
	KindEmpty
	// KindRegroup is the choice between descending and retiring.
	KindRegroup
	// KindVictory ends the run once every delve is over.
	KindVictory
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindMonster:
		return "monster"
	case KindLoot:
		return "loot"
	case KindDragon:
		return "dragon"
	case KindEmpty:
		return "empty"
	case KindRegroup:
		return "regroup"
	case KindVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Step is the sub-state within a multi-step kind.
type Step int

const (
	StepNone Step = iota
	StepSelectAlly
	StepSelectReroll
	StepConfirmReroll
	StepSelectMonster
	StepConfirmCombat
	StepSelectLoot
	StepConfirmLoot
	StepSelectGraveyard
	StepConfirmGraveyard
	StepConfirm
	StepChoose
)

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepSelectAlly:
		return "select_ally"
	case StepSelectReroll:
		return "select_reroll"
	case StepConfirmReroll:
		return "confirm_reroll"
	case StepSelectMonster:
		return "select_monster"
	case StepConfirmCombat:
		return "confirm_combat"
	case StepSelectLoot:
		return "select_loot"
	case StepConfirmLoot:
		return "confirm_loot"
	case StepSelectGraveyard:
		return "select_graveyard"
	case StepConfirmGraveyard:
		return "confirm_graveyard"
	case StepConfirm:
		return "confirm"
	case StepChoose:
		return "choose"
	default:
		return "unknown"
	}
}

// Phase is the current node of the nested state machine.
type Phase struct {
	Kind Kind
	Step Step
}

// String returns "kind.step", or just the kind for single-step kinds.
func (p Phase) String() string {
	if p.Step == StepNone {
		return p.Kind.String()
	}
	return p.Kind.String() + "." + p.Step.String()
}

// Every reachable phase.
var (
	Setup = Phase{KindSetup, StepNone}

	MonsterSelectAlly    = Phase{KindMonster, StepSelectAlly}
	MonsterSelectReroll  = Phase{KindMonster, StepSelectReroll}
	MonsterConfirmReroll = Phase{KindMonster, StepConfirmReroll}
	MonsterSelectMonster = Phase{KindMonster, StepSelectMonster}
	MonsterConfirmCombat = Phase{KindMonster, StepConfirmCombat}

	LootSelectAlly       = Phase{KindLoot, StepSelectAlly}
	LootSelectLoot       = Phase{KindLoot, StepSelectLoot}
	LootConfirmLoot      = Phase{KindLoot, StepConfirmLoot}
	LootSelectGraveyard  = Phase{KindLoot, StepSelectGraveyard}
	LootConfirmGraveyard = Phase{KindLoot, StepConfirmGraveyard}

	DragonSelectAlly = Phase{KindDragon, StepSelectAlly}
	DragonConfirm    = Phase{KindDragon, StepConfirm}

	Empty         = Phase{KindEmpty, StepNone}
	RegroupChoose = Phase{KindRegroup, StepChoose}
	Victory       = Phase{KindVictory, StepNone}
)
