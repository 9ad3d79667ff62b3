package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondice/internal/dice"
)

// maxRedirects bounds the entry loop. The longest legal chain is
// Setup → Monster → Loot → Dragon → Empty/Regroup, well under this.
const maxRedirects = 8

// Confirm runs the exit action of the current phase, moves to the next phase
// and settles there. It is a no-op when CanConfirm is false.
func (e *Engine) Confirm(ctx context.Context) Phase {
	ctx, span := e.tracer.Start(ctx, "phase.confirm")
	defer span.End()

	from := e.phase
	span.SetAttributes(attribute.String("run.id", e.runID), attribute.String("phase.from", from.String()))
	if !e.CanConfirm() {
		span.SetAttributes(attribute.Bool("guarded", true))
		e.logger.Debug("confirm guarded", "phase", from.String())
		return e.phase
	}

	e.exit(ctx, from)
	e.phase = e.next(from)
	e.settle(ctx)

	span.SetAttributes(
		attribute.String("phase.to", e.phase.String()),
		attribute.Int("score", e.score),
	)
	e.logger.Debug("phase confirmed", "from", from.String(), "to", e.phase.String())
	return e.phase
}

// Cancel steps back to the previous phase without resolving anything. The
// current phase must have a retreat; check CanCancel first.
func (e *Engine) Cancel(ctx context.Context) Phase {
	ctx, span := e.tracer.Start(ctx, "phase.cancel")
	defer span.End()

	from := e.phase
	prev, ok := previous(from)
	if !ok {
		panic(fmt.Sprintf("game: no retreat from phase %s", from))
	}
	e.phase = prev
	e.settle(ctx)

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.String("phase.from", from.String()),
		attribute.String("phase.to", e.phase.String()),
	)
	e.logger.Debug("phase cancelled", "from", from.String(), "to", e.phase.String())
	return e.phase
}

// settle runs entry actions until one accepts the phase as stable.
func (e *Engine) settle(ctx context.Context) {
	for range maxRedirects {
		next, redirect := e.enter(ctx, e.phase)
		if !redirect {
			return
		}
		e.logger.Debug("phase redirected", "from", e.phase.String(), "to", next.String())
		e.phase = next
	}
	panic(fmt.Sprintf("game: phase %s did not settle after %d redirects", e.phase, maxRedirects))
}

// ============================================================================
// Entry actions
// ============================================================================

// enter prepares p for input, or returns the phase to redirect to.
func (e *Engine) enter(ctx context.Context, p Phase) (Phase, bool) {
	switch p.Kind {
	case KindSetup:
		e.startDelve(ctx)
		return MonsterSelectAlly, true
	case KindMonster:
		return e.enterMonster(p)
	case KindLoot:
		return e.enterLoot(p)
	case KindDragon:
		return e.enterDragon(p)
	case KindRegroup:
		e.enterRegroup()
		return p, false
	case KindEmpty, KindVictory:
		return p, false
	default:
		panic(fmt.Sprintf("game: unknown phase %s", p))
	}
}

func (e *Engine) enterMonster(p Phase) (Phase, bool) {
	if p != MonsterSelectAlly {
		return p, false
	}
	if !e.dungeon.Any(dice.Monster.IsHostile) {
		return LootSelectAlly, true
	}
	if e.roster.Len() == 0 {
		return Empty, true
	}
	e.roster.ReplaceInvariants(e.rules.monsterRoster)
	e.dungeon.ReplaceInvariants(e.rules.monsterDungeon)
	e.roster.SetSelectionLimit(0)
	e.dungeon.SetSelectionLimit(0)
	e.roster.ClearSelection()
	e.dungeon.ClearSelection()
	return p, false
}

func (e *Engine) enterLoot(p Phase) (Phase, bool) {
	switch p {
	case LootSelectAlly:
		if e.roster.Len() == 0 {
			return DragonSelectAlly, true
		}
		chests, potions := e.lootable()
		if !chests && !potions {
			return DragonSelectAlly, true
		}
		if potions {
			e.roster.ReplaceInvariants(e.rules.lootRosterAny)
		} else {
			e.roster.ReplaceInvariants(e.rules.lootRosterCompanions)
		}
		e.roster.ClearSelection()
		e.dungeon.ClearSelection()
		e.graveyard.ClearSelection()
		e.graveyard.SetSelectionLimit(0)
		return p, false

	case LootSelectLoot:
		_, ally := e.roster.Read(RosterActor)
		chests, potions := e.lootable()
		chests = chests && ally.OpensChests()
		switch {
		case chests && potions:
			e.dungeon.ReplaceInvariants(e.rules.lootDungeonAny)
		case chests:
			e.dungeon.ReplaceInvariants(e.rules.lootDungeonChests)
		case potions:
			e.dungeon.ReplaceInvariants(e.rules.lootDungeonPotions)
		default:
			panic(fmt.Sprintf("game: %s has no loot to act on", ally))
		}
		e.graveyard.ClearSelection()
		return p, false

	case LootSelectGraveyard:
		n := e.dungeon.Count(isPotion)
		if n == 0 {
			panic("game: graveyard selection without a potion")
		}
		e.graveyard.SetSelectionLimit(n)
		return p, false

	default:
		return p, false
	}
}

func (e *Engine) enterDragon(p Phase) (Phase, bool) {
	if p != DragonSelectAlly {
		return p, false
	}
	if e.dungeon.Count(isDragon) < dragonWakes {
		return RegroupChoose, true
	}
	if e.roster.Count(dice.Ally.IsCompanion) < dragonWakes {
		return Empty, true
	}
	e.roster.ReplaceInvariants(e.rules.dragonRoster)
	e.roster.SetSelectionLimit(dragonWakes)
	return p, false
}

func (e *Engine) enterRegroup() {
	e.roster.ClearSelection()
	e.roster.SetSelectionLimit(0)

	e.regroup.ReplaceData([]RegroupChoice{ChoiceDescend, ChoiceRetire})
	if e.level < e.cfg.MaxLevel && e.roster.Len() > 0 {
		e.regroup.ReplaceInvariants(e.rules.regroupAny)
	} else {
		e.regroup.ReplaceInvariants(e.rules.regroupRetireOnly)
	}
}

// lootable reports whether some party die could open a chest and whether a
// potion could revive anyone.
func (e *Engine) lootable() (chests, potions bool) {
	chests = e.dungeon.Any(isChest) && len(e.treasure) > 0 && e.roster.Any(dice.Ally.OpensChests)
	potions = e.dungeon.Any(isPotion) && e.graveyard.Len() > 0
	return chests, potions
}

func isChest(m dice.Monster) bool  { return m == dice.Chest }
func isPotion(m dice.Monster) bool { return m == dice.Potion }
func isDragon(m dice.Monster) bool { return m == dice.Dragon }

// ============================================================================
// Exit actions and transitions
// ============================================================================

// exit runs the resolution attached to leaving p forward.
func (e *Engine) exit(ctx context.Context, p Phase) {
	switch p {
	case MonsterConfirmReroll:
		e.resolveReroll(ctx)
	case MonsterConfirmCombat:
		e.resolveCombat(ctx)
	case LootConfirmLoot:
		e.resolveLoot(ctx)
	case LootConfirmGraveyard:
		e.resolveGraveyard(ctx)
	case DragonConfirm:
		e.resolveDragon(ctx)
	case RegroupChoose:
		if e.choice() == ChoiceDescend {
			e.startLevel(ctx)
		} else {
			e.retire(ctx)
		}
	case Empty:
		e.forfeit(ctx)
	}
}

// next computes the phase that follows p once its exit action has run.
func (e *Engine) next(p Phase) Phase {
	switch p {
	case MonsterSelectAlly:
		_, ally := e.roster.Read(RosterActor)
		if ally.GrantsReroll() {
			return MonsterSelectReroll
		}
		return MonsterSelectMonster
	case MonsterSelectReroll:
		return MonsterConfirmReroll
	case MonsterSelectMonster:
		return MonsterConfirmCombat
	case MonsterConfirmReroll, MonsterConfirmCombat:
		if e.dungeon.Any(dice.Monster.IsHostile) {
			return MonsterSelectAlly
		}
		return LootSelectAlly

	case LootSelectAlly:
		return LootSelectLoot
	case LootSelectLoot:
		_, target := e.dungeon.Read(DungeonTarget)
		switch target {
		case dice.Chest:
			return LootConfirmLoot
		case dice.Potion:
			return LootSelectGraveyard
		default:
			panic(fmt.Sprintf("game: loot target %s is not loot", target))
		}
	case LootSelectGraveyard:
		return LootConfirmGraveyard
	case LootConfirmLoot, LootConfirmGraveyard:
		if e.dungeon.Any(dice.Monster.IsLoot) {
			return LootSelectAlly
		}
		return DragonSelectAlly

	case DragonSelectAlly:
		return DragonConfirm
	case DragonConfirm:
		return RegroupChoose

	case RegroupChoose:
		if e.choice() == ChoiceDescend {
			return MonsterSelectAlly
		}
		return e.afterDelve()
	case Empty:
		return e.afterDelve()

	default:
		panic(fmt.Sprintf("game: no transition from phase %s", p))
	}
}

// previous returns the retreat target of p.
func previous(p Phase) (Phase, bool) {
	switch p {
	case MonsterSelectReroll, MonsterSelectMonster:
		return MonsterSelectAlly, true
	case MonsterConfirmReroll:
		return MonsterSelectReroll, true
	case MonsterConfirmCombat:
		return MonsterSelectMonster, true
	case LootSelectAlly:
		return DragonSelectAlly, true
	case LootSelectLoot:
		return LootSelectAlly, true
	case LootConfirmLoot, LootSelectGraveyard:
		return LootSelectLoot, true
	case LootConfirmGraveyard:
		return LootSelectGraveyard, true
	case DragonConfirm:
		return DragonSelectAlly, true
	default:
		return Phase{}, false
	}
}

func (e *Engine) choice() RegroupChoice {
	_, c := e.regroup.Read(RegroupPick)
	return c
}

func (e *Engine) afterDelve() Phase {
	if e.delve >= e.cfg.Delves {
		return Victory
	}
	return Setup
}
