package game

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeondice/internal/dice"
)

// startDelve deals a fresh party and opens level 1.
func (e *Engine) startDelve(ctx context.Context) {
	ctx, span := e.tracer.Start(ctx, "delve.start")
	defer span.End()

	e.delve++
	e.level = 0
	e.roster.ReplaceData(dice.RollN[dice.Ally](e.src, e.cfg.PartySize))
	e.graveyard.ReplaceData(nil)

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("delve", e.delve),
		attribute.Int("party.size", e.roster.Len()),
	)
	e.logger.Info("delve started", "delve", e.delve, "party", e.roster.Len())

	e.startLevel(ctx)
}

// startLevel rolls one dungeon die per level, capped by the dice available.
func (e *Engine) startLevel(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "level.start")
	defer span.End()

	e.level++
	e.dungeon.ReplaceData(dice.RollN[dice.Monster](e.src, min(e.level, e.cfg.DungeonDice)))

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("delve", e.delve),
		attribute.Int("level", e.level),
		attribute.Int("dungeon.size", e.dungeon.Len()),
	)
	e.logger.Info("level started", "delve", e.delve, "level", e.level, "dungeon", e.dungeon.Len())
}

// bury moves the roster die at index i to the graveyard.
func (e *Engine) bury(i int) {
	e.graveyard.Append(e.roster.RemoveAt(i))
}

// resolveCombat spends the actor on the target. A matching ally clears every
// die showing the target face; otherwise only the targeted die goes.
func (e *Engine) resolveCombat(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "resolve.combat")
	defer span.End()

	actor, ally := e.roster.Read(RosterActor)
	ti, target := e.dungeon.Read(DungeonTarget)
	sweep := e.rules.matchups.AffectsAll(ally, target)

	before := e.dungeon.Len()
	if sweep {
		e.dungeon.RetainWhere(func(_ int, m dice.Monster) bool { return m != target })
	} else {
		e.dungeon.RemoveAt(ti)
	}
	e.bury(actor)

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.String("ally", ally.ID()),
		attribute.String("target", target.ID()),
		attribute.Bool("affects_all", sweep),
		attribute.Int("defeated", before-e.dungeon.Len()),
	)
	e.logger.Debug("combat resolved", "ally", ally.ID(), "target", target.ID(), "defeated", before-e.dungeon.Len())
}

// resolveReroll resamples every marked die in both collections and spends
// the actor.
func (e *Engine) resolveReroll(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "resolve.reroll")
	defer span.End()

	actor, ally := e.roster.Read(RosterActor)
	party := e.roster.Selected()
	monsters := e.dungeon.Selected()

	for _, i := range party {
		e.roster.MutateValue(i, dice.Roll[dice.Ally](e.src))
	}
	for _, i := range monsters {
		e.dungeon.MutateValue(i, dice.Roll[dice.Monster](e.src))
	}
	e.roster.ClearSelection()
	e.dungeon.ClearSelection()
	e.bury(actor)

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.String("ally", ally.ID()),
		attribute.Int("rerolled.party", len(party)),
		attribute.Int("rerolled.dungeon", len(monsters)),
	)
	e.logger.Debug("reroll resolved", "party", len(party), "dungeon", len(monsters))
}

// resolveLoot opens the targeted chest: one token moves from the pool to the
// inventory and scores a point.
func (e *Engine) resolveLoot(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "resolve.loot")
	defer span.End()

	actor, ally := e.roster.Read(RosterActor)
	ti, _ := e.dungeon.Read(DungeonTarget)

	token, rest := dice.Draw(e.src, e.treasure)
	e.treasure = rest
	e.inventory = append(e.inventory, token)
	e.dungeon.RemoveAt(ti)
	e.bury(actor)
	e.score++

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.String("ally", ally.ID()),
		attribute.String("treasure", token.ID),
		attribute.Int("treasure.left", len(e.treasure)),
		attribute.Int("score", e.score),
	)
	e.logger.Info("chest opened", "ally", ally.ID(), "treasure", token.ID, "score", e.score)
}

// resolveGraveyard revives every marked graveyard die into the roster,
// consuming one potion each, and spends the actor.
func (e *Engine) resolveGraveyard(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "resolve.graveyard")
	defer span.End()

	actor, ally := e.roster.Read(RosterActor)
	marked := e.graveyard.Selected()

	revived := e.graveyard.RetainWhere(func(i int, _ dice.Ally) bool {
		return !slices.Contains(marked, i)
	})
	e.graveyard.ClearSelection()
	for _, a := range revived {
		e.roster.Append(a)
	}

	quaffed := 0
	e.dungeon.RetainWhere(func(_ int, m dice.Monster) bool {
		if m == dice.Potion && quaffed < len(revived) {
			quaffed++
			return false
		}
		return true
	})
	e.bury(actor)

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.String("ally", ally.ID()),
		attribute.Int("revived", len(revived)),
	)
	e.logger.Info("potions quaffed", "ally", ally.ID(), "revived", len(revived))
}

// resolveDragon removes the three marked companions for good, slays every
// dragon face and scores a point.
func (e *Engine) resolveDragon(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "resolve.dragon")
	defer span.End()

	marked := e.roster.Selected()
	spent := e.roster.RetainWhere(func(i int, _ dice.Ally) bool {
		return !slices.Contains(marked, i)
	})
	e.roster.ClearSelection()
	e.roster.SetSelectionLimit(0)
	slain := len(e.dungeon.RetainWhere(func(_ int, m dice.Monster) bool { return m != dice.Dragon }))
	e.score++

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("spent", len(spent)),
		attribute.Int("dragons", slain),
		attribute.Int("score", e.score),
	)
	e.logger.Info("dragon slain", "spent", len(spent), "dragons", slain, "score", e.score)
}

// retire banks the level reached.
func (e *Engine) retire(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "delve.retire")
	defer span.End()

	e.score += e.level

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("delve", e.delve),
		attribute.Int("level", e.level),
		attribute.Int("score", e.score),
	)
	e.logger.Info("delve retired", "delve", e.delve, "level", e.level, "score", e.score)
}

// forfeit ends a lost delve without banking anything.
func (e *Engine) forfeit(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "delve.forfeit")
	defer span.End()

	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("delve", e.delve),
		attribute.Int("level", e.level),
	)
	e.logger.Info("delve lost", "delve", e.delve, "level", e.level)
}
