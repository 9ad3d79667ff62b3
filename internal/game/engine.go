package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeondice/internal/cursor"
	"github.com/samdwyer/dungeondice/internal/dice"
	"github.com/samdwyer/dungeondice/internal/gamedata"
	"github.com/samdwyer/dungeondice/internal/logging"
	"github.com/samdwyer/dungeondice/internal/telemetry"
)

// Target names one addressable cursor: a collection plus a role.
type Target int

const (
	TargetAlly          Target = iota // roster actor
	TargetRerollAlly                  // roster reroll marker
	TargetMonster                     // dungeon target
	TargetRerollDungeon               // dungeon reroll marker
	TargetGraveyard
	TargetRegroup
)

// String returns a human-readable target name.
func (t Target) String() string {
	switch t {
	case TargetAlly:
		return "ally"
	case TargetRerollAlly:
		return "reroll_ally"
	case TargetMonster:
		return "monster"
	case TargetRerollDungeon:
		return "reroll_dungeon"
	case TargetGraveyard:
		return "graveyard"
	case TargetRegroup:
		return "regroup"
	default:
		return "unknown"
	}
}

// Engine owns the whole turn state of a run. It is single-threaded: every
// command runs to completion before the next one is accepted.
type Engine struct {
	cfg    Config
	rules  *Rules
	src    dice.Source
	logger *slog.Logger
	tracer trace.Tracer
	runID  string

	phase Phase
	delve int
	level int
	score int

	roster    *cursor.Cursor[dice.Ally]
	dungeon   *cursor.Cursor[dice.Monster]
	graveyard *cursor.Cursor[dice.Ally]
	regroup   *cursor.Cursor[RegroupChoice]

	treasure  []gamedata.TreasureDef
	inventory []gamedata.TreasureDef
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer sets the tracer used for phase and resolution spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// New creates an engine and starts the first delve. src supplies every die
// roll and treasure draw, so a seeded source makes the run reproducible.
func New(ctx context.Context, cfg Config, rules *Rules, src dice.Source, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		rules:  rules,
		src:    src,
		logger: logging.NewNop(),
		tracer: telemetry.Tracer("engine"),
		runID:  uuid.NewString(),
		phase:  Setup,

		roster:    cursor.New(nil, rules.monsterRoster),
		dungeon:   cursor.New(nil, rules.monsterDungeon),
		graveyard: cursor.New(nil, rules.graveyard),
		regroup:   cursor.New(nil, rules.regroupAny),
		treasure:  slices.Clone(rules.treasure),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("run_id", e.runID)

	ctx, span := e.tracer.Start(ctx, "game.init")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", e.runID),
		attribute.Int("config.party_size", cfg.PartySize),
		attribute.Int("config.delves", cfg.Delves),
		attribute.Int("treasure.pool", len(e.treasure)),
	)

	e.settle(ctx)
	return e
}

// ============================================================================
// Queries
// ============================================================================

// Phase returns the current stable phase.
func (e *Engine) Phase() Phase { return e.phase }

// Roster returns a copy of the party dice still available.
func (e *Engine) Roster() []dice.Ally { return e.roster.Items() }

// Dungeon returns a copy of the dungeon dice on the table.
func (e *Engine) Dungeon() []dice.Monster { return e.dungeon.Items() }

// Graveyard returns a copy of the spent party dice.
func (e *Engine) Graveyard() []dice.Ally { return e.graveyard.Items() }

// RegroupOptions returns the choices offered between levels.
func (e *Engine) RegroupOptions() []RegroupChoice { return e.regroup.Items() }

// Inventory returns the treasure collected so far this run.
func (e *Engine) Inventory() []gamedata.TreasureDef { return slices.Clone(e.inventory) }

// TreasureLeft returns how many tokens remain in the pool.
func (e *Engine) TreasureLeft() int { return len(e.treasure) }

// Score returns the run score.
func (e *Engine) Score() int { return e.score }

// Delve returns the current delve, starting at 1.
func (e *Engine) Delve() int { return e.delve }

// Level returns the current level within the delve, starting at 1.
func (e *Engine) Level() int { return e.level }

// RunID identifies this run in logs and traces.
func (e *Engine) RunID() string { return e.runID }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Targets returns the cursors the player can move in the current phase.
func (e *Engine) Targets() []Target {
	switch e.phase {
	case MonsterSelectAlly, LootSelectAlly, DragonSelectAlly:
		return []Target{TargetAlly}
	case MonsterSelectReroll:
		if e.roster.Len() > 1 {
			return []Target{TargetRerollAlly, TargetRerollDungeon}
		}
		return []Target{TargetRerollDungeon}
	case MonsterSelectMonster, LootSelectLoot:
		return []Target{TargetMonster}
	case LootSelectGraveyard:
		return []Target{TargetGraveyard}
	case RegroupChoose:
		return []Target{TargetRegroup}
	default:
		return nil
	}
}

// CanToggle reports whether ToggleSelect is accepted for t in the current phase.
func (e *Engine) CanToggle(t Target) bool {
	switch e.phase {
	case MonsterSelectReroll:
		return slices.Contains(e.Targets(), t)
	case LootSelectGraveyard:
		return t == TargetGraveyard
	case DragonSelectAlly:
		return t == TargetAlly
	default:
		return false
	}
}

// Cursor returns the index the target's cursor rests on.
func (e *Engine) Cursor(t Target) int {
	switch t {
	case TargetAlly:
		return e.roster.Index(RosterActor)
	case TargetRerollAlly:
		return e.roster.Index(RosterReroll)
	case TargetMonster:
		return e.dungeon.Index(DungeonTarget)
	case TargetRerollDungeon:
		return e.dungeon.Index(DungeonReroll)
	case TargetGraveyard:
		return e.graveyard.Index(GraveyardPick)
	case TargetRegroup:
		return e.regroup.Index(RegroupPick)
	default:
		panic(fmt.Sprintf("game: unknown target %d", int(t)))
	}
}

// Selection returns the marked indices of the collection t belongs to.
func (e *Engine) Selection(t Target) []int {
	switch t {
	case TargetAlly, TargetRerollAlly:
		return e.roster.Selected()
	case TargetMonster, TargetRerollDungeon:
		return e.dungeon.Selected()
	case TargetGraveyard:
		return e.graveyard.Selected()
	case TargetRegroup:
		return e.regroup.Selected()
	default:
		panic(fmt.Sprintf("game: unknown target %d", int(t)))
	}
}

// SelectionLimit returns the selection cap of the collection t belongs to.
func (e *Engine) SelectionLimit(t Target) int {
	switch t {
	case TargetAlly, TargetRerollAlly:
		return e.roster.SelectionLimit()
	case TargetMonster, TargetRerollDungeon:
		return e.dungeon.SelectionLimit()
	case TargetGraveyard:
		return e.graveyard.SelectionLimit()
	default:
		return 0
	}
}

// AffectsAll reports whether the current actor would clear every die that
// matches the current target. Only meaningful while both collections are
// non-empty.
func (e *Engine) AffectsAll() bool {
	if e.roster.Len() == 0 || e.dungeon.Len() == 0 {
		return false
	}
	_, ally := e.roster.Read(RosterActor)
	_, target := e.dungeon.Read(DungeonTarget)
	return e.rules.matchups.AffectsAll(ally, target)
}

// CanConfirm reports whether Confirm would leave the current phase.
func (e *Engine) CanConfirm() bool {
	switch e.phase {
	case Victory, Setup:
		return false
	case DragonSelectAlly:
		return e.roster.SelectionLen() == dragonWakes
	case LootSelectGraveyard:
		return e.graveyard.SelectionLen() > 0
	default:
		return true
	}
}

// CanCancel reports whether the current phase has a defined retreat.
func (e *Engine) CanCancel() bool {
	_, ok := previous(e.phase)
	return ok
}

// ============================================================================
// Commands
// ============================================================================

// AdvanceSelection moves the target's cursor to the next legal index.
func (e *Engine) AdvanceSelection(t Target) {
	e.requireLive(t)
	e.step(t, true)
}

// RetreatSelection moves the target's cursor to the previous legal index.
func (e *Engine) RetreatSelection(t Target) {
	e.requireLive(t)
	e.step(t, false)
}

// ToggleSelect marks or unmarks the index under the target's cursor.
// It returns false when a mark was refused at the selection limit.
func (e *Engine) ToggleSelect(t Target) bool {
	if !e.CanToggle(t) {
		panic(fmt.Sprintf("game: %s cannot toggle in phase %s", t, e.phase))
	}
	switch t {
	case TargetAlly:
		return e.roster.ToggleSelect(RosterActor)
	case TargetRerollAlly:
		return e.roster.ToggleSelect(RosterReroll)
	case TargetRerollDungeon:
		return e.dungeon.ToggleSelect(DungeonReroll)
	case TargetGraveyard:
		return e.graveyard.ToggleSelect(GraveyardPick)
	default:
		panic(fmt.Sprintf("game: %s has no selection", t))
	}
}

func (e *Engine) requireLive(t Target) {
	if !slices.Contains(e.Targets(), t) {
		panic(fmt.Sprintf("game: %s is not live in phase %s", t, e.phase))
	}
}

func (e *Engine) step(t Target, forward bool) {
	switch t {
	case TargetAlly:
		move(e.roster, RosterActor, forward)
	case TargetRerollAlly:
		move(e.roster, RosterReroll, forward)
	case TargetMonster:
		move(e.dungeon, DungeonTarget, forward)
	case TargetRerollDungeon:
		move(e.dungeon, DungeonReroll, forward)
	case TargetGraveyard:
		move(e.graveyard, GraveyardPick, forward)
	case TargetRegroup:
		move(e.regroup, RegroupPick, forward)
	}
}

func move[T any](c *cursor.Cursor[T], id int, forward bool) {
	if forward {
		c.Advance(id)
	} else {
		c.Retreat(id)
	}
}
