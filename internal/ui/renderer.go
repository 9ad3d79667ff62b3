package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeondice/internal/dice"
	"github.com/samdwyer/dungeondice/internal/game"
	"github.com/samdwyer/dungeondice/internal/gamedata"
)

// View is the read side of the engine the renderer draws from.
type View interface {
	Phase() game.Phase
	Roster() []dice.Ally
	Dungeon() []dice.Monster
	Graveyard() []dice.Ally
	Inventory() []gamedata.TreasureDef
	RegroupOptions() []game.RegroupChoice
	Score() int
	Delve() int
	Level() int
	TreasureLeft() int
	Config() game.Config
	Targets() []game.Target
	Cursor(t game.Target) int
	Selection(t game.Target) []int
	SelectionLimit(t game.Target) int
	AffectsAll() bool
	CanConfirm() bool
	CanCancel() bool
}

const (
	labelWidth = 11
	cellWidth  = 3
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFocus   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMarked  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Renderer draws the engine state.
type Renderer struct {
	screen *Screen
	faces  *gamedata.FaceRegistry
}

// NewRenderer creates a renderer that styles dice from the face registry.
func NewRenderer(screen *Screen, faces *gamedata.FaceRegistry) *Renderer {
	return &Renderer{screen: screen, faces: faces}
}

// Render draws the whole frame. focus is the target arrow keys move.
func (r *Renderer) Render(v View, focus game.Target) {
	r.screen.Clear()

	r.renderHeader(v, 0)

	y := 2
	r.renderAllies(v, y, "Party", v.Roster(), rosterTargets(v), focus)
	y += 2
	r.renderMonsters(v, y, focus)
	y += 2
	r.renderAllies(v, y, "Graveyard", v.Graveyard(), graveyardTargets(v), focus)
	y += 2
	r.renderInventory(v, y)
	y += 2
	if v.Phase().Kind == game.KindRegroup {
		r.renderRegroup(v, y)
		y += 2
	}

	r.screen.DrawText(0, y, Prompt(v), stylePrompt)
	r.screen.DrawText(0, y+2, helpLine(v), styleDim)

	r.screen.Show()
}

func (r *Renderer) renderHeader(v View, y int) {
	cfg := v.Config()
	header := fmt.Sprintf("Delve %d/%d  Level %d/%d  Score %d  Treasure %d",
		v.Delve(), cfg.Delves, v.Level(), cfg.MaxLevel, v.Score(), v.TreasureLeft())
	x := r.screen.DrawText(0, y, header, styleHeader)
	r.screen.DrawText(x+2, y, "["+v.Phase().String()+"]", styleDim)
}

// rosterTargets returns the roster cursors worth drawing: the live ones and
// the actor while its action is pending.
func rosterTargets(v View) []game.Target {
	var out []game.Target
	switch v.Phase() {
	case game.MonsterSelectReroll, game.MonsterConfirmReroll, game.MonsterSelectMonster, game.MonsterConfirmCombat,
		game.LootSelectLoot, game.LootConfirmLoot, game.LootSelectGraveyard, game.LootConfirmGraveyard:
		out = append(out, game.TargetAlly)
	}
	for _, t := range v.Targets() {
		if (t == game.TargetAlly || t == game.TargetRerollAlly) && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func graveyardTargets(v View) []game.Target {
	if slices.Contains(v.Targets(), game.TargetGraveyard) {
		return []game.Target{game.TargetGraveyard}
	}
	return nil
}

func (r *Renderer) renderAllies(v View, y int, label string, allies []dice.Ally, targets []game.Target, focus game.Target) {
	r.screen.DrawText(0, y, label, styleText)
	var marked []int
	if len(targets) > 0 {
		marked = v.Selection(targets[0])
	}
	for i, a := range allies {
		style, glyph := styleText, '?'
		if def := r.faces.Ally(a.ID()); def != nil {
			style, glyph = tcell.StyleDefault.Foreground(def.TCellColor()), def.GlyphRune()
		}
		r.renderDie(v, labelWidth+i*cellWidth, y, i, glyph, style, targets, marked, focus)
	}
	if len(allies) == 0 {
		r.screen.DrawText(labelWidth, y, "-", styleDim)
	}
}

func (r *Renderer) renderMonsters(v View, y int, focus game.Target) {
	r.screen.DrawText(0, y, "Dungeon", styleText)
	var targets []game.Target
	switch v.Phase() {
	case game.MonsterConfirmCombat, game.LootConfirmLoot, game.LootSelectGraveyard, game.LootConfirmGraveyard:
		targets = append(targets, game.TargetMonster)
	}
	for _, t := range v.Targets() {
		if t == game.TargetMonster || t == game.TargetRerollDungeon {
			targets = append(targets, t)
		}
	}
	var marked []int
	if len(targets) > 0 {
		marked = v.Selection(targets[0])
	}
	monsters := v.Dungeon()
	for i, m := range monsters {
		style, glyph := styleText, '?'
		if def := r.faces.Monster(m.ID()); def != nil {
			style, glyph = tcell.StyleDefault.Foreground(def.TCellColor()), def.GlyphRune()
		}
		r.renderDie(v, labelWidth+i*cellWidth, y, i, glyph, style, targets, marked, focus)
	}
	if len(monsters) == 0 {
		r.screen.DrawText(labelWidth, y, "-", styleDim)
	}
}

// renderDie draws one die as three cells: a bracket pair when a cursor rests
// on it and an asterisk when it is marked.
func (r *Renderer) renderDie(v View, x, y, i int, glyph rune, style tcell.Style, targets []game.Target, marked []int, focus game.Target) {
	left, right := ' ', ' '
	bracket := styleDim
	for _, t := range targets {
		if v.Cursor(t) != i {
			continue
		}
		left, right = '[', ']'
		if t == focus {
			bracket = styleFocus
		}
	}
	if slices.Contains(marked, i) {
		style = style.Underline(true).Bold(true)
		if right == ' ' {
			right = '*'
			bracket = styleMarked
		}
	}
	r.screen.SetContent(x, y, left, bracket)
	r.screen.SetContent(x+1, y, glyph, style)
	r.screen.SetContent(x+2, y, right, bracket)
}

func (r *Renderer) renderInventory(v View, y int) {
	r.screen.DrawText(0, y, "Treasure", styleText)
	inv := v.Inventory()
	if len(inv) == 0 {
		r.screen.DrawText(labelWidth, y, "-", styleDim)
		return
	}
	names := make([]string, len(inv))
	for i, t := range inv {
		names[i] = t.Name
	}
	r.screen.DrawText(labelWidth, y, strings.Join(names, ", "), styleText)
}

func (r *Renderer) renderRegroup(v View, y int) {
	r.screen.DrawText(0, y, "Regroup", styleText)
	x := labelWidth
	cur := v.Cursor(game.TargetRegroup)
	for i, c := range v.RegroupOptions() {
		style := styleDim
		text := "  " + c.String() + "  "
		if i == cur {
			style = styleFocus
			text = "[ " + c.String() + " ]"
		}
		x = r.screen.DrawText(x, y, text, style) + 1
	}
}

// Prompt describes what the player is being asked to do.
func Prompt(v View) string {
	switch v.Phase() {
	case game.MonsterSelectAlly:
		return "Choose a party die to send against the monsters."
	case game.MonsterSelectReroll:
		return "Mark party and dungeon dice for the scroll to reroll."
	case game.MonsterConfirmReroll:
		n := len(v.Selection(game.TargetRerollAlly)) + len(v.Selection(game.TargetRerollDungeon))
		return fmt.Sprintf("Reroll %d %s?", n, plural(n, "die", "dice"))
	case game.MonsterSelectMonster:
		return "Choose a monster to attack."
	case game.MonsterConfirmCombat:
		if v.AffectsAll() {
			return "Attack? Every matching monster falls."
		}
		return "Attack? One monster falls."
	case game.LootSelectAlly:
		return "Choose a party die to open a chest or quaff a potion."
	case game.LootSelectLoot:
		return "Choose a chest or a potion."
	case game.LootConfirmLoot:
		return "Open the chest?"
	case game.LootSelectGraveyard:
		limit := v.SelectionLimit(game.TargetGraveyard)
		return fmt.Sprintf("Mark up to %d graveyard %s to revive.", limit, plural(limit, "die", "dice"))
	case game.LootConfirmGraveyard:
		return "Quaff and revive?"
	case game.DragonSelectAlly:
		return fmt.Sprintf("The dragon wakes! Mark three companions to fight it (%d/3).", len(v.Selection(game.TargetAlly)))
	case game.DragonConfirm:
		return "Fight the dragon?"
	case game.RegroupChoose:
		return "Descend deeper or retire with your spoils?"
	case game.Empty:
		return "The party cannot go on. This delve is lost."
	case game.Victory:
		return fmt.Sprintf("The run is over. Final score %d.", v.Score())
	default:
		return ""
	}
}

func helpLine(v View) string {
	parts := []string{}
	if len(v.Targets()) > 0 {
		parts = append(parts, "←/→ move")
	}
	if len(v.Targets()) > 1 {
		parts = append(parts, "Tab switch")
	}
	switch v.Phase() {
	case game.MonsterSelectReroll, game.LootSelectGraveyard, game.DragonSelectAlly:
		parts = append(parts, "Space mark")
	}
	if v.CanConfirm() {
		parts = append(parts, "Enter confirm")
	}
	if v.CanCancel() {
		parts = append(parts, "Backspace back")
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, "  ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// warn draws a one-line message at the bottom of the screen.
func (r *Renderer) warn(msg string) {
	_, h := r.screen.Size()
	r.screen.DrawText(0, h-1, msg, styleWarning)
	r.screen.Show()
}
