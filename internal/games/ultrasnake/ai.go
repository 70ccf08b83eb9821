package ultrasnake

import (
	"github.com/vovakirdan/ultrasnake/internal/core"
)

// behavior drives an AI-controlled role: pick a target, then take the
// first preferred direction whose next cell is safe.
type behavior struct {
	target func(w *World, a *Actor) (core.Point, bool)
	safe   func(w *World, a *Actor, next core.Point) bool
}

var behaviors = map[Role]behavior{
	RoleOpponent: {target: opponentTarget, safe: opponentSafe},
	RoleAlly:     {target: allyTarget, safe: allySafe},
}

// think commits a direction for an AI actor. Roles without a behavior
// (the player) are left alone.
func (w *World) think(a *Actor) {
	b, ok := behaviors[a.Role]
	if !ok {
		return
	}
	target, ok := b.target(w, a)
	if !ok {
		return
	}
	head := a.Head()
	for _, d := range preferenceOrder(head, target) {
		if b.safe(w, a, head.Add(d.Vector())) {
			a.SetDirection(d)
			return
		}
	}
}

// preferenceOrder lists all four directions, the ones closing the larger
// axis distance first. Ties prefer the vertical axis.
func preferenceOrder(from, to core.Point) []core.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y

	horizontal := core.DirRight
	if dx < 0 {
		horizontal = core.DirLeft
	}
	vertical := core.DirDown
	if dy < 0 {
		vertical = core.DirUp
	}

	order := make([]core.Direction, 0, len(core.Directions))
	if core.Abs(dx) > core.Abs(dy) {
		order = append(order, horizontal, vertical)
	} else {
		order = append(order, vertical, horizontal)
	}
	for _, d := range core.Directions {
		if d != order[0] && d != order[1] {
			order = append(order, d)
		}
	}
	return order
}

func opponentTarget(w *World, _ *Actor) (core.Point, bool) {
	return w.food, true
}

// opponentSafe rejects walls and the opponent's own front segments. The
// player's front segments are avoided only with the difficulty's evade bias.
func opponentSafe(w *World, a *Actor, next core.Point) bool {
	if !w.bounds.Contains(next) {
		return false
	}
	if a.occupiesFirst(next, w.rules.Opponent.SelfLookahead) {
		return false
	}
	if w.player.occupiesFirst(next, w.rules.Opponent.PlayerLookahead) && w.rng.Float64() < a.EvadeBias {
		return false
	}
	return true
}

func allyTarget(w *World, _ *Actor) (core.Point, bool) {
	if w.opponent == nil {
		return core.Point{}, false
	}
	return w.opponent.Head(), true
}

func allySafe(w *World, _ *Actor, next core.Point) bool {
	return w.bounds.Contains(next)
}
