package ultrasnake

import (
	"math"
	"time"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// PowerKind identifies a power-up effect.
type PowerKind int

const (
	PowerFreezeAmmo PowerKind = iota // Ice shards for the player
	PowerAllySummon                  // Temporary ally that hunts the opponent
	PowerExtraLife
)

func (k PowerKind) String() string {
	switch k {
	case PowerFreezeAmmo:
		return "freeze_ammo"
	case PowerAllySummon:
		return "ally_summon"
	case PowerExtraLife:
		return "extra_life"
	default:
		return "unknown"
	}
}

// Glyph returns the rune drawn for the power-up.
func (k PowerKind) Glyph() rune {
	switch k {
	case PowerFreezeAmmo:
		return '❄'
	case PowerAllySummon:
		return '&'
	case PowerExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// PowerUp is the single collectible on the grid.
type PowerUp struct {
	Kind PowerKind
	Pos  core.Point
	TTL  time.Duration // Remaining lifetime
}

// rollPowerKind picks a kind by the configured weights.
func (w *World) rollPowerKind() PowerKind {
	pc := w.rules.PowerUps
	total := pc.WeightExtraLife + pc.WeightFreezeAmmo + pc.WeightAllySummon
	roll := w.rng.Intn(total)
	if roll < pc.WeightExtraLife {
		return PowerExtraLife
	}
	roll -= pc.WeightExtraLife
	if roll < pc.WeightFreezeAmmo {
		return PowerFreezeAmmo
	}
	return PowerAllySummon
}

// rollPowerTTL returns the base lifetime plus a symmetric jitter.
func (w *World) rollPowerTTL() time.Duration {
	base, jitter := w.rules.PowerUps.TTL()
	if jitter <= 0 {
		return base
	}
	ms := int64(jitter / time.Millisecond)
	return base + time.Duration(w.rng.Int63n(2*ms+1)-ms)*time.Millisecond
}

// maybeSpawnPower places a power-up with the given chance unless one is
// already on the grid.
func (w *World) maybeSpawnPower(chance float64) {
	if w.power != nil || w.rng.Float64() >= chance {
		return
	}
	w.power = &PowerUp{
		Kind: w.rollPowerKind(),
		Pos:  w.pickEmptyCell(),
		TTL:  w.rollPowerTTL(),
	}
	w.emit(PowerSpawned{Kind: w.power.Kind, At: w.power.Pos, TTL: w.power.TTL})
}

// applyPower consumes the power-up under the player.
func (w *World) applyPower() {
	kind := w.power.Kind
	w.power = nil

	switch kind {
	case PowerFreezeAmmo:
		w.ammo = core.Clamp(w.ammo+w.rules.PowerUps.AmmoPerPickup, 0, w.rules.Player.MaxAmmo)
	case PowerAllySummon:
		w.summonAlly()
	case PowerExtraLife:
		w.lives = core.Clamp(w.lives+1, 1, w.rules.Player.MaxLives)
	}
	w.emit(PowerApplied{Kind: kind, Ammo: w.ammo, Lives: w.lives})
}

// summonAlly places a fresh ally behind the player's head, replacing any
// ally already present.
func (w *World) summonAlly() {
	head := w.player.Head()
	at := core.Point{
		X: core.Clamp(head.X-w.rules.Ally.SpawnOffset, 1, w.bounds.Cols-2),
		Y: head.Y,
	}
	lo, hi := w.rules.Opponent.StepRange()
	interval := clampDuration(scaleDuration(w.params.Step(), w.rules.Ally.StepFactor), lo, hi)

	w.ally = newActor(RoleAlly, at, core.DirRight, w.rules.Player.StartLength, interval)
	w.ally.ExpiresAt = w.now + w.rules.Ally.Lifetime()
	w.emit(AllySummoned{ExpiresAt: w.ally.ExpiresAt})
}

// pickEmptyCell tries random cells not covered by a body, the food or the
// power-up, falling back to a fixed cell.
func (w *World) pickEmptyCell() core.Point {
	for range w.rules.Spawn.Retries {
		p := core.Point{X: w.rng.Intn(w.bounds.Cols), Y: w.rng.Intn(w.bounds.Rows)}
		if !w.occupied(p) {
			return p
		}
	}
	return core.Point{X: w.rules.Spawn.FallbackX, Y: w.rules.Spawn.FallbackY}
}

func (w *World) occupied(p core.Point) bool {
	for _, a := range w.actors() {
		if a.Occupies(p) {
			return true
		}
	}
	if p == w.food {
		return true
	}
	return w.power != nil && w.power.Pos == p
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(math.Round(float64(d) * f))
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	return min(max(d, lo), hi)
}
