package ultrasnake

import (
	"slices"
	"time"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// ActorView is a read-only copy of an actor.
type ActorView struct {
	Role    Role
	Body    []core.Point
	Dir     core.Direction
	Alive   bool
	Health  int
	Percent int
	Frozen  bool

	ExpiresAt time.Duration
}

// ProjectileView is a shard with its interpolated position.
type ProjectileView struct {
	Cell core.Point
	X, Y float64
}

// Snapshot captures everything needed to draw a frame, and is compared
// field by field in determinism tests.
type Snapshot struct {
	Tick          uint64
	Time          time.Duration
	Cols, Rows    int
	Difficulty    config.DifficultyPreset
	Player        ActorView
	Opponent      *ActorView
	Ally          *ActorView
	Food          core.Point
	Power         *PowerUp
	Projectiles   []ProjectileView
	Ammo          int
	Lives         int
	Score         int
	OpponentScore int
	HighScore     int
	State         GameStateType
}

func viewOf(a *Actor, now time.Duration) *ActorView {
	if a == nil {
		return nil
	}
	return &ActorView{
		Role:    a.Role,
		Body:    slices.Clone(a.Body),
		Dir:     a.Dir,
		Alive:   a.Alive,
		Health:  a.Health,
		Percent: a.HealthPercent(),
		Frozen:  a.Frozen(now),

		ExpiresAt: a.ExpiresAt,
	}
}

// Snapshot returns a copy of the world state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Time:          w.now,
		Cols:          w.bounds.Cols,
		Rows:          w.bounds.Rows,
		Difficulty:    w.preset,
		Opponent:      viewOf(w.opponent, w.now),
		Ally:          viewOf(w.ally, w.now),
		Food:          w.food,
		Ammo:          w.ammo,
		Lives:         w.lives,
		Score:         w.score,
		OpponentScore: w.opponentScore,
		HighScore:     w.high,
		State:         StatePlaying,
	}
	if w.player != nil {
		s.Player = *viewOf(w.player, w.now)
	}
	if w.power != nil {
		p := *w.power
		s.Power = &p
	}
	for _, p := range w.projectiles {
		x, y := p.Position()
		s.Projectiles = append(s.Projectiles, ProjectileView{Cell: p.Cell, X: x, Y: y})
	}
	if !w.running {
		s.State = StateGameOver
	}
	return s
}

// Snapshot returns the current game snapshot for rendering and determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.world.Snapshot()
	s.Tick = g.tick
	switch {
	case g.tooSmall:
		s.State = StatePausedSmall
	case s.State == StatePlaying && g.paused:
		s.State = StatePaused
	}
	return s
}
