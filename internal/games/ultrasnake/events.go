package ultrasnake

import (
	"time"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Events emitted by the world. Each is queued during Update and handed out
// by Drain in emission order.

// FoodEaten is emitted when the player or the opponent eats the food.
type FoodEaten struct {
	By Role
	At core.Point
}

// PowerSpawned is emitted when a power-up appears on the grid.
type PowerSpawned struct {
	Kind PowerKind
	At   core.Point
	TTL  time.Duration
}

// PowerApplied is emitted when the player picks up a power-up.
type PowerApplied struct {
	Kind  PowerKind
	Ammo  int
	Lives int
}

// PowerExpired is emitted when an uncollected power-up times out.
type PowerExpired struct {
	Kind PowerKind
}

// ProjectileFired is emitted for every shot; Ammo is what is left.
type ProjectileFired struct {
	Ammo int
}

// LifeLost is emitted after the player dies; Score is the halved score.
type LifeLost struct {
	Lives int
	Score int
}

// OpponentDamaged is emitted for every hit on the opponent.
type OpponentDamaged struct {
	Amount  int
	Health  int
	Percent int
}

// OpponentFrozen is emitted when a projectile hits the opponent.
type OpponentFrozen struct {
	Until time.Duration
}

// OpponentDefeated is emitted when the opponent's health reaches zero.
type OpponentDefeated struct {
	Bonus int
}

// OpponentRespawned is emitted when a fresh opponent enters the grid.
type OpponentRespawned struct{}

// AllySummoned is emitted when the ally power-up is applied.
type AllySummoned struct {
	ExpiresAt time.Duration
}

// AllyExpired is emitted when the ally's lifetime ends.
type AllyExpired struct{}

// ScoreChanged carries the player's new score.
type ScoreChanged struct {
	Score int
}

// OpponentScoreChanged carries the opponent's new score.
type OpponentScoreChanged struct {
	Score int
}

// GameOver is emitted once when the last life is lost.
type GameOver struct {
	FinalScore   int
	NewHighScore bool
}

func (FoodEaten) Name() string            { return "food_eaten" }
func (PowerSpawned) Name() string         { return "power_spawned" }
func (PowerApplied) Name() string         { return "power_applied" }
func (PowerExpired) Name() string         { return "power_expired" }
func (ProjectileFired) Name() string      { return "projectile_fired" }
func (LifeLost) Name() string             { return "life_lost" }
func (OpponentDamaged) Name() string      { return "opponent_damaged" }
func (OpponentFrozen) Name() string       { return "opponent_frozen" }
func (OpponentDefeated) Name() string     { return "opponent_defeated" }
func (OpponentRespawned) Name() string    { return "opponent_respawned" }
func (AllySummoned) Name() string         { return "ally_summoned" }
func (AllyExpired) Name() string          { return "ally_expired" }
func (ScoreChanged) Name() string         { return "score_changed" }
func (OpponentScoreChanged) Name() string { return "opponent_score_changed" }
func (GameOver) Name() string             { return "game_over" }

var (
	_ core.Event = FoodEaten{}
	_ core.Event = GameOver{}
)
