// Package config provides YAML-based rule configuration loading and
// difficulty presets for Ultra Snake.
package config

import "time"

// SnakeConfig contains every tunable rule of the game.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Player     PlayerConfig     `yaml:"player"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Opponent   OpponentConfig   `yaml:"opponent"`
	Ally       AllyConfig       `yaml:"ally"`
	PowerUps   PowerUpConfig    `yaml:"power_ups"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Clock      ClockConfig      `yaml:"clock"`
	Difficulty DifficultyTable  `yaml:"difficulty"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// PlayerConfig defines the player's lives and ammo limits.
type PlayerConfig struct {
	StartLength int `yaml:"start_length"`
	Lives       int `yaml:"lives"`
	MaxLives    int `yaml:"max_lives"`
	MaxAmmo     int `yaml:"max_ammo"`
}

// ScoringConfig defines points awarded by the rules.
type ScoringConfig struct {
	Food         int `yaml:"food"`
	OpponentFood int `yaml:"opponent_food"`
	Defeat       int `yaml:"defeat"`
}

// OpponentConfig defines the AI opponent's health, damage table and timing.
type OpponentConfig struct {
	MaxHealth       int `yaml:"max_health"`
	SelfLookahead   int `yaml:"self_lookahead"`   // Own body cells the AI avoids
	PlayerLookahead int `yaml:"player_lookahead"` // Player body cells subject to evade bias
	BumpDamage      int `yaml:"bump_damage"`      // Player head runs into the opponent
	WoundDamage     int `yaml:"wound_damage"`     // Opponent hits a wall or itself
	BiteDamage      int `yaml:"bite_damage"`      // Opponent head runs into the player
	AllyDamage      int `yaml:"ally_damage"`      // Ally head touches the opponent
	RespawnDelayMs  int `yaml:"respawn_delay_ms"`
	MinStepMs       int `yaml:"min_step_ms"`
	MaxStepMs       int `yaml:"max_step_ms"`
}

// AllyConfig defines the summoned ally.
type AllyConfig struct {
	LifetimeMs  int     `yaml:"lifetime_ms"`
	SpawnOffset int     `yaml:"spawn_offset"` // Cells behind the player's head
	StepFactor  float64 `yaml:"step_factor"`  // Multiplier of the player step
}

// PowerUpConfig defines power-up spawning and effects.
type PowerUpConfig struct {
	SpawnChance         float64 `yaml:"spawn_chance"`          // After the player eats
	OpponentSpawnChance float64 `yaml:"opponent_spawn_chance"` // After the opponent eats
	TTLMs               int     `yaml:"ttl_ms"`
	TTLJitterMs         int     `yaml:"ttl_jitter_ms"`
	AmmoPerPickup       int     `yaml:"ammo_per_pickup"`

	// Spawn weights (relative, higher = more common)
	WeightExtraLife  int `yaml:"weight_extra_life"`
	WeightFreezeAmmo int `yaml:"weight_freeze_ammo"`
	WeightAllySummon int `yaml:"weight_ally_summon"`
}

// ProjectileConfig defines ice shard motion.
type ProjectileConfig struct {
	CellTimeFactor float64 `yaml:"cell_time_factor"` // Fraction of the player step per cell
}

// SpawnConfig defines empty-cell placement for food and power-ups.
type SpawnConfig struct {
	Retries   int `yaml:"retries"`
	FallbackX int `yaml:"fallback_x"`
	FallbackY int `yaml:"fallback_y"`
}

// ClockConfig defines how external time is fed into the simulation.
type ClockConfig struct {
	MaxDeltaMs int `yaml:"max_delta_ms"`
}

// DifficultyTable holds the parameters of every preset.
type DifficultyTable struct {
	Easy   DifficultyParams `yaml:"easy"`
	Normal DifficultyParams `yaml:"normal"`
	Hard   DifficultyParams `yaml:"hard"`
}

// DifficultyParams are the only difficulty-sensitive rules.
type DifficultyParams struct {
	StepMs             int     `yaml:"step_ms"`
	OpponentStepFactor float64 `yaml:"opponent_step_factor"`
	EvadeBias          float64 `yaml:"evade_bias"`
	FreezeMs           int     `yaml:"freeze_ms"`
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Step returns the player step interval.
func (p DifficultyParams) Step() time.Duration { return ms(p.StepMs) }

// Freeze returns how long a projectile hit freezes the opponent.
func (p DifficultyParams) Freeze() time.Duration { return ms(p.FreezeMs) }

// RespawnDelay returns the delay between a defeat and the next opponent.
func (o OpponentConfig) RespawnDelay() time.Duration { return ms(o.RespawnDelayMs) }

// StepRange returns the allowed AI step interval range.
func (o OpponentConfig) StepRange() (lo, hi time.Duration) {
	return ms(o.MinStepMs), ms(o.MaxStepMs)
}

// Lifetime returns how long a summoned ally stays.
func (a AllyConfig) Lifetime() time.Duration { return ms(a.LifetimeMs) }

// TTL returns the base power-up lifetime and its symmetric jitter.
func (p PowerUpConfig) TTL() (base, jitter time.Duration) {
	return ms(p.TTLMs), ms(p.TTLJitterMs)
}

// MaxDelta returns the largest time step fed into one update.
func (c ClockConfig) MaxDelta() time.Duration { return ms(c.MaxDeltaMs) }
