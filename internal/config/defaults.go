package config

import (
	_ "embed"
)

//go:embed defaults/ultrasnake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in rules.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Cols: 40,
			Rows: 24,
		},
		Player: PlayerConfig{
			StartLength: 3,
			Lives:       3,
			MaxLives:    9,
			MaxAmmo:     9,
		},
		Scoring: ScoringConfig{
			Food:         10,
			OpponentFood: 10,
			Defeat:       100,
		},
		Opponent: OpponentConfig{
			MaxHealth:       100,
			SelfLookahead:   6,
			PlayerLookahead: 4,
			BumpDamage:      5,
			WoundDamage:     25,
			BiteDamage:      12,
			AllyDamage:      30,
			RespawnDelayMs:  1000,
			MinStepMs:       70,
			MaxStepMs:       140,
		},
		Ally: AllyConfig{
			LifetimeMs:  8000,
			SpawnOffset: 3,
			StepFactor:  0.9,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:         0.6,
			OpponentSpawnChance: 0.35,
			TTLMs:               15000,
			TTLJitterMs:         3000,
			AmmoPerPickup:       3,
			WeightExtraLife:     20,
			WeightFreezeAmmo:    40,
			WeightAllySummon:    40,
		},
		Projectile: ProjectileConfig{
			CellTimeFactor: 0.25,
		},
		Spawn: SpawnConfig{
			Retries:   500,
			FallbackX: 2,
			FallbackY: 2,
		},
		Clock: ClockConfig{
			MaxDeltaMs: 50,
		},
		Difficulty: DifficultyTable{
			Easy:   DifficultyParams{StepMs: 120, OpponentStepFactor: 1.1, EvadeBias: 0.2, FreezeMs: 2400},
			Normal: DifficultyParams{StepMs: 110, OpponentStepFactor: 0.95, EvadeBias: 0.45, FreezeMs: 1800},
			Hard:   DifficultyParams{StepMs: 95, OpponentStepFactor: 0.8, EvadeBias: 0.85, FreezeMs: 1200},
		},
	}
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
