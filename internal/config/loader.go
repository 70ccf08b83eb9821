package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the rules file looked up in the config directories.
const FileName = "ultrasnake.yaml"

// LoadSnake loads the game rules.
// Search order: customPath -> ~/.ultrasnake/configs/ultrasnake.yaml -> ./configs/ultrasnake.yaml -> embedded default
// Files are layered over the built-in defaults, so a file may set only the keys it changes.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ultrasnake", "configs", filename)
}

// ValidationError describes a rule value the simulation cannot run with.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Message)
}

// Validate checks that the rules describe a playable game.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Cols < 10 || c.Grid.Rows < 6:
		return ValidationError{"grid", fmt.Sprintf("%dx%d is smaller than 10x6", c.Grid.Cols, c.Grid.Rows)}
	case c.Player.StartLength < 1:
		return ValidationError{"player.start_length", "must be at least 1"}
	case c.Player.StartLength > c.Grid.Cols/4+1:
		return ValidationError{"player.start_length", fmt.Sprintf("%d does not fit behind a head at column %d", c.Player.StartLength, c.Grid.Cols/4)}
	case c.Player.Lives < 1 || c.Player.Lives > c.Player.MaxLives:
		return ValidationError{"player.lives", fmt.Sprintf("%d not in [1, max_lives]", c.Player.Lives)}
	case c.Player.MaxAmmo < 0:
		return ValidationError{"player.max_ammo", "must not be negative"}
	case c.Opponent.MaxHealth < 1:
		return ValidationError{"opponent.max_health", "must be positive"}
	case c.Opponent.MinStepMs < 1 || c.Opponent.MaxStepMs < c.Opponent.MinStepMs:
		return ValidationError{"opponent step range", fmt.Sprintf("[%d, %d] is empty", c.Opponent.MinStepMs, c.Opponent.MaxStepMs)}
	case !isProbability(c.PowerUps.SpawnChance) || !isProbability(c.PowerUps.OpponentSpawnChance):
		return ValidationError{"power_ups spawn chance", "must be within [0, 1]"}
	case c.PowerUps.WeightExtraLife < 0 || c.PowerUps.WeightFreezeAmmo < 0 || c.PowerUps.WeightAllySummon < 0:
		return ValidationError{"power_ups weights", "must not be negative"}
	case c.PowerUps.WeightExtraLife+c.PowerUps.WeightFreezeAmmo+c.PowerUps.WeightAllySummon == 0:
		return ValidationError{"power_ups weights", "at least one must be positive"}
	case c.PowerUps.TTLJitterMs < 0 || c.PowerUps.TTLJitterMs >= c.PowerUps.TTLMs:
		return ValidationError{"power_ups.ttl_jitter_ms", "must be within [0, ttl_ms)"}
	case c.Projectile.CellTimeFactor <= 0:
		return ValidationError{"projectile.cell_time_factor", "must be positive"}
	case c.Spawn.Retries < 1:
		return ValidationError{"spawn.retries", "must be at least 1"}
	case c.Spawn.FallbackX < 0 || c.Spawn.FallbackX >= c.Grid.Cols || c.Spawn.FallbackY < 0 || c.Spawn.FallbackY >= c.Grid.Rows:
		return ValidationError{"spawn fallback", fmt.Sprintf("(%d, %d) is outside the grid", c.Spawn.FallbackX, c.Spawn.FallbackY)}
	case c.Clock.MaxDeltaMs < 1:
		return ValidationError{"clock.max_delta_ms", "must be positive"}
	}

	for _, p := range Presets() {
		params := c.Difficulty.For(p)
		if params.StepMs < 1 || params.FreezeMs < 0 || params.OpponentStepFactor <= 0 {
			return ValidationError{"difficulty." + string(p), "step, freeze and factor must be positive"}
		}
		if !isProbability(params.EvadeBias) {
			return ValidationError{"difficulty." + string(p) + ".evade_bias", "must be within [0, 1]"}
		}
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
