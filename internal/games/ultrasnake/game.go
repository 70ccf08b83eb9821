package ultrasnake

import (
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/core"
	"github.com/vovakirdan/ultrasnake/internal/registry"
)

// Mode selects whether an opponent takes part.
type Mode string

const (
	ModeDuel Mode = "duel"
	ModeSolo Mode = "solo"
)

// Registry IDs. Both modes share one high score under GameID.
const (
	GameID     = "ultrasnake"
	SoloGameID = "ultrasnake_solo"
)

const (
	hudHeight  = 2  // HUD lines above the board
	flashTicks = 45 // How long a flash message stays up
)

// Game adapts a World to the arcade platform: it maps input frames to
// world calls, feeds capped time deltas and draws the board.
type Game struct {
	mode  Mode
	cfg   core.RuntimeConfig
	rules config.SnakeConfig
	theme Theme
	world *World
	rng   *rand.Rand // Seeds successive runs
	tick  uint64

	nominal  time.Duration // Delta used when the frame carries none
	maxDelta time.Duration

	paused   bool
	tooSmall bool
	warnings []error

	screenW    int
	screenH    int
	mapOffsetX int
	mapOffsetY int

	flashText  string
	flashUntil uint64
}

// New creates a duel game against the AI opponent.
func New() *Game {
	return &Game{mode: ModeDuel}
}

// NewSolo creates a game without an opponent.
func NewSolo() *Game {
	return &Game{mode: ModeSolo}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(SoloGameID, func() registry.Game {
		return NewSolo()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSolo {
		return SoloGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSolo {
		return "Ultra Snake (Solo)"
	}
	return "Ultra Snake"
}

// ScoreKey returns the storage key shared by every mode.
func (g *Game) ScoreKey() string {
	return GameID
}

// Reset loads the rules, applies the runtime settings and starts a new run.
// Problems with the rules file or the difficulty name fall back to
// defaults and are reported by Warnings.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.warnings = nil

	rules, err := config.LoadSnake(cfg.ConfigPath)
	if err != nil {
		g.warnings = append(g.warnings, err)
	}
	g.rules = rules

	preset, err := config.ParsePreset(cfg.Difficulty)
	if err != nil {
		g.warnings = append(g.warnings, err)
	}
	g.cfg.Difficulty = string(preset)
	g.theme = ParseTheme(cfg.Theme)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.nominal = time.Second / time.Duration(tickRate)
	g.maxDelta = g.rules.Clock.MaxDelta()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	if g.world == nil {
		g.world = NewWorld()
	}
	g.newRun(cfg.HighScore)
}

// Warnings returns the problems found by the last Reset.
func (g *Game) Warnings() error {
	return errors.Join(g.warnings...)
}

func (g *Game) newRun(highScore int) {
	g.paused = false
	g.world.Reset(Options{
		Rules:           g.rules,
		Difficulty:      config.DifficultyPreset(g.cfg.Difficulty),
		OpponentEnabled: g.mode == ModeDuel,
		Seed:            g.rng.Int63(),
		HighScore:       highScore,
	})
	g.setFlash("Good luck!")
}

// Resize adapts the layout to a new terminal size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	boardW := g.rules.Grid.Cols + 2
	boardH := g.rules.Grid.Rows + 2
	if w < boardW || h < boardH+hudHeight {
		g.tooSmall = true
		return
	}
	g.tooSmall = false
	g.mapOffsetX = (w - boardW) / 2
	g.mapOffsetY = hudHeight
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.newRun(g.world.HighScore())
		return g.result()
	}

	if in.Has(core.ActionPause) && g.world.Running() {
		g.paused = !g.paused
		if g.paused {
			g.setFlash("Paused")
		} else {
			g.setFlash("Resumed")
		}
	}

	if g.paused || g.tooSmall || !g.world.Running() {
		return g.result()
	}

	for _, a := range in.Order {
		if d, ok := directionOf(a); ok {
			g.world.SetDirection(d)
		}
	}
	if in.Has(core.ActionFire) {
		g.world.Shoot()
	}
	g.world.Update(g.delta(in.Elapsed))
	return g.result()
}

// delta turns the frame's wall-clock time into a bounded simulation step.
func (g *Game) delta(elapsed time.Duration) time.Duration {
	if elapsed <= 0 {
		elapsed = g.nominal
	}
	return min(elapsed, g.maxDelta)
}

func (g *Game) result() core.StepResult {
	events := g.world.Drain()
	for _, e := range events {
		if msg := flashFor(e); msg != "" {
			g.setFlash(msg)
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) setFlash(msg string) {
	g.flashText = msg
	g.flashUntil = g.tick + flashTicks
}

// Flash returns the message currently shown over the board, if any.
func (g *Game) Flash() string {
	if g.tick >= g.flashUntil {
		return ""
	}
	return g.flashText
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.world.Score(),
		Total:     g.world.Score() + g.world.OpponentScore(),
		HighScore: g.world.HighScore(),
		GameOver:  !g.world.Running(),
		Paused:    g.paused,
	}
}

// Dispose releases the world; the game must be Reset before further use.
func (g *Game) Dispose() {
	if g.world != nil {
		g.world.Dispose()
	}
}

func directionOf(a core.Action) (core.Direction, bool) {
	switch a {
	case core.ActionUp:
		return core.DirUp, true
	case core.ActionDown:
		return core.DirDown, true
	case core.ActionLeft:
		return core.DirLeft, true
	case core.ActionRight:
		return core.DirRight, true
	default:
		return 0, false
	}
}
