package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ultrasnake/internal/core"
	"github.com/vovakirdan/ultrasnake/internal/registry"
	"github.com/vovakirdan/ultrasnake/internal/storage"
	"github.com/vovakirdan/ultrasnake/internal/telemetry"
)

// Services are the collaborators a running game reports to.
// Every field is optional.
type Services struct {
	Store    *storage.Store
	Logger   *log.Logger
	Recorder *telemetry.Recorder
}

func (s Services) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// GameModel is the Bubble Tea model for one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	log        *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	clock      *frameClock
	loop       uint64
	played     time.Duration // Unpaused play time of the current run
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game over has been persisted
}

// NewModel creates a model for game. The stored high score, if any,
// is handed to the game through cfg.
func NewModel(game registry.Game, services Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := services.logger().With("game", game.ID())
	if services.Store != nil {
		high, err := services.Store.HighScore(registry.ScoreKey(game))
		if err != nil {
			logger.Warn("could not read high score", "error", err)
		}
		cfg.HighScore = high
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:   services,
		log:        logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		clock:      &frameClock{},
		loop:       nextLoop(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if w, ok := m.game.(registry.Warner); ok {
		if err := w.Warnings(); err != nil {
			m.log.Warn("using defaults", "error", err)
		}
	}
	m.log.Info("run started",
		"difficulty", m.config.Difficulty,
		"seed", m.config.Seed,
		"high_score", m.config.HighScore,
	)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quit()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.quit()
		m.backToMenu = true
	}

	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	m.inputFrame.Elapsed = m.clock.since(now)
	restarting := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	prev := m.gameState
	m.gameState = result.State

	if restarting {
		m.played = 0
		m.scoreSaved = false
		m.services.Recorder.NextRun()
		m.log.Info("run restarted")
	} else if !prev.Paused && !prev.GameOver {
		m.played += m.inputFrame.Elapsed
	}

	m.report(result.Events)

	if m.gameState.GameOver && !m.scoreSaved {
		m.persist()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// report hands the step's events to the log and the recorder.
func (m *GameModel) report(events []core.Event) {
	for _, e := range events {
		m.log.Debug("event", "name", e.Name(), "detail", fmt.Sprintf("%+v", e))
	}
	if err := m.services.Recorder.Record(m.played, m.gameState, events); err != nil {
		m.log.Warn("could not record events", "error", err)
	}
}

// persist stores the finished run and raises the high score if beaten.
func (m *GameModel) persist() {
	st := m.gameState
	m.log.Info("game over", "score", st.Score, "total", st.Total, "played", m.played.Round(time.Millisecond))

	store := m.services.Store
	if store == nil || st.Total <= 0 {
		return
	}

	key := registry.ScoreKey(m.game)
	raised, err := store.UpdateHighScore(key, st.Total)
	if err != nil {
		m.log.Warn("could not update high score", "error", err)
	} else if raised {
		m.log.Info("new high score", "score", st.Total)
	}

	_, err = store.SaveScore(storage.ScoreEntry{
		GameID:        m.game.ID(),
		Score:         st.Score,
		OpponentScore: st.Total - st.Score,
		Difficulty:    m.config.Difficulty,
		Duration:      m.played,
	})
	if err != nil {
		m.log.Warn("could not save score", "error", err)
	}
}

// quit tears the game down before the model stops ticking.
func (m *GameModel) quit() {
	if d, ok := m.game.(registry.Disposer); ok {
		d.Dispose()
	}
	m.clock.reset()
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".ultrasnake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the player quits or goes back.
// It reports whether the player asked to return to the menu.
func Run(game registry.Game, services Services, cfg core.RuntimeConfig) (back bool, err error) {
	model := NewModel(game, services, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: running %s: %w", game.ID(), err)
	}

	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
