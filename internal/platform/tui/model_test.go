package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ultrasnake/internal/core"
	"github.com/vovakirdan/ultrasnake/internal/storage"
	"github.com/vovakirdan/ultrasnake/internal/telemetry"
)

type fakeEvent struct{}

func (fakeEvent) Name() string { return "fake_event" }

// fakeGame reports a scripted state and records what the model feeds it.
type fakeGame struct {
	state    core.GameState
	events   []core.Event
	frames   []core.InputFrame
	resets   []core.RuntimeConfig
	resized  [2]int
	disposed bool
}

func (g *fakeGame) ID() string       { return "fake_solo" }
func (g *fakeGame) Title() string    { return "Fake" }
func (g *fakeGame) ScoreKey() string { return "fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	events := g.events
	g.events = nil
	return core.StepResult{State: g.state, Events: events}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake", core.ColorGreen)
}

func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int)       { g.resized = [2]int{w, h} }
func (g *fakeGame) Dispose()              { g.disposed = true }

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newFakeModel(t *testing.T, services Services) (GameModel, *fakeGame, time.Time) {
	t.Helper()
	g := &fakeGame{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(g, services, cfg)
	m.Init()
	return m, g, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

func tick(m GameModel, at time.Time) TickMsg {
	return TickMsg{At: at, Loop: m.loop}
}

func TestModelPassesStoredHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.UpdateHighScore("fake", 40)

	_, g, _ := newFakeModel(t, Services{Store: store})
	if len(g.resets) != 1 {
		t.Fatalf("Reset called %d times, expected 1", len(g.resets))
	}
	if g.resets[0].HighScore != 40 {
		t.Errorf("HighScore = %d, expected 40", g.resets[0].HighScore)
	}
}

func TestModelMeasuresElapsed(t *testing.T) {
	m, g, t0 := newFakeModel(t, Services{})

	m, _ = update(t, m, tick(m, t0))
	m, _ = update(t, m, tick(m, t0.Add(20*time.Millisecond)))
	m, _ = update(t, m, tick(m, t0.Add(55*time.Millisecond)))

	expected := []time.Duration{0, 20 * time.Millisecond, 35 * time.Millisecond}
	for i, want := range expected {
		if g.frames[i].Elapsed != want {
			t.Errorf("frame %d Elapsed = %v, expected %v", i, g.frames[i].Elapsed, want)
		}
	}
}

func TestModelIgnoresStaleLoop(t *testing.T) {
	m, g, t0 := newFakeModel(t, Services{})

	m, cmd := update(t, m, TickMsg{At: t0, Loop: m.loop + 1})
	if cmd != nil || len(g.frames) != 0 {
		t.Errorf("stale tick stepped the game: cmd=%v frames=%d", cmd != nil, len(g.frames))
	}
	_, cmd = update(t, m, tick(m, t0))
	if cmd == nil || len(g.frames) != 1 {
		t.Errorf("own tick did not step and reschedule")
	}
}

func TestModelKeysReachFrame(t *testing.T) {
	m, g, t0 := newFakeModel(t, Services{})

	m, _ = update(t, m, keyMsg("w"))
	m, _ = update(t, m, keyMsg("left"))
	m, _ = update(t, m, keyMsg(" "))
	m, _ = update(t, m, tick(m, t0))

	f := g.frames[0]
	if len(f.Order) != 3 || f.Order[0] != core.ActionUp || f.Order[1] != core.ActionLeft {
		t.Errorf("Order = %v, expected [Up Left Fire]", f.Order)
	}
	if !f.Has(core.ActionFire) {
		t.Error("fire key did not reach the frame")
	}

	m, _ = update(t, m, tick(m, t0.Add(time.Second/60)))
	if len(g.frames[1].Order) != 0 {
		t.Errorf("frame not cleared between ticks: %v", g.frames[1].Order)
	}
}

func TestModelPersistsGameOverOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	m, g, t0 := newFakeModel(t, Services{Store: store, Recorder: telemetry.NewRecorderTo(&buf)})

	m, _ = update(t, m, tick(m, t0))
	m, _ = update(t, m, tick(m, t0.Add(20*time.Millisecond)))

	g.state = core.GameState{Score: 30, Total: 70, GameOver: true}
	g.events = []core.Event{fakeEvent{}}
	m, _ = update(t, m, tick(m, t0.Add(40*time.Millisecond)))
	m, _ = update(t, m, tick(m, t0.Add(60*time.Millisecond)))

	high, _ := store.HighScore("fake")
	if high != 70 {
		t.Errorf("HighScore = %d, expected 70", high)
	}
	runs, _ := store.AllScores("fake_solo")
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Score != 30 || runs[0].OpponentScore != 40 || runs[0].Duration != 40*time.Millisecond {
		t.Errorf("run = %+v, expected 30/40 over 40ms", runs[0])
	}
	if !strings.Contains(buf.String(), "fake_event") {
		t.Errorf("recorder output %q lacks the event", buf.String())
	}

	// A restart arms persistence again.
	g.state = core.GameState{}
	m, _ = update(t, m, keyMsg("r"))
	m, _ = update(t, m, tick(m, t0.Add(80*time.Millisecond)))
	g.state = core.GameState{Score: 5, Total: 5, GameOver: true}
	m, _ = update(t, m, tick(m, t0.Add(100*time.Millisecond)))

	runs, _ = store.AllScores("fake_solo")
	if len(runs) != 2 {
		t.Errorf("saved %d runs after restart, expected 2", len(runs))
	}
	if high, _ := store.HighScore("fake"); high != 70 {
		t.Errorf("HighScore = %d after a lower run, expected 70", high)
	}
}

func TestModelSkipsScorelessGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var logs bytes.Buffer
	m, g, t0 := newFakeModel(t, Services{Store: store, Logger: log.New(&logs)})
	g.state = core.GameState{GameOver: true}
	m, _ = update(t, m, tick(m, t0))
	_, _ = update(t, m, tick(m, t0.Add(20*time.Millisecond)))

	if strings.Contains(logs.String(), "new high score") {
		t.Errorf("a scoreless run was logged as a new high score: %q", logs.String())
	}
	runs, _ := store.AllScores("fake_solo")
	if len(runs) != 0 {
		t.Errorf("saved %d runs, expected 0", len(runs))
	}
	if raised, _ := store.UpdateHighScore("fake", 1); !raised {
		t.Error("UpdateHighScore(1) = false, expected the first positive score to be stored")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, g, _ := newFakeModel(t, Services{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 40} {
		t.Errorf("resized = %v, expected [100 40]", g.resized)
	}
	if len(g.resets) != 1 {
		t.Errorf("Reset called %d times, expected only the initial one", len(g.resets))
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m, g, t0 := newFakeModel(t, Services{})

	m, _ = update(t, m, keyMsg("esc"))
	if m.BackToMenu() {
		t.Error("back accepted while the run is live")
	}

	g.state = core.GameState{GameOver: true}
	m, _ = update(t, m, tick(m, t0))
	m, _ = update(t, m, keyMsg("esc"))
	if !m.BackToMenu() || !g.disposed {
		t.Errorf("BackToMenu() = %v disposed = %v, expected both", m.BackToMenu(), g.disposed)
	}
	if m.View() != "" {
		t.Error("View() should be empty after leaving")
	}

	m2, g2, _ := newFakeModel(t, Services{})
	m2, cmd := update(t, m2, keyMsg("ctrl+c"))
	if !m2.IsQuitting() || cmd == nil || !g2.disposed {
		t.Errorf("ctrl+c: quitting=%v cmd=%v disposed=%v", m2.IsQuitting(), cmd != nil, g2.disposed)
	}
}

func TestModelView(t *testing.T) {
	m, _, _ := newFakeModel(t, Services{})
	if !strings.Contains(m.View(), "fake") {
		t.Errorf("View() = %q, expected the game's text", m.View())
	}
}
