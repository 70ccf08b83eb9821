package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/core"
	"github.com/vovakirdan/ultrasnake/internal/games/ultrasnake"
	"github.com/vovakirdan/ultrasnake/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// setting is one row of the setup menu cycled with left/right.
type setting struct {
	label  string
	values []string // Values passed to the game
	names  []string // Values shown to the player
	index  int
}

func (s *setting) cycle(step int) {
	n := len(s.values)
	s.index = ((s.index+step)%n + n) % n
}

func (s setting) value() string { return s.values[s.index] }

// newSetting starts at current, or at the first value if current is unknown.
func newSetting(label string, values, names []string, current string) setting {
	s := setting{label: label, values: values, names: names}
	if i := slices.Index(values, current); i >= 0 {
		s.index = i
	}
	return s
}

const (
	rowMode = iota
	rowDifficulty
	rowTheme
	rowSound
	rowStart
	rowScores
	rowQuit
	rowCount
)

// MenuModel is the setup screen shown before a run.
type MenuModel struct {
	settings       []setting
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	started        bool
	openScoreboard bool
}

// NewMenuModel creates a setup menu preloaded with cfg and the given mode.
func NewMenuModel(cfg core.RuntimeConfig, gameID string) MenuModel {
	var modeIDs, modeNames []string
	for _, g := range registry.List() {
		modeIDs = append(modeIDs, g.ID)
		modeNames = append(modeNames, g.Title)
	}
	if gameID == "" {
		gameID = ultrasnake.GameID
	}

	var diffIDs, diffNames []string
	for _, p := range config.Presets() {
		diffIDs = append(diffIDs, string(p))
		diffNames = append(diffNames, p.Title())
	}

	var themeIDs []string
	for _, t := range ultrasnake.Themes() {
		themeIDs = append(themeIDs, string(t))
	}

	sound := "off"
	if cfg.Sound {
		sound = "on"
	}

	return MenuModel{
		settings: []setting{
			rowMode:       newSetting("Mode", modeIDs, modeNames, gameID),
			rowDifficulty: newSetting("Difficulty", diffIDs, diffNames, cfg.Difficulty),
			rowTheme:      newSetting("Theme", themeIDs, themeIDs, cfg.Theme),
			rowSound:      newSetting("Sound", []string{"on", "off"}, []string{"On", "Off"}, sound),
		},
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		cursor:    rowStart,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + rowCount - 1) % rowCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % rowCount

	case MenuActionLeft:
		if m.cursor < len(m.settings) {
			m.settings[m.cursor].cycle(-1)
		}

	case MenuActionRight:
		if m.cursor < len(m.settings) {
			m.settings[m.cursor].cycle(1)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case rowStart:
			m.started = true
			return m, tea.Quit
		case rowScores:
			m.openScoreboard = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.settings[m.cursor].cycle(1)
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("U L T R A   S N A K E"), m.width))
	b.WriteString("\n\n")

	for i, s := range m.settings {
		line := fmt.Sprintf("%-11s < %s >", s.label, menuValueStyle.Render(s.names[s.index]))
		b.WriteString(centerText(m.decorate(i, line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, label := range []string{"Start", "High scores", "Quit"} {
		b.WriteString(centerText(m.decorate(rowStart+i, label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHelpStyle.Render(help), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) decorate(row int, line string) string {
	if row == m.cursor {
		return menuCursorStyle.Render("> ") + line
	}
	return "  " + line
}

// GameID returns the selected mode.
func (m MenuModel) GameID() string {
	return m.settings[rowMode].value()
}

// Config returns cfg with the menu's choices applied.
func (m MenuModel) Config() core.RuntimeConfig {
	cfg := m.config
	cfg.Difficulty = m.settings[rowDifficulty].value()
	cfg.Theme = m.settings[rowTheme].value()
	cfg.Sound = m.settings[rowSound].value() == "on"
	return cfg
}

// Started returns true once the player chose Start.
func (m MenuModel) Started() bool {
	return m.started
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the setup menu and returns the player's choice.
func RunMenu(cfg core.RuntimeConfig, gameID string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, gameID), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("tui: running menu: %w", err)
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{GameID: m.GameID(), Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case !m.Started():
		result.Quit = true
	}
	return result
}
