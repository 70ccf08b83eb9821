package ultrasnake

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Theme selects the board palette.
type Theme string

const (
	ThemeNeon    Theme = "neon"
	ThemeRetro   Theme = "retro"
	ThemeClassic Theme = "classic"
)

// Themes lists the themes in menu order.
func Themes() []Theme {
	return []Theme{ThemeNeon, ThemeRetro, ThemeClassic}
}

// ParseTheme maps a name to a theme. Unknown names get neon.
func ParseTheme(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeRetro, ThemeClassic:
		return t
	default:
		return ThemeNeon
	}
}

type palette struct {
	grid       rune
	gridColor  core.Color
	border     core.Color
	hud        core.Color
	player     core.Color
	opponent   core.Color
	ally       core.Color
	food       core.Color
	projectile core.Color
	frozen     core.Color
	flash      core.Color
}

func (t Theme) palette() palette {
	switch t {
	case ThemeRetro:
		return palette{
			grid: '.', gridColor: core.ColorGreen, border: core.ColorGreen, hud: core.ColorBrightGreen,
			player: core.ColorBrightGreen, opponent: core.ColorYellow, ally: core.ColorGreen,
			food: core.ColorBrightYellow, projectile: core.ColorBrightWhite, frozen: core.ColorWhite,
			flash: core.ColorBrightYellow,
		}
	case ThemeClassic:
		return palette{
			grid: ' ', gridColor: core.ColorDefault, border: core.ColorWhite, hud: core.ColorWhite,
			player: core.ColorGreen, opponent: core.ColorRed, ally: core.ColorBlue,
			food: core.ColorYellow, projectile: core.ColorCyan, frozen: core.ColorCyan,
			flash: core.ColorWhite,
		}
	default:
		return palette{
			grid: '·', gridColor: core.ColorGray, border: core.ColorPurple, hud: core.ColorBrightCyan,
			player: core.ColorBrightGreen, opponent: core.ColorMagenta, ally: core.ColorCyan,
			food: core.ColorOrange, projectile: core.ColorIce, frozen: core.ColorIce,
			flash: core.ColorBrightYellow,
		}
	}
}

// flashFor returns the message shown for an event, or "" for none.
func flashFor(e core.Event) string {
	switch ev := e.(type) {
	case PowerApplied:
		switch ev.Kind {
		case PowerFreezeAmmo:
			return fmt.Sprintf("Ice shards: %d", ev.Ammo)
		case PowerAllySummon:
			return "Ally summoned!"
		case PowerExtraLife:
			return "Extra life!"
		}
	case LifeLost:
		if ev.Lives > 0 {
			return "Ouch! Score halved"
		}
	case OpponentFrozen:
		return "Opponent frozen!"
	case OpponentDefeated:
		return fmt.Sprintf("Opponent defeated! +%d", ev.Bonus)
	case OpponentRespawned:
		return "A new challenger appears"
	case AllyExpired:
		return "Ally is gone"
	}
	return ""
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	pal := g.theme.palette()

	if g.tooSmall {
		g.renderOverlay(dst, pal, "Window too small",
			fmt.Sprintf("Need %dx%d", g.rules.Grid.Cols+2, g.rules.Grid.Rows+2+hudHeight))
		return
	}

	s := g.Snapshot()
	g.renderHUD(dst, s, pal)
	g.renderBoard(dst, s, pal)

	if msg := g.Flash(); msg != "" {
		dst.DrawTextCentered(g.mapOffsetY, " "+msg+" ", pal.flash)
	}

	switch s.State {
	case StateGameOver:
		total := s.Score + s.OpponentScore
		g.renderOverlay(dst, pal, "Game Over",
			fmt.Sprintf("Total %d  Best %d", total, s.HighScore),
			"R: new run  Q: quit")
	case StatePaused:
		g.renderOverlay(dst, pal, "Paused", "Press P to continue")
	}
}

// renderHUD draws the score line and the opponent status line.
func (g *Game) renderHUD(dst *core.Screen, s Snapshot, pal palette) {
	left := fmt.Sprintf(" Score %d  Opp %d  Best %d  [%s]", s.Score, s.OpponentScore, s.HighScore, s.Difficulty.Title())
	dst.DrawText(0, 0, left, pal.hud)

	right := strings.Repeat("♥", s.Lives) + fmt.Sprintf("  ❄%d ", s.Ammo)
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightRed)

	var status string
	switch {
	case g.mode == ModeSolo:
		status = " Solo run"
	case s.Opponent == nil:
		status = " Opponent respawning..."
	default:
		status = " Opponent " + healthBar(s.Opponent.Percent, 20) + fmt.Sprintf(" %d%%", s.Opponent.Percent)
		if s.Opponent.Frozen {
			status += " frozen"
		}
	}
	if s.Ally != nil {
		remaining := max(s.Ally.ExpiresAt-s.Time, 0)
		status += fmt.Sprintf("  Ally %ds", int(math.Ceil(remaining.Seconds())))
	}
	dst.DrawText(0, 1, status, pal.hud)
}

func healthBar(percent, width int) string {
	filled := core.Clamp(percent*width/100, 0, width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// renderBoard draws the border, the grid and everything on it.
func (g *Game) renderBoard(dst *core.Screen, s Snapshot, pal palette) {
	box := core.NewRect(g.mapOffsetX, g.mapOffsetY, s.Cols+2, s.Rows+2)
	dst.DrawBox(box, pal.border)
	dst.FillRect(core.NewRect(box.X+1, box.Y+1, s.Cols, s.Rows), pal.grid, pal.gridColor)

	g.plot(dst, s.Food, '●', pal.food)
	if s.Power != nil {
		g.plot(dst, s.Power.Pos, s.Power.Kind.Glyph(), core.ColorBrightWhite)
	}
	for _, p := range s.Projectiles {
		at := core.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
		if at.X >= 0 && at.X < s.Cols && at.Y >= 0 && at.Y < s.Rows {
			g.plot(dst, at, '•', pal.projectile)
		}
	}
	if o := s.Opponent; o != nil {
		c := pal.opponent
		if o.Frozen {
			c = pal.frozen
		}
		g.plotBody(dst, o.Body, 'X', 'x', c)
	}
	if a := s.Ally; a != nil {
		g.plotBody(dst, a.Body, 'A', 'a', pal.ally)
	}
	g.plotBody(dst, s.Player.Body, 'O', 'o', pal.player)
}

func (g *Game) plotBody(dst *core.Screen, body []core.Point, head, seg rune, c core.Color) {
	for i := len(body) - 1; i >= 0; i-- {
		r := seg
		if i == 0 {
			r = head
		}
		g.plot(dst, body[i], r, c)
	}
}

// plot draws a grid cell; cells outside the grid are skipped.
func (g *Game) plot(dst *core.Screen, p core.Point, r rune, c core.Color) {
	if p.X < 0 || p.Y < 0 || p.X >= g.rules.Grid.Cols || p.Y >= g.rules.Grid.Rows {
		return
	}
	dst.SetColor(g.mapOffsetX+1+p.X, g.mapOffsetY+1+p.Y, r, c)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, pal palette, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, pal.border)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, pal.hud)
	}
}
