// Package tui runs Ultra Snake in the terminal with Bubble Tea.
// It owns the frame loop, key mapping, persistence hooks and the menus.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that scheduled it.
type TickMsg struct {
	At   time.Time
	Loop uint64
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh tick loop id.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd schedules the next tick of loop at the given rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}

// frameClock measures wall-clock time between ticks.
type frameClock struct {
	last time.Time
}

// since returns the time since the previous tick, or zero on the first one
// so the game falls back to its nominal step.
func (c *frameClock) since(t time.Time) time.Duration {
	var d time.Duration
	if !c.last.IsZero() && t.After(c.last) {
		d = t.Sub(c.last)
	}
	c.last = t
	return d
}

// reset forgets the previous tick, e.g. after a pause in the loop.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
