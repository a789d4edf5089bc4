// Package tui provides the Bubble Tea integration for the catch game.
// It handles the terminal UI loop, input mapping, and frame timing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a display frame. It carries the wall-clock time
// at which the tick fired.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock converts tick timestamps into frame deltas in seconds.
type frameClock struct {
	last time.Time
}

// Delta returns the seconds elapsed since the previous call. The first call
// returns fallback because there is no previous tick to measure against.
func (c *frameClock) Delta(now time.Time, fallback float64) float64 {
	if c.last.IsZero() {
		c.last = now
		return fallback
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	return d
}

// Reset forgets the previous tick, e.g. after a pause in ticking.
func (c *frameClock) Reset() {
	c.last = time.Time{}
}
