// Package tui provides the Bubble Tea host for bowling lanes.
// It handles the terminal UI loop, input mapping, and round persistence.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per host frame. It carries the wall-clock time the
// frame fired at; the model turns consecutive ticks into elapsed seconds.
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

// frameTime returns the seconds elapsed between two ticks. The first tick
// of a lane has no predecessor and reports zero.
func frameTime(last, now time.Time) float64 {
	if last.IsZero() {
		return 0
	}
	return now.Sub(last).Seconds()
}
