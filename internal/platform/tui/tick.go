// Package tui provides the Bubble Tea integration for the lane-rush
// platform. It handles the terminal UI loop, input mapping, and match
// orchestration; the simulation itself never imports it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. It carries the send time
// so the game model can measure the real wall-clock delta between ticks.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
