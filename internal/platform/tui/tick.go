// Package tui provides the Bubble Tea front-end for the platformer: the
// game screen, menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per render frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given frame rate.
// The simulation runs on its own fixed step; frames only feed it wall time.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
