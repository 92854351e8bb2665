package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		run    bool
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false, false},
		{"a", runeKey('a'), core.ActionLeft, false, false},
		{"shift left", tea.KeyMsg{Type: tea.KeyShiftLeft}, core.ActionLeft, true, false},
		{"H", runeKey('H'), core.ActionLeft, true, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false, false},
		{"shift right", tea.KeyMsg{Type: tea.KeyShiftRight}, core.ActionRight, true, false},
		{"D", runeKey('D'), core.ActionRight, true, false},
		{"x", runeKey('x'), core.ActionRun, false, false},
		{"space", runeKey(' '), core.ActionJump, false, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false, false},
		{"z", runeKey('z'), core.ActionJump, false, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false, false},
		{"p", runeKey('p'), core.ActionPause, false, false},
		{"r", runeKey('r'), core.ActionRestart, false, false},
		{"q", runeKey('q'), core.ActionQuit, false, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, false, true},
		{"unbound", runeKey('y'), core.ActionNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, run, quit := km.MapKey(tt.msg)
			if action != tt.action || run != tt.run || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v, %v), expected (%v, %v, %v)",
					tt.msg.String(), action, run, quit, tt.action, tt.run, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
