package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. run is set for
// shift+arrow, which moves and runs at once.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, run, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, false, true
	case "left", "a", "h":
		return core.ActionLeft, false, false
	case "shift+left", "A", "H":
		return core.ActionLeft, true, false
	case "right", "d", "l":
		return core.ActionRight, false, false
	case "shift+right", "D", "L":
		return core.ActionRight, true, false
	case "x", "X":
		return core.ActionRun, false, false
	case " ", "space", "up", "w", "z":
		return core.ActionJump, false, false
	case "down", "s":
		return core.ActionDown, false, false
	case "enter":
		return core.ActionConfirm, false, false
	case "b", "esc":
		return core.ActionBack, false, false
	case "p":
		return core.ActionPause, false, false
	case "r":
		return core.ActionRestart, false, false
	}
	return core.ActionNone, false, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
