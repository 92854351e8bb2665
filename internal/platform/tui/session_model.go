package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/session"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game or scores -> menu.
// It backs both the local menu command and every SSH connection.
type SessionModel struct {
	env      Env
	screen   screenKind
	menu     MenuModel
	game     *GameModel
	scores   *ScoreboardModel
	quitting bool
	err      error
}

// NewSessionModel creates a new session model.
func NewSessionModel(env Env) SessionModel {
	return SessionModel{
		env:  env,
		menu: NewMenuModel(env),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		sb := NewScoreboardModel(m.env.Store, m.env.Runtime.ScreenW, m.env.Runtime.ScreenH)
		m.scores = &sb
		m.screen = screenScores
		return m, sb.Init()

	case ChoicePlay:
		return m.startGame(selected.Mode)
	}
	return m, cmd
}

// startGame creates a controller for a fresh run.
func (m SessionModel) startGame(mode session.Mode) (tea.Model, tea.Cmd) {
	ctrl, err := m.env.NewController(mode, 1)
	if err != nil {
		m.env.logger().Error("cannot start session", "mode", mode, "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	// Each run gets a fresh seed unless one was pinned.
	if m.env.Runtime.Seed != 0 {
		m.env.Runtime.Seed++
	}

	game := NewGameModel(ctrl, m.env)
	m.game = &game
	m.screen = screenGame
	return m, game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if err := m.game.Err(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.scores = nil
	m.menu = NewMenuModel(m.env)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs the menu-driven flow in the local terminal.
func RunSession(env Env) error {
	p := tea.NewProgram(NewSessionModel(env), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}
