package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/session"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one line of the main menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	Mode   session.Mode
}

// DefaultMenuItems lists the entries of the main menu.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Campaign", Choice: ChoicePlay, Mode: session.ModeCampaign},
		{Title: "Endless", Choice: ChoicePlay, Mode: session.ModeEndless},
		{Title: "High Scores", Choice: ChoiceScores},
		{Title: "Quit", Choice: ChoiceQuit},
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	best      map[session.Mode]int // High score per mode, shown beside the entry
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(env Env) MenuModel {
	m := MenuModel{
		items:     DefaultMenuItems(),
		width:     env.Runtime.ScreenW,
		height:    env.Runtime.ScreenH,
		best:      make(map[session.Mode]int),
		config:    env.Runtime,
		keyMapper: NewKeyMapper(),
	}
	if env.Store != nil {
		for _, mode := range []session.Mode{session.ModeCampaign, session.ModeEndless} {
			if hs, err := env.Store.HighScore(string(mode)); err == nil {
				m.best[mode] = hs
			}
		}
	}
	return m
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.selected = &MenuItem{Choice: ChoiceQuit}

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected

	case MenuActionScoreboard:
		m.selected = &MenuItem{Choice: ChoiceScores}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  P L A T F O R M E R  "), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if best, ok := m.best[item.Mode]; ok && best > 0 && item.Choice == ChoicePlay {
			line = fmt.Sprintf("%-12s best %d", item.Title, best)
		}
		if i == m.cursor {
			b.WriteString(centerText(activeStyle.Render("> "+line), m.width))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen menu item, or nil while the menu is open.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
