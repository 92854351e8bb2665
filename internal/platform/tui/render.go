package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorBrick:      lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
	core.ColorPipe:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorQBlock:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorUsedBlock:  lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorPlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorPlayerBig:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	core.ColorInvincible: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorEnemy:      lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	core.ColorMushroom:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorStar:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorPole:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorFlag:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorWarning:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
