package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext  lipgloss.Color = "#a6adc8"
	colorSurface  lipgloss.Color = "#585b70"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorRed      lipgloss.Color = "#f38ba8"
	colorLavender lipgloss.Color = "#b4befe"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(colorLavender)

	completeStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	incompleteStyle = lipgloss.NewStyle().Foreground(colorYellow)
	invalidStyle    = lipgloss.NewStyle().Foreground(colorRed)
	mutedStyle      = lipgloss.NewStyle().Foreground(colorSubtext)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	statusErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
	statusOKStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)
