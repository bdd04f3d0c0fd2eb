package ui

import "github.com/charmbracelet/lipgloss"

// --- UI Styles ---
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	subtleStyle     = lipgloss.NewStyle().Faint(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2A2B3D"))
	markStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Margin(0, 1)

	glyphPublished = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
	glyphDraft     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("○")
	glyphArchived  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("▣")
)
