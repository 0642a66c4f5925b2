package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("86")  // Cyan
	colorSuccess = lipgloss.Color("82")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorDanger  = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("245") // Light gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	stateReadyStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	statePendingStyle = lipgloss.NewStyle().Foreground(colorWarning)
	stateFailedStyle  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	errStyle = lipgloss.NewStyle().Foreground(colorDanger)
)
