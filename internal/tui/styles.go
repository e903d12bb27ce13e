package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/worktrack/internal/session"
	"github.com/fakeyudi/worktrack/internal/tracker"
)

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	// Section heading
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	workedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	// Status colours
	statusColors = map[session.Status]lipgloss.Color{
		session.StatusNotStarted: lipgloss.Color("245"),
		session.StatusWorking:    lipgloss.Color("82"),
		session.StatusPaused:     lipgloss.Color("214"),
		session.StatusEnded:      lipgloss.Color("39"),
	}
)

func statusStyle(v tracker.View) lipgloss.Style {
	if !v.Known {
		return errorStyle.Bold(true)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(statusColors[v.Status])
}
