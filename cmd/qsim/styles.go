package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	barW     = 24 // width of the probability bar
	basisPad = 2  // spacing between the basis label and the amplitude
)

// Lipgloss styles used across the inspector.
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	controlsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	basisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	ampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))

	barStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	stepNextStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
