package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Danger    = lipgloss.Color("#FF6B6B")
	Warning   = lipgloss.Color("#FFE66D")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Padding(0, 1)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	LabelFocusStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
