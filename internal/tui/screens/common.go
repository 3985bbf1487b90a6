package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sooahn/daygoal/internal/models"
)

// NavigateMsg is sent when navigation to another screen is requested
type NavigateMsg struct {
	Screen    string
	ProjectID int64
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

func NavigateToProject(projectID int64) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: "project", ProjectID: projectID}
	}
}

// RefreshMsg is sent when data should be refreshed
type RefreshMsg struct{}

func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

func priorityLabel(p models.Priority) string {
	switch p {
	case models.PriorityCritical:
		return ErrorStyle.Render("critical")
	case models.PriorityHigh:
		return WarningStyle.Render("high")
	case models.PriorityLow:
		return DimStyle.Render("low")
	default:
		return NormalStyle.Render("medium")
	}
}

func difficultyLabel(d models.Difficulty) string {
	switch d {
	case models.DifficultyHard:
		return WarningStyle.Render("hard")
	case models.DifficultyEasy:
		return SuccessStyle.Render("easy")
	default:
		return NormalStyle.Render("medium")
	}
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
