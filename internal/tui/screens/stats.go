package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/repository"
)

// StatsScreen shows lifetime stats, badges and achievements
type StatsScreen struct {
	stats *repository.StatsRepo

	user *models.UserStats
	err  error
}

func NewStatsScreen(stats *repository.StatsRepo) *StatsScreen {
	return &StatsScreen{stats: stats}
}

type statsDataMsg struct {
	user *models.UserStats
	err  error
}

func (s *StatsScreen) loadData() tea.Msg {
	user, err := s.stats.GetOrCreate(context.Background())
	return statsDataMsg{user: user, err: err}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.loadData
}

func (s *StatsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.user = msg.user
		s.err = msg.err
		return nil

	case RefreshMsg:
		return s.loadData

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (s *StatsScreen) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Stats"))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + s.err.Error()))
		return b.String()
	}
	if s.user == nil {
		b.WriteString(DimStyle.Render("Loading..."))
		return b.String()
	}

	summary := fmt.Sprintf("Level %d\nTotal points: %d\nTasks completed: %d\nProjects completed: %d\nCurrent streak: %d day(s)",
		s.user.CurrentLevel, s.user.TotalPoints, s.user.CompletedTasks,
		s.user.CompletedProjects, s.user.StreakDays)
	b.WriteString(BoxStyle.Render(summary))
	b.WriteString("\n\n")

	b.WriteString(SubtitleStyle.Render("Badges"))
	b.WriteString("\n")
	if len(s.user.Badges) == 0 {
		b.WriteString(DimStyle.Render("  None yet. Complete a task to earn your first badge."))
		b.WriteString("\n")
	}
	for _, badge := range s.user.Badges {
		b.WriteString(NormalStyle.Render(fmt.Sprintf("  %s %s", badge.Icon, badge.Name)))
		b.WriteString(DimStyle.Render("  " + badge.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Achievements"))
	b.WriteString("\n")
	for _, a := range s.user.Achievements {
		if a.Unlocked {
			b.WriteString(SuccessStyle.Render("  ✓ " + a.Name))
		} else {
			b.WriteString(DimStyle.Render("  · " + a.Name))
		}
		b.WriteString(DimStyle.Render("  " + a.Description))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("esc: back"))
	return b.String()
}
