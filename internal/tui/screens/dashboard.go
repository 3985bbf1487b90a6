package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/planner"
	"github.com/sooahn/daygoal/internal/repository"
)

// Dashboard is the landing screen listing all projects
type Dashboard struct {
	projects *repository.ProjectRepo
	stats    *repository.StatsRepo
	planner  *planner.Planner

	items  []models.Project
	user   *models.UserStats
	cursor int
	err    error
}

func NewDashboard(projects *repository.ProjectRepo, stats *repository.StatsRepo, pl *planner.Planner) *Dashboard {
	return &Dashboard{projects: projects, stats: stats, planner: pl}
}

type dashboardDataMsg struct {
	items []models.Project
	user  *models.UserStats
	err   error
}

func (d *Dashboard) loadData() tea.Msg {
	ctx := context.Background()

	items, err := d.projects.GetAll()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	user, err := d.stats.GetOrCreate(ctx)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{items: items, user: user}
}

func (d *Dashboard) deleteSelected() tea.Cmd {
	id := d.items[d.cursor].ID
	return func() tea.Msg {
		if err := d.planner.DeleteProject(context.Background(), id); err != nil {
			return dashboardDataMsg{err: err}
		}
		return d.loadData()
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return d.loadData
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.items = msg.items
		d.user = msg.user
		d.err = msg.err
		if d.cursor >= len(d.items) {
			d.cursor = 0
		}
		return nil

	case RefreshMsg:
		return d.loadData

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.items)-1 {
				d.cursor++
			}
		case "enter":
			if d.cursor < len(d.items) {
				return NavigateToProject(d.items[d.cursor].ID)
			}
		case "n":
			return Navigate("create")
		case "s":
			return Navigate("stats")
		case "D":
			if d.cursor < len(d.items) {
				return d.deleteSelected()
			}
		}
	}
	return nil
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("daygoal"))
	b.WriteString("\n")

	if d.user != nil {
		summary := fmt.Sprintf("Lv.%d  %d pts  %d day streak",
			d.user.CurrentLevel, d.user.TotalPoints, d.user.StreakDays)
		b.WriteString(SubtitleStyle.Render(summary))
		b.WriteString("\n")
	}

	if d.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + d.err.Error()))
		b.WriteString("\n")
	}

	if len(d.items) == 0 {
		b.WriteString(DimStyle.Render("No projects yet. Press 'n' to plan a new goal."))
		b.WriteString("\n")
	}

	for i, p := range d.items {
		line := fmt.Sprintf("%-30s  %d/%d tasks  %d pts  due %s",
			truncate(p.Name, 30), p.CompletedTasks, p.TotalTasks,
			p.EarnedPoints, p.Deadline.Format("Jan 2"))
		if i == d.cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("enter: open • n: new goal • s: stats • D: delete • q: quit"))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
