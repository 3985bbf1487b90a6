package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/planner"
	"github.com/sooahn/daygoal/internal/repository"
	"github.com/sooahn/daygoal/internal/reward"
)

// ProjectScreen shows one project's tasks grouped by day
type ProjectScreen struct {
	projects *repository.ProjectRepo
	tasks    *repository.TaskRepo
	planner  *planner.Planner

	projectID int64
	project   *models.Project
	items     []models.Task
	cursor    int
	feedback  string
	err       error
}

func NewProjectScreen(projects *repository.ProjectRepo, tasks *repository.TaskRepo, pl *planner.Planner) *ProjectScreen {
	return &ProjectScreen{projects: projects, tasks: tasks, planner: pl}
}

// SetProject selects the project to display before the screen initializes
func (s *ProjectScreen) SetProject(id int64) {
	s.projectID = id
	s.cursor = 0
	s.feedback = ""
}

type projectDataMsg struct {
	project *models.Project
	items   []models.Task
	err     error
}

type toggleResultMsg struct {
	result *reward.Result
	err    error
}

type postponeDoneMsg struct {
	err error
}

func (s *ProjectScreen) loadData() tea.Msg {
	project, err := s.projects.GetByID(s.projectID)
	if err != nil {
		return projectDataMsg{err: err}
	}
	items, err := s.tasks.GetByProject(s.projectID)
	if err != nil {
		return projectDataMsg{err: err}
	}
	return projectDataMsg{project: project, items: items}
}

func (s *ProjectScreen) Init() tea.Cmd {
	return s.loadData
}

func (s *ProjectScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case projectDataMsg:
		s.project = msg.project
		s.items = msg.items
		s.err = msg.err
		if s.cursor >= len(s.items) {
			s.cursor = 0
		}
		return nil

	case toggleResultMsg:
		if msg.err != nil {
			s.err = msg.err
			return s.loadData
		}
		if msg.result != nil {
			s.feedback = rewardFeedback(msg.result)
		}
		return s.loadData

	case postponeDoneMsg:
		if msg.err != nil {
			s.err = msg.err
		} else {
			s.feedback = "Tasks rescheduled"
		}
		return s.loadData

	case RefreshMsg:
		return s.loadData

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.items)-1 {
				s.cursor++
			}
		case " ", "enter":
			if s.cursor < len(s.items) {
				return s.toggleSelected()
			}
		case "p":
			if s.cursor < len(s.items) {
				return s.postponeSelectedDay()
			}
		case "P":
			return s.postponeAll()
		case "esc", "q":
			return Navigate("dashboard")
		}
	}
	return nil
}

func (s *ProjectScreen) toggleSelected() tea.Cmd {
	task := s.items[s.cursor]
	return func() tea.Msg {
		result, err := s.planner.ToggleTask(context.Background(), s.projectID, task.ID, !task.Completed)
		return toggleResultMsg{result: result, err: err}
	}
}

func (s *ProjectScreen) postponeSelectedDay() tea.Cmd {
	task := s.items[s.cursor]
	return func() tea.Msg {
		err := s.planner.PostponeToNextDay(context.Background(), s.projectID, task.DueDate)
		return postponeDoneMsg{err: err}
	}
}

func (s *ProjectScreen) postponeAll() tea.Cmd {
	return func() tea.Msg {
		err := s.planner.PostponeAllIncomplete(context.Background(), s.projectID)
		return postponeDoneMsg{err: err}
	}
}

func rewardFeedback(r *reward.Result) string {
	parts := []string{fmt.Sprintf("+%d pts", r.Points)}
	for _, b := range r.NewBadges {
		parts = append(parts, fmt.Sprintf("%s %s unlocked!", b.Icon, b.Name))
	}
	parts = append(parts, fmt.Sprintf("Lv.%d, %d day streak", r.NewLevel, r.StreakDays))
	return strings.Join(parts, "  ")
}

func (s *ProjectScreen) View() string {
	var b strings.Builder

	if s.project == nil {
		b.WriteString(DimStyle.Render("Loading..."))
		return b.String()
	}

	b.WriteString(TitleStyle.Render(s.project.Name))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("deadline %s  •  %d/%d done  •  %d/%d pts",
		s.project.Deadline.Format("January 2"), s.project.CompletedTasks,
		s.project.TotalTasks, s.project.EarnedPoints, s.project.TotalPoints)))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + s.err.Error()))
		b.WriteString("\n")
	}

	lastDay := ""
	for i, t := range s.items {
		if day := t.DueDay(); day != lastDay {
			b.WriteString(SubtitleStyle.Render(t.DisplayDate()))
			b.WriteString("\n")
			lastDay = day
		}

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s %s", check, truncate(t.Title, 40),
			difficultyLabel(t.Difficulty), priorityLabel(t.Priority))
		if t.IsUserAdded {
			line += DimStyle.Render("  (added)")
		}
		if i == s.cursor {
			b.WriteString(SelectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if s.feedback != "" {
		b.WriteString("\n")
		b.WriteString(SuccessStyle.Render(s.feedback))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("space: toggle • p: postpone day • P: postpone all • esc: back"))
	return b.String()
}
