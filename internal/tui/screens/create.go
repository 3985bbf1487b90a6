package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sooahn/daygoal/internal/config"
	"github.com/sooahn/daygoal/internal/planner"
)

const deadlineLayout = "2006-01-02"

// CreateScreen is the new-goal form that feeds the planning pipeline
type CreateScreen struct {
	planner *planner.Planner
	cfg     *config.Config

	inputs  []textinput.Model
	labels  []string
	focus   int
	spinner spinner.Model
	working bool
	err     error
}

func NewCreateScreen(pl *planner.Planner, cfg *config.Config) *CreateScreen {
	labels := []string{"Goal", "Description", "Context", "Deadline (YYYY-MM-DD)"}

	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[0].Placeholder = "Launch my portfolio site"
	inputs[0].Focus()
	inputs[3].Placeholder = time.Now().AddDate(0, 0, 14).Format(deadlineLayout)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedStyle

	return &CreateScreen{planner: pl, cfg: cfg, inputs: inputs, labels: labels, spinner: sp}
}

type createDoneMsg struct {
	result *planner.CreateProjectResult
	err    error
}

func (s *CreateScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CreateScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case createDoneMsg:
		s.working = false
		if msg.err != nil {
			s.err = msg.err
			return nil
		}
		s.reset()
		return NavigateToProject(msg.result.Project.ID)

	case spinner.TickMsg:
		if !s.working {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if s.working {
			return nil
		}
		switch msg.String() {
		case "esc":
			s.reset()
			return Navigate("dashboard")
		case "tab", "down":
			s.setFocus((s.focus + 1) % len(s.inputs))
			return nil
		case "shift+tab", "up":
			s.setFocus((s.focus + len(s.inputs) - 1) % len(s.inputs))
			return nil
		case "enter":
			if s.focus < len(s.inputs)-1 {
				s.setFocus(s.focus + 1)
				return nil
			}
			return s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *CreateScreen) setFocus(i int) {
	s.inputs[s.focus].Blur()
	s.focus = i
	s.inputs[s.focus].Focus()
}

func (s *CreateScreen) reset() {
	for i := range s.inputs {
		s.inputs[i].SetValue("")
	}
	s.setFocus(0)
	s.working = false
	s.err = nil
}

func (s *CreateScreen) submit() tea.Cmd {
	deadline, err := time.ParseInLocation(deadlineLayout, strings.TrimSpace(s.inputs[3].Value()), time.Local)
	if err != nil {
		s.err = planner.ErrInvalidDeadline
		return nil
	}

	input := planner.CreateProjectInput{
		Name:            strings.TrimSpace(s.inputs[0].Value()),
		GoalDescription: strings.TrimSpace(s.inputs[1].Value()),
		GoalContext:     strings.TrimSpace(s.inputs[2].Value()),
		Deadline:        deadline,
		Settings:        s.cfg.ScheduleSettings(),
	}

	s.working = true
	s.err = nil

	run := func() tea.Msg {
		result, err := s.planner.CreateProject(context.Background(), input)
		return createDoneMsg{result: result, err: err}
	}
	return tea.Batch(s.spinner.Tick, run)
}

func (s *CreateScreen) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("New Goal"))
	b.WriteString("\n")

	for i, in := range s.inputs {
		b.WriteString(SubtitleStyle.Render(s.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if s.working {
		b.WriteString(s.spinner.View())
		b.WriteString(DimStyle.Render(" Breaking your goal into a day-by-day plan..."))
		b.WriteString("\n")
	}

	if s.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + s.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("tab: next field • enter: submit • esc: cancel"))
	return b.String()
}
