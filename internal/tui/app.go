package tui

import (
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sooahn/daygoal/internal/config"
	"github.com/sooahn/daygoal/internal/planner"
	"github.com/sooahn/daygoal/internal/repository"
	"github.com/sooahn/daygoal/internal/tui/screens"
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProject
	ScreenCreate
	ScreenStats
)

type App struct {
	db      *sql.DB
	cfg     *config.Config
	planner *planner.Planner

	currentScreen Screen
	width         int
	height        int

	// Screen models
	dashboard *screens.Dashboard
	project   *screens.ProjectScreen
	create    *screens.CreateScreen
	stats     *screens.StatsScreen
}

func NewApp(db *sql.DB, cfg *config.Config, pl *planner.Planner) *App {
	return &App{
		db:            db,
		cfg:           cfg,
		planner:       pl,
		currentScreen: ScreenDashboard,
	}
}

func (a *App) Init() tea.Cmd {
	projects := repository.NewProjectRepo(a.db)
	tasks := repository.NewTaskRepo(a.db)
	stats := repository.NewStatsRepo(a.db)

	a.dashboard = screens.NewDashboard(projects, stats, a.planner)
	a.project = screens.NewProjectScreen(projects, tasks, a.planner)
	a.create = screens.NewCreateScreen(a.planner, a.cfg)
	a.stats = screens.NewStatsScreen(stats)

	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.currentScreen == ScreenDashboard {
				return a, tea.Quit
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenDashboard:
		cmd = a.dashboard.Update(msg)
	case ScreenProject:
		cmd = a.project.Update(msg)
	case ScreenCreate:
		cmd = a.create.Update(msg)
	case ScreenStats:
		cmd = a.stats.Update(msg)
	}

	return a, cmd
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case "dashboard":
		a.currentScreen = ScreenDashboard
		return a, a.dashboard.Init()
	case "project":
		a.currentScreen = ScreenProject
		a.project.SetProject(msg.ProjectID)
		return a, a.project.Init()
	case "create":
		a.currentScreen = ScreenCreate
		return a, a.create.Init()
	case "stats":
		a.currentScreen = ScreenStats
		return a, a.stats.Init()
	}
	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenProject:
		content = a.project.View()
	case ScreenCreate:
		content = a.create.View()
	case ScreenStats:
		content = a.stats.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(db *sql.DB, cfg *config.Config, pl *planner.Planner) error {
	app := NewApp(db, cfg, pl)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
