package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sooahn/daygoal/internal/config"
	"github.com/sooahn/daygoal/internal/db"
	"github.com/sooahn/daygoal/internal/decompose"
	"github.com/sooahn/daygoal/internal/models"
	"github.com/sooahn/daygoal/internal/planner"
	"github.com/sooahn/daygoal/internal/repository"
	"github.com/sooahn/daygoal/internal/reward"
	"github.com/sooahn/daygoal/internal/tui"
)

const dayLayout = "2006-01-02"

var rootCmd = &cobra.Command{
	Use:   "daygoal",
	Short: "Deadline-driven goal planner with daily task schedules",
	Long:  `Daygoal breaks a goal into concrete steps, spreads them across your working days before the deadline, and rewards you for finishing them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, database, pl := mustSetup()
		defer db.Close()

		if err := tui.Run(database, cfg, pl); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var newCmd = &cobra.Command{
	Use:   "new <goal>",
	Short: "Plan a new goal without opening the TUI",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, pl := mustSetup()
		defer db.Close()

		deadlineArg, _ := cmd.Flags().GetString("deadline")
		deadline, err := time.ParseInLocation(dayLayout, deadlineArg, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid deadline: %s (expected YYYY-MM-DD)\n", deadlineArg)
			os.Exit(1)
		}
		description, _ := cmd.Flags().GetString("description")
		goalContext, _ := cmd.Flags().GetString("context")

		fmt.Println("Breaking your goal into a day-by-day plan...")

		result, err := pl.CreateProject(context.Background(), planner.CreateProjectInput{
			Name:            args[0],
			GoalDescription: description,
			GoalContext:     goalContext,
			Deadline:        deadline,
			Settings:        cfg.ScheduleSettings(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Project #%d: %s (%d tasks, %d points available)\n",
			result.Project.ID, result.Project.Name,
			result.Project.TotalTasks, result.Project.TotalPoints)
		for _, t := range result.Tasks {
			fmt.Printf("  %s  %-40s [%s]\n", t.DueDay(), t.Title, t.Difficulty)
		}
	},
}

var postponeCmd = &cobra.Command{
	Use:   "postpone <project-id>",
	Short: "Push incomplete tasks to a later day",
	Long: `Push incomplete tasks of a project to a later day.

Examples:
  daygoal postpone 3 --all                              # everything incomplete moves to the next working day
  daygoal postpone 3 --from 2026-09-10                  # that day's incomplete tasks move one day forward
  daygoal postpone 3 --from 2026-09-10 --to 2026-09-14  # that day's incomplete tasks move to the given date`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, pl := mustSetup()
		defer db.Close()

		var projectID int64
		if _, err := fmt.Sscanf(args[0], "%d", &projectID); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid project id: %s\n", args[0])
			os.Exit(1)
		}

		all, _ := cmd.Flags().GetBool("all")
		fromArg, _ := cmd.Flags().GetString("from")
		toArg, _ := cmd.Flags().GetString("to")

		ctx := context.Background()
		var err error
		switch {
		case all:
			err = pl.PostponeAllIncomplete(ctx, projectID)
		case fromArg != "" && toArg != "":
			var from, to time.Time
			from, err = time.ParseInLocation(dayLayout, fromArg, time.Local)
			if err == nil {
				to, err = time.ParseInLocation(dayLayout, toArg, time.Local)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, "Invalid date (expected YYYY-MM-DD)")
				os.Exit(1)
			}
			err = pl.PostponeToDate(ctx, projectID, from, to)
		case fromArg != "":
			var from time.Time
			from, err = time.ParseInLocation(dayLayout, fromArg, time.Local)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Invalid date (expected YYYY-MM-DD)")
				os.Exit(1)
			}
			err = pl.PostponeToNextDay(ctx, projectID, from)
		default:
			fmt.Fprintln(os.Stderr, "Nothing to do: pass --all or --from")
			os.Exit(1)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Tasks rescheduled.")
	},
}

var reprojectCmd = &cobra.Command{
	Use:   "reproject <project-id>",
	Short: "Re-plan a project against a new deadline",
	Long:  `Re-runs the goal breakdown with a new deadline and replaces the project's task list. Progress on the old tasks is discarded.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, pl := mustSetup()
		defer db.Close()

		var projectID int64
		if _, err := fmt.Sscanf(args[0], "%d", &projectID); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid project id: %s\n", args[0])
			os.Exit(1)
		}

		deadlineArg, _ := cmd.Flags().GetString("deadline")
		deadline, err := time.ParseInLocation(dayLayout, deadlineArg, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid deadline: %s (expected YYYY-MM-DD)\n", deadlineArg)
			os.Exit(1)
		}

		fmt.Println("Re-planning against the new deadline...")

		result, err := pl.Reproject(context.Background(), projectID, planner.CreateProjectInput{
			Deadline: deadline,
			Settings: cfg.ScheduleSettings(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if result == nil {
			fmt.Fprintf(os.Stderr, "No project with id %d\n", projectID)
			os.Exit(1)
		}

		fmt.Printf("Project #%d re-planned: %d tasks through %s\n",
			result.Project.ID, result.Project.TotalTasks, result.Project.Deadline.Format(dayLayout))
		for _, t := range result.Tasks {
			fmt.Printf("  %s  %-40s [%s]\n", t.DueDay(), t.Title, t.Difficulty)
		}
	},
}

var addCmd = &cobra.Command{
	Use:   "add <project-id> <title>",
	Short: "Add your own task to a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, pl := mustSetup()
		defer db.Close()

		var projectID int64
		if _, err := fmt.Sscanf(args[0], "%d", &projectID); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid project id: %s\n", args[0])
			os.Exit(1)
		}

		difficulty, _ := cmd.Flags().GetString("difficulty")
		priority, _ := cmd.Flags().GetString("priority")
		dueArg, _ := cmd.Flags().GetString("due")

		in := planner.AddTaskInput{
			Title:      args[1],
			Difficulty: models.Difficulty(difficulty),
			Priority:   models.Priority(priority),
		}
		if dueArg != "" {
			due, err := time.ParseInLocation(dayLayout, dueArg, time.Local)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid due date: %s (expected YYYY-MM-DD)\n", dueArg)
				os.Exit(1)
			}
			in.DueDate = due
		}

		task, err := pl.AddTask(context.Background(), projectID, in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if task == nil {
			fmt.Fprintf(os.Stderr, "No project with id %d\n", projectID)
			os.Exit(1)
		}

		fmt.Printf("Added %q on %s (worth %d points when done)\n",
			task.Title, task.DueDay(), reward.TaskPoints(*task))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime points, streak, badges and achievements",
	Run: func(cmd *cobra.Command, args []string) {
		_, database, _ := mustSetup()
		defer db.Close()

		stats := repository.NewStatsRepo(database)
		user, err := stats.GetOrCreate(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Level %d  •  %d points  •  %d day streak\n",
			user.CurrentLevel, user.TotalPoints, user.StreakDays)
		fmt.Printf("Tasks completed: %d  Projects completed: %d\n",
			user.CompletedTasks, user.CompletedProjects)

		fmt.Println("\nBadges:")
		if len(user.Badges) == 0 {
			fmt.Println("  (none yet)")
		}
		for _, b := range user.Badges {
			fmt.Printf("  %s %s - %s\n", b.Icon, b.Name, b.Description)
		}

		fmt.Println("\nAchievements:")
		for _, a := range user.Achievements {
			mark := " "
			if a.Unlocked {
				mark = "x"
			}
			fmt.Printf("  [%s] %s - %s\n", mark, a.Name, a.Description)
		}
	},
}

// mustSetup loads config, opens the database (running migrations on a fresh
// file), and assembles the planner. Exits on any failure.
func mustSetup() (*config.Config, *sql.DB, *planner.Planner) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	status, _ := db.GetMigrationStatus()
	if status != nil && status.CurrentVersion == 0 {
		if err := db.RunMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running initial migrations: %v\n", err)
			os.Exit(1)
		}
	}

	projects := repository.NewProjectRepo(database)
	tasks := repository.NewTaskRepo(database)
	stats := repository.NewStatsRepo(database)
	decomposer := decompose.NewClient(cfg.APIKey(), cfg.GeminiModel, cfg.Timeout())
	pl := planner.New(projects, tasks, stats, decomposer, nil)

	return cfg, database, pl
}

func init() {
	newCmd.Flags().StringP("deadline", "d", "", "Deadline as YYYY-MM-DD (required)")
	newCmd.Flags().String("description", "", "Extra detail about the goal")
	newCmd.Flags().String("context", "", "Constraints or background for the breakdown")
	_ = newCmd.MarkFlagRequired("deadline")

	postponeCmd.Flags().Bool("all", false, "Move every incomplete task to the next working day")
	postponeCmd.Flags().String("from", "", "Day whose incomplete tasks should move (YYYY-MM-DD)")
	postponeCmd.Flags().String("to", "", "Target day (YYYY-MM-DD), used with --from")

	addCmd.Flags().String("difficulty", "medium", "easy, medium or hard")
	addCmd.Flags().String("priority", "medium", "low, medium, high or critical")
	addCmd.Flags().String("due", "", "Due day as YYYY-MM-DD (default today)")

	reprojectCmd.Flags().StringP("deadline", "d", "", "New deadline as YYYY-MM-DD (required)")
	_ = reprojectCmd.MarkFlagRequired("deadline")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(reprojectCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(postponeCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
