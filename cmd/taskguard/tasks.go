package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wronai/taskguard/internal/storage"
	"github.com/wronai/taskguard/internal/task"
	"github.com/wronai/taskguard/internal/tui"
)

func boardPath() string {
	return filepath.Join(storage.GetDataDir(), "tasks.json")
}

// getInitCommand returns the init command.
func getInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize taskguard in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storage.WriteDefaultConfig(".")
			if err != nil {
				return err
			}
			if err := task.NewStore(boardPath()).Save([]*task.Task{}); err != nil {
				return err
			}
			if err := (&storage.State{}).Save(storage.GetDataDir()); err != nil {
				return err
			}
			fmt.Printf("Created %s and %s\n", path, boardPath())
			return nil
		},
	}
}

// getAddCommand returns the add command.
func getAddCommand() *cobra.Command {
	var category, priority string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prio, err := parsePriority(priority)
			if err != nil {
				return err
			}
			board := task.NewBoard(boardPath())
			added, err := board.Add(args[0], category, prio)
			if err != nil {
				return err
			}
			fmt.Printf("Added [%s] %s\n", added.ID[:8], added.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "feature", "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "task priority: high, medium or low")
	return cmd
}

// getListCommand returns the list command.
func getListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := task.NewBoard(boardPath())
			tasks := board.List()
			if len(tasks) == 0 {
				fmt.Println("No tasks. Add one with 'taskguard add'.")
				return nil
			}
			for _, t := range tasks {
				category := ""
				if t.Category != "" {
					category = " (" + t.Category + ")"
				}
				fmt.Printf("%s [%s] %-6s %s%s\n", statusGlyph(t.Status), t.ID[:8], priorityName(t.Priority), t.Title, category)
			}
			return nil
		},
	}
}

// getStartCommand returns the start command.
func getStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start working on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := task.NewBoard(boardPath())
			started, err := board.Start(args[0])
			if err != nil {
				return err
			}

			if state, err := storage.LoadState(storage.GetDataDir()); err == nil {
				state.CurrentTaskID = started.ID
				_ = state.Save(storage.GetDataDir())
			}

			fmt.Printf("Started: %s\n", started.Title)
			return nil
		},
	}
}

// getCompleteCommand returns the complete command.
func getCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := task.NewBoard(boardPath())
			completed, err := board.Complete(args[0])
			if err != nil {
				return err
			}

			if state, err := storage.LoadState(storage.GetDataDir()); err == nil {
				state.CurrentTaskID = ""
				state.CompletedCount++
				_ = state.Save(storage.GetDataDir())
			}

			fmt.Printf("Completed: %s\n", completed.Title)
			return nil
		},
	}
}

// getImportCommand returns the import command.
func getImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import checklist items from a markdown TODO file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := storage.GetConfig().Todo.File
			if len(args) > 0 {
				file = args[0]
			}

			tasks, err := task.ImportTodoFile(file)
			if err != nil {
				return err
			}

			board := task.NewBoard(boardPath())
			added, err := board.Import(tasks)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d task(s) from %s\n", added, file)
			return nil
		},
	}
}

// getTasksCommand returns the interactive board command.
func getTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Open the interactive task board",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := task.NewBoard(boardPath())
			p := tea.NewProgram(tui.NewModel(board), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run board: %w", err)
			}
			return nil
		},
	}
}

func parsePriority(s string) (task.Priority, error) {
	switch s {
	case "high":
		return task.PriorityHigh, nil
	case "medium":
		return task.PriorityMedium, nil
	case "low":
		return task.PriorityLow, nil
	}
	return 0, fmt.Errorf("unknown priority %q (use high, medium or low)", s)
}

func priorityName(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "high"
	case task.PriorityMedium:
		return "medium"
	case task.PriorityLow:
		return "low"
	}
	return fmt.Sprintf("p%d", int(p))
}

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusInProgress:
		return "[~]"
	case task.StatusCompleted:
		return "[x]"
	case task.StatusBlocked:
		return "[!]"
	}
	return "[ ]"
}
