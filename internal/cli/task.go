package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Add, list, update and bulk-edit tasks and their subtasks.`,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered.

Examples:
  flownote task list
  flownote task list --status "In progress" --priority high
  flownote task list --project work --search report`,
	RunE: runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task.

Examples:
  flownote task add "Write report" --priority high --due 2026-01-12
  flownote task add "Buy milk" --project home`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskAdd,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [id...]",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskDelete,
}

var taskBulkCmd = &cobra.Command{
	Use:   "bulk [id...]",
	Short: "Set status, priority or due date on several tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskBulk,
}

var taskStatusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "List the configured task statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, st *store.Store) error {
			for _, s := range st.TaskStatuses() {
				printf(cmd, "  %s\n", s)
			}
			return nil
		})
	},
}

var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage subtasks",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add [task-id] [title]",
	Short: "Add a subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskAdd,
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle [task-id] [number]",
	Short: "Toggle a subtask between todo and done",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

var (
	taskStatus    string
	taskPriority  string
	taskDue       string
	taskProject   string
	taskNoProject bool
	taskSearch    string
	taskTitle     string
)

func init() {
	taskListCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Filter by status")
	taskListCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Filter by priority (low, medium, high)")
	taskListCmd.Flags().StringVar(&taskProject, "project", "", "Filter by project")
	taskListCmd.Flags().BoolVar(&taskNoProject, "no-project", false, "Only tasks without a project")
	taskListCmd.Flags().StringVarP(&taskSearch, "search", "q", "", "Search titles")

	taskAddCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Status (default: first configured status)")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Priority (low, medium, high)")
	taskAddCmd.Flags().StringVarP(&taskDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskProject, "project", "", "Project")

	taskUpdateCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "New status")
	taskUpdateCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "New priority, empty clears")
	taskUpdateCmd.Flags().StringVarP(&taskDue, "due", "d", "", "New due date, empty clears")
	taskUpdateCmd.Flags().StringVar(&taskProject, "project", "", "New project, empty clears")

	taskBulkCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "New status")
	taskBulkCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "New priority")
	taskBulkCmd.Flags().StringVarP(&taskDue, "due", "d", "", "New due date")

	subtaskCmd.AddCommand(subtaskAddCmd)
	subtaskCmd.AddCommand(subtaskToggleCmd)

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskBulkCmd)
	taskCmd.AddCommand(taskStatusesCmd)
	taskCmd.AddCommand(subtaskCmd)
}

// normalizePriority accepts priorities in any case.
func normalizePriority(p string) string {
	for _, v := range []string{model.PriorityLow, model.PriorityMedium, model.PriorityHigh} {
		if strings.EqualFold(p, v) {
			return v
		}
	}
	return p
}

func taskIDs(st *store.Store) []string {
	tasks := st.Tasks(store.TaskFilter{})
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// projectRef resolves a project by id prefix or by name.
func projectRef(st *store.Store, arg string) (string, error) {
	projects := st.Projects()
	ids := make([]string, len(projects))
	for i, p := range projects {
		if strings.EqualFold(p.Name, arg) {
			return p.ID, nil
		}
		ids[i] = p.ID
	}
	return resolveID("project", arg, ids)
}

func printTask(cmd *cobra.Command, t model.Task, projects map[string]string) {
	line := fmt.Sprintf("  %s  [%s] %s", shortID(t.ID), t.Status, t.Title)
	if t.Priority != "" {
		line += " !" + t.Priority
	}
	if t.DueDate != "" {
		line += " due " + t.DueDate
	}
	if name, ok := projects[t.ProjectID]; ok {
		line += " #" + name
	}
	printf(cmd, "%s\n", line)
	for i, sub := range t.Subtasks {
		mark := "○"
		if sub.Status == model.SubtaskDone {
			mark = "✓"
		}
		printf(cmd, "      %d. %s %s\n", i+1, mark, sub.Title)
	}
}

func projectNames(st *store.Store) map[string]string {
	names := make(map[string]string)
	for _, p := range st.Projects() {
		names[p.ID] = p.Name
	}
	return names
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		filter := store.TaskFilter{
			Status:    taskStatus,
			Priority:  normalizePriority(taskPriority),
			NoProject: taskNoProject,
			Query:     taskSearch,
		}
		if taskProject != "" {
			id, err := projectRef(st, taskProject)
			if err != nil {
				return err
			}
			filter.ProjectID = id
		}

		tasks := st.Tasks(filter)
		if len(tasks) == 0 {
			printf(cmd, "No tasks found.\n")
			return nil
		}
		names := projectNames(st)
		for _, t := range tasks {
			printTask(cmd, t, names)
		}
		return nil
	})
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		draft := model.Task{
			Title:    args[0],
			Status:   taskStatus,
			Priority: normalizePriority(taskPriority),
			DueDate:  taskDue,
		}
		if taskProject != "" {
			id, err := projectRef(st, taskProject)
			if err != nil {
				return err
			}
			draft.ProjectID = id
		}
		t, err := st.AddTask(ctx, draft)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Added task %s: %s\n", shortID(t.ID), t.Title)
		return nil
	})
}

// taskPatch collects the flags the user actually set.
func taskPatch(cmd *cobra.Command, st *store.Store) (model.TaskPatch, error) {
	var patch model.TaskPatch
	flags := cmd.Flags()
	if flags.Lookup("title") != nil && flags.Changed("title") {
		patch.Title = &taskTitle
	}
	if flags.Changed("status") {
		patch.Status = &taskStatus
	}
	if flags.Changed("priority") {
		p := normalizePriority(taskPriority)
		patch.Priority = &p
	}
	if flags.Changed("due") {
		patch.DueDate = &taskDue
	}
	if flags.Lookup("project") != nil && flags.Changed("project") {
		id := ""
		if taskProject != "" {
			var err error
			if id, err = projectRef(st, taskProject); err != nil {
				return patch, err
			}
		}
		patch.ProjectID = &id
	}
	return patch, nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := resolveID("task", args[0], taskIDs(st))
		if err != nil {
			return err
		}
		patch, err := taskPatch(cmd, st)
		if err != nil {
			return err
		}
		t, err := st.UpdateTask(ctx, id, patch)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Updated:\n")
		printTask(cmd, t, projectNames(st))
		return nil
	})
}

func resolveTaskIDs(st *store.Store, args []string) ([]string, error) {
	all := taskIDs(st)
	ids := make([]string, 0, len(args))
	for _, a := range args {
		id, err := resolveID("task", a, all)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		ids, err := resolveTaskIDs(st, args)
		if err != nil {
			return err
		}
		n, err := st.BulkDeleteTasks(ctx, ids)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Deleted %d task(s)\n", n)
		return nil
	})
}

func runTaskBulk(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		ids, err := resolveTaskIDs(st, args)
		if err != nil {
			return err
		}
		patch, err := taskPatch(cmd, st)
		if err != nil {
			return err
		}
		n, err := st.BulkUpdateTasks(ctx, ids, patch)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Updated %d task(s)\n", n)
		return nil
	})
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := resolveID("task", args[0], taskIDs(st))
		if err != nil {
			return err
		}
		t, err := st.AddSubtask(ctx, id, args[1])
		if err != nil {
			return err
		}
		printTask(cmd, t, projectNames(st))
		return nil
	})
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid subtask number %q", args[1])
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := resolveID("task", args[0], taskIDs(st))
		if err != nil {
			return err
		}
		t, err := st.ToggleSubtask(ctx, id, n-1)
		if err != nil {
			return err
		}
		printTask(cmd, t, projectNames(st))
		return nil
	})
}
