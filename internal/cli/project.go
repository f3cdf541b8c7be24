package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/store"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, and manage projects for organizing tasks.`,
}

var projectNewCmd = &cobra.Command{
	Use:     "new [name]",
	Aliases: []string{"add"},
	Short:   "Create a new project",
	Long: `Create a new project for organizing tasks.

Examples:
  flownote project new "Work"
  flownote project new "Personal" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project] [name]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project]",
	Short: "Delete a project",
	Long:  `Delete a project. Its tasks are kept without a project.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectColor string

func init() {
	projectNewCmd.Flags().StringVarP(&projectColor, "color", "c", "", "Project color (hex)")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		p, err := st.AddProject(ctx, args[0], projectColor)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Created project: %s (%s)\n", p.Name, shortID(p.ID))
		return nil
	})
}

func runProjectList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		projects := st.Projects()
		if len(projects) == 0 {
			printf(cmd, "No projects found.\n")
			return nil
		}

		counts := make(map[string]int)
		for _, t := range st.Tasks(store.TaskFilter{}) {
			counts[t.ProjectID]++
		}

		printf(cmd, "Projects:\n")
		for _, p := range projects {
			printf(cmd, "  %s  %-20s %s  (%d tasks)\n", shortID(p.ID), p.Name, p.Color, counts[p.ID])
		}
		return nil
	})
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := projectRef(st, args[0])
		if err != nil {
			return err
		}
		if err := st.RenameProject(ctx, id, args[1]); err != nil {
			return err
		}
		printf(cmd, "✓ Renamed project to %q\n", args[1])
		return nil
	})
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := projectRef(st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteProject(ctx, id); err != nil {
			return err
		}
		printf(cmd, "✓ Deleted project %s\n", args[0])
		return nil
	})
}
