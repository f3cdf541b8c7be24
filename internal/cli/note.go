package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes and the journal",
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	RunE:    runNoteList,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title] [content]",
	Short: "Add a note",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runNoteAdd,
}

var noteShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change a note's title or content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

var journalCmd = &cobra.Command{
	Use:   "journal [content]",
	Short: "Write or list journal entries",
	Long: `Write the journal entry for a day, or list entries when no content is given.

Examples:
  flownote note journal "Shipped the release" --mood happy
  flownote note journal "Quiet day" --date 2026-01-08
  flownote note journal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

var (
	noteTitle   string
	noteContent string
	journalDate string
	journalMood string
)

func init() {
	noteEditCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "New title")
	noteEditCmd.Flags().StringVarP(&noteContent, "content", "c", "", "New content")
	journalCmd.Flags().StringVar(&journalDate, "date", "", "Date (YYYY-MM-DD), default today")
	journalCmd.Flags().StringVarP(&journalMood, "mood", "m", "", "Mood")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(journalCmd)
}

func findNote(st *store.Store, arg string) (model.Note, error) {
	notes := st.Notes()
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	id, err := resolveID("note", arg, ids)
	if err != nil {
		return model.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Note{}, fmt.Errorf("note %q not found", arg)
}

func runNoteList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		notes := st.Notes()
		if len(notes) == 0 {
			printf(cmd, "No notes.\n")
			return nil
		}
		for _, n := range notes {
			printf(cmd, "  %s  %s\n", shortID(n.ID), n.Title)
		}
		return nil
	})
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	content := ""
	if len(args) > 1 {
		content = args[1]
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		n, err := st.AddNote(ctx, args[0], content)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Added note %s: %s\n", shortID(n.ID), n.Title)
		return nil
	})
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		n, err := findNote(st, args[0])
		if err != nil {
			return err
		}
		printf(cmd, "%s\n\n%s\n", n.Title, n.Content)
		return nil
	})
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	var title, content *string
	if cmd.Flags().Changed("title") {
		title = &noteTitle
	}
	if cmd.Flags().Changed("content") {
		content = &noteContent
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		n, err := findNote(st, args[0])
		if err != nil {
			return err
		}
		if _, err := st.UpdateNote(ctx, n.ID, title, content); err != nil {
			return err
		}
		printf(cmd, "✓ Updated note %s\n", shortID(n.ID))
		return nil
	})
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		n, err := findNote(st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteNote(ctx, n.ID); err != nil {
			return err
		}
		printf(cmd, "✓ Deleted note %q\n", n.Title)
		return nil
	})
}

func runJournal(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if len(args) == 0 {
			entries := st.Journals()
			if len(entries) == 0 {
				printf(cmd, "No journal entries.\n")
				return nil
			}
			for _, j := range entries {
				mood := ""
				if j.Mood != "" {
					mood = " (" + j.Mood + ")"
				}
				printf(cmd, "%s%s\n  %s\n", j.Date, mood, j.Content)
			}
			return nil
		}

		date := journalDate
		if date == "" {
			date = model.DateKey(st.Now())
		}
		j, err := st.SaveJournal(ctx, date, args[0], journalMood)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Saved journal for %s\n", j.Date)
		return nil
	})
}
