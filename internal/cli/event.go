package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/calendar"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

const dateTimeLayout = "2006-01-02 15:04"

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"cal"},
	Short:   "Manage calendar events",
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events, optionally for one day",
	RunE:    runEventList,
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an event",
	Long: `Add an event.

Examples:
  flownote event add "Dentist" --start "2026-01-09 14:30" --minutes 45`,
	Args: cobra.ExactArgs(1),
	RunE: runEventAdd,
}

var eventSlotCmd = &cobra.Command{
	Use:   "slot [date] [hour] [title]",
	Short: "Add a one-hour event starting on the hour",
	Args:  cobra.ExactArgs(3),
	RunE:  runEventSlot,
}

var eventMoveCmd = &cobra.Command{
	Use:   "move [id]",
	Short: "Move an event, keeping its length",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventMove,
}

var eventResizeCmd = &cobra.Command{
	Use:   "resize [id]",
	Short: "Move the end of an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventResize,
}

var eventEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change title or colour",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventEdit,
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventDelete,
}

var (
	eventDay     string
	eventStart   string
	eventMinutes int
	eventDays    int
	eventColor   string
	eventTitle   string
)

func init() {
	eventListCmd.Flags().StringVar(&eventDay, "day", "", "Only events starting on this date (YYYY-MM-DD)")
	eventAddCmd.Flags().StringVar(&eventStart, "start", "", `Start time "YYYY-MM-DD HH:MM" (required)`)
	eventAddCmd.Flags().IntVarP(&eventMinutes, "minutes", "m", 60, "Length in minutes")
	eventAddCmd.Flags().StringVarP(&eventColor, "color", "c", "", "Colour (one of the palette hex values)")
	_ = eventAddCmd.MarkFlagRequired("start")
	eventSlotCmd.Flags().StringVarP(&eventColor, "color", "c", "", "Colour (one of the palette hex values)")
	eventMoveCmd.Flags().IntVarP(&eventMinutes, "minutes", "m", 0, "Minutes to shift")
	eventMoveCmd.Flags().IntVarP(&eventDays, "days", "d", 0, "Days to shift")
	eventResizeCmd.Flags().IntVarP(&eventMinutes, "minutes", "m", 0, "Minutes to add to the end")
	eventEditCmd.Flags().StringVarP(&eventTitle, "title", "t", "", "New title")
	eventEditCmd.Flags().StringVarP(&eventColor, "color", "c", "", "New colour (one of the palette hex values)")

	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventSlotCmd)
	eventCmd.AddCommand(eventMoveCmd)
	eventCmd.AddCommand(eventResizeCmd)
	eventCmd.AddCommand(eventEditCmd)
	eventCmd.AddCommand(eventDeleteCmd)
}

func printEvent(cmd *cobra.Command, e model.CalendarEvent) {
	mark := ""
	if e.CreatedFromTimer {
		mark = " ⏱"
	}
	printf(cmd, "  %s  %s – %s  %s%s\n",
		shortID(e.ID), e.Start().Format(dateTimeLayout), e.End().Format("15:04"), e.Title, mark)
}

func findEvent(st *store.Store, arg string) (model.CalendarEvent, error) {
	events := st.CalendarEvents()
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	id, err := resolveID("event", arg, ids)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.CalendarEvent{}, fmt.Errorf("event %q not found", arg)
}

func runEventList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		events := st.CalendarEvents()
		if eventDay != "" {
			day, err := time.ParseInLocation(model.DateLayout, eventDay, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --day %q: use YYYY-MM-DD", eventDay)
			}
			events = calendar.EventsForDay(events, day)
		}
		if len(events) == 0 {
			printf(cmd, "No events.\n")
			return nil
		}
		for _, e := range events {
			printEvent(cmd, e)
		}
		return nil
	})
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	start, err := time.ParseInLocation(dateTimeLayout, eventStart, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --start %q: use %q", eventStart, dateTimeLayout)
	}
	e, err := calendar.NewEvent(args[0], start, start.Add(time.Duration(eventMinutes)*time.Minute), eventColor)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := st.AddCalendarEvent(ctx, e)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Added event:\n")
		printEvent(cmd, e)
		return nil
	})
}

func runEventSlot(cmd *cobra.Command, args []string) error {
	day, err := time.ParseInLocation(model.DateLayout, args[0], time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
	}
	hour, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid hour %q", args[1])
	}
	e, err := calendar.SlotEvent(day, hour, args[2], eventColor)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := st.AddCalendarEvent(ctx, e)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Added event:\n")
		printEvent(cmd, e)
		return nil
	})
}

// runEventMove replays the shift as a drag gesture on the grid.
func runEventMove(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := findEvent(st, args[0])
		if err != nil {
			return err
		}
		dx := float64(eventDays) * calendar.DayColumnWidth
		dy := float64(eventMinutes) * calendar.PixelsPerHour / 60
		patch := calendar.NewDrag(e, 0, 0).Move(dx, dy)
		e, err = st.UpdateCalendarEvent(ctx, e.ID, patch)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Moved:\n")
		printEvent(cmd, e)
		return nil
	})
}

func runEventResize(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := findEvent(st, args[0])
		if err != nil {
			return err
		}
		dy := float64(eventMinutes) * calendar.PixelsPerHour / 60
		patch, ok := calendar.NewResize(e, 0).Move(dy)
		if !ok {
			return fmt.Errorf("%w: event must be longer than %v", model.ErrInvalid, calendar.MinSpan)
		}
		e, err = st.UpdateCalendarEvent(ctx, e.ID, patch)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Resized:\n")
		printEvent(cmd, e)
		return nil
	})
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	var patch model.EventPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &eventTitle
	}
	if cmd.Flags().Changed("color") {
		patch.Color = &eventColor
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := findEvent(st, args[0])
		if err != nil {
			return err
		}
		e, err = st.UpdateCalendarEvent(ctx, e.ID, patch)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Updated:\n")
		printEvent(cmd, e)
		return nil
	})
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := findEvent(st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteCalendarEvent(ctx, e.ID); err != nil {
			return err
		}
		printf(cmd, "✓ Deleted %q\n", e.Title)
		return nil
	})
}
