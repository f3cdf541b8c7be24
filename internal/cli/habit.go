package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
	"github.com/existflow/flownote/internal/streak"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track daily habits",
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with today's state",
	RunE:    runHabitList,
}

var habitAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

var habitRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a habit",
	Args:  cobra.ExactArgs(2),
	RunE:  runHabitRename,
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a habit",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitDelete,
}

var habitDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a habit for a day",
	Long: `Toggle a habit for a day, today unless --date is given.

Examples:
  flownote habit done water
  flownote habit done water --date 2026-01-08`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitDone,
}

var habitDate string

func init() {
	habitDoneCmd.Flags().StringVar(&habitDate, "date", "", "Date (YYYY-MM-DD), default today")

	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitRenameCmd)
	habitCmd.AddCommand(habitDeleteCmd)
	habitCmd.AddCommand(habitDoneCmd)
}

func findHabit(st *store.Store, arg string) (model.Habit, error) {
	habits := st.Habits()
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	id, err := resolveID("habit", arg, ids)
	if err != nil {
		return model.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("habit %q not found", arg)
}

func runHabitList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		habits := st.Habits()
		if len(habits) == 0 {
			printf(cmd, "No habits yet. Add one with 'flownote habit add'.\n")
			return nil
		}
		today := model.DateKey(st.Now())
		for _, h := range habits {
			mark := "○"
			if h.Done(today) {
				mark = "✓"
			}
			printf(cmd, "  %s %-10s %s\n", mark, shortID(h.ID), h.Name)
		}
		return nil
	})
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		h, err := st.AddHabit(ctx, args[0])
		if err != nil {
			return err
		}
		printf(cmd, "✓ Added habit: %s (%s)\n", h.Name, shortID(h.ID))
		return nil
	})
}

func runHabitRename(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		h, err := findHabit(st, args[0])
		if err != nil {
			return err
		}
		if err := st.RenameHabit(ctx, h.ID, args[1]); err != nil {
			return err
		}
		printf(cmd, "✓ Renamed %q to %q\n", h.Name, args[1])
		return nil
	})
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		h, err := findHabit(st, args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteHabit(ctx, h.ID); err != nil {
			return err
		}
		printf(cmd, "✓ Deleted habit %q\n", h.Name)
		return nil
	})
}

func runHabitDone(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		h, err := findHabit(st, args[0])
		if err != nil {
			return err
		}
		date := habitDate
		if date == "" {
			date = model.DateKey(st.Now())
		}
		done, err := st.ToggleHabit(ctx, h.ID, date)
		if err != nil {
			return err
		}
		if done {
			printf(cmd, "✓ %s done on %s\n", h.Name, date)
		} else {
			printf(cmd, "○ %s cleared on %s\n", h.Name, date)
		}
		return nil
	})
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the habit streak",
	RunE:  runStreak,
}

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Streak rewards",
	RunE:  runRewardList,
}

var rewardClaimCmd = &cobra.Command{
	Use:   "claim [id]",
	Short: "Claim a reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runRewardClaim,
}

var streakPeriod string

func init() {
	streakCmd.Flags().StringVarP(&streakPeriod, "period", "p", "week", "Window: week or month")
	rewardCmd.AddCommand(rewardClaimCmd)
}

func runStreak(cmd *cobra.Command, args []string) error {
	period, err := streak.ParsePeriod(streakPeriod)
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		stats := st.Streak(period)
		row := ""
		for _, d := range stats.Days {
			if d.Complete {
				row += "■"
			} else {
				row += "□"
			}
		}
		printf(cmd, "%s\n", row)
		printf(cmd, "Current streak: %d days\n", stats.CurrentStreak)
		printf(cmd, "Completed %d / missed %d in the last %d days\n", stats.Completed, stats.Missed, len(stats.Days))
		return nil
	})
}

func runRewardList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		printf(cmd, "Coins: %d\n", st.Profile().Coins)
		for _, r := range st.Rewards() {
			state := "locked"
			switch {
			case r.Claimed:
				state = "claimed"
			case r.Unlocked:
				state = "ready"
			}
			printf(cmd, "  %-10s %2d days  %4d coins  %s\n", r.ID, r.Days, r.Coins, state)
		}
		return nil
	})
}

func runRewardClaim(cmd *cobra.Command, args []string) error {
	reward, ok := streak.FindReward(args[0])
	if !ok {
		return fmt.Errorf("reward %q not found", args[0])
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if _, err := st.ClaimReward(ctx, reward.ID, reward.Coins); err != nil {
			return err
		}
		printf(cmd, "✓ Claimed %d coins (balance %d)\n", reward.Coins, st.Profile().Coins)
		return nil
	})
}
