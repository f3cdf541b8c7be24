package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change settings. Only the flags given are changed.

Examples:
  flownote settings set --theme dark
  flownote settings set --week-start sunday --desktop-notifications=false`,
	RunE: runSettingsSet,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the profile",
	RunE:  runProfile,
}

var (
	settingsTheme     string
	settingsEmail     bool
	settingsDesktop   bool
	settingsWeekStart string
	profileName       string
	profileEmail      string
)

func init() {
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme (light, dark, system)")
	settingsSetCmd.Flags().BoolVar(&settingsEmail, "email-notifications", false, "Email notifications")
	settingsSetCmd.Flags().BoolVar(&settingsDesktop, "desktop-notifications", false, "Desktop notifications")
	settingsSetCmd.Flags().StringVar(&settingsWeekStart, "week-start", "", "First day of the week (monday, sunday)")

	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "New email")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(profileCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		s := st.Settings()
		printf(cmd, "Theme:                 %s\n", s.Theme)
		printf(cmd, "Week starts:           %s\n", s.WeekStart)
		printf(cmd, "Email notifications:   %t\n", s.EmailNotifications)
		printf(cmd, "Desktop notifications: %t\n", s.DesktopNotifications)
		printf(cmd, "Skin:                  %s\n", st.ActiveSkin())
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	var patch store.SettingsPatch
	if cmd.Flags().Changed("theme") {
		patch.Theme = &settingsTheme
	}
	if cmd.Flags().Changed("email-notifications") {
		patch.EmailNotifications = &settingsEmail
	}
	if cmd.Flags().Changed("desktop-notifications") {
		patch.DesktopNotifications = &settingsDesktop
	}
	if cmd.Flags().Changed("week-start") {
		patch.WeekStart = &settingsWeekStart
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if _, err := st.UpdateSettings(ctx, patch); err != nil {
			return err
		}
		printf(cmd, "✓ Settings saved\n")
		return nil
	})
}

func runProfile(cmd *cobra.Command, args []string) error {
	var patch store.ProfilePatch
	if cmd.Flags().Changed("name") {
		patch.Name = &profileName
	}
	if cmd.Flags().Changed("email") {
		patch.Email = &profileEmail
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		p := st.Profile()
		if patch.Name != nil || patch.Email != nil {
			var err error
			if p, err = st.UpdateProfile(ctx, patch); err != nil {
				return err
			}
			printf(cmd, "✓ Profile saved\n")
		}
		printf(cmd, "Name:  %s\nEmail: %s\nCoins: %d\n", p.Name, p.Email, p.Coins)
		return nil
	})
}
