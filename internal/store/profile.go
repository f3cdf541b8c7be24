package store

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
)

// ProfilePatch updates the editable profile fields.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// SettingsPatch updates user settings.
type SettingsPatch struct {
	Theme                *string `json:"theme,omitempty"`
	EmailNotifications   *bool   `json:"emailNotifications,omitempty"`
	DesktopNotifications *bool   `json:"desktopNotifications,omitempty"`
	WeekStart            *string `json:"weekStart,omitempty"`
}

// Profile returns the user profile.
func (s *Store) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile changes name and email.
func (s *Store) UpdateProfile(ctx context.Context, patch ProfilePatch) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Profile{}, invalid("name is required")
		}
		p.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return model.Profile{}, invalid(fmt.Sprintf("invalid email %q", email))
			}
		}
		p.Email = email
	}
	if err := s.persist(ctx, change{kv.KeyProfile, p, s.profile}); err != nil {
		return model.Profile{}, err
	}
	s.profile = p
	return p, nil
}

// SetPasswordHash stores a password hash on the profile.
func (s *Store) SetPasswordHash(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	p.PasswordHash = hash
	if err := s.persist(ctx, change{kv.KeyProfile, p, s.profile}); err != nil {
		return err
	}
	s.profile = p
	return nil
}

// Settings returns the user settings.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies patch.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.settings
	if patch.Theme != nil {
		switch *patch.Theme {
		case "light", "dark", "system":
			st.Theme = *patch.Theme
		default:
			return model.Settings{}, invalid(fmt.Sprintf("unknown theme %q", *patch.Theme))
		}
	}
	if patch.WeekStart != nil {
		switch *patch.WeekStart {
		case "monday", "sunday":
			st.WeekStart = *patch.WeekStart
		default:
			return model.Settings{}, invalid(fmt.Sprintf("week must start on monday or sunday, not %q", *patch.WeekStart))
		}
	}
	if patch.EmailNotifications != nil {
		st.EmailNotifications = *patch.EmailNotifications
	}
	if patch.DesktopNotifications != nil {
		st.DesktopNotifications = *patch.DesktopNotifications
	}
	if err := s.persist(ctx, change{kv.KeySettings, st, s.settings}); err != nil {
		return model.Settings{}, err
	}
	s.settings = st
	return st, nil
}
