package store

import (
	"slices"

	"github.com/existflow/flownote/internal/model"
)

// Snapshot is a point-in-time copy of the whole store.
type Snapshot struct {
	Profile        model.Profile
	Settings       model.Settings
	Tasks          []model.Task
	Projects       []model.Project
	Notes          []model.Note
	Journals       []model.Journal
	Habits         []model.Habit
	CalendarEvents []model.CalendarEvent
	TimerSessions  []model.TimerSession
	OwnedSkins     []string
	ActiveSkin     string
	ClaimedRewards []string
}

// Snapshot copies every field under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Profile:        s.profile,
		Settings:       s.settings,
		Tasks:          cloneTasks(s.tasks),
		Projects:       slices.Clone(s.projects),
		Notes:          slices.Clone(s.notes),
		Journals:       slices.Clone(s.journals),
		Habits:         cloneHabits(s.habits),
		CalendarEvents: slices.Clone(s.events),
		TimerSessions:  slices.Clone(s.sessions),
		OwnedSkins:     slices.Clone(s.ownedSkins),
		ActiveSkin:     s.activeSkin,
		ClaimedRewards: slices.Clone(s.claimed),
	}
}
