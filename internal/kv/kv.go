// Package kv is the key-value persistence the store mirrors its fields to.
// Values are opaque bytes; the store writes JSON.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for keys that were never written or were deleted.
var ErrNotFound = errors.New("kv: key not found")

// Keys persisted by the store.
const (
	KeyProfile        = "profile"
	KeyNotes          = "notes"
	KeyJournals       = "journals"
	KeyHabits         = "habits"
	KeyCalendarEvents = "calendarEvents"
	KeyOwnedSkins     = "ownedSkins"
	KeyActiveSkin     = "activeSkin"
	KeyTasks          = "tasks"
	KeyProjects       = "projects"
	KeyClaimedRewards = "claimedRewards"
	KeySessions       = "flownote_sessions"
	KeySettings       = "settings"
)

// Storage is a flat key-value store. Writes replace the previous value (last write wins).
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
