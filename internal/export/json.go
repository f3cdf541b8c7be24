// Package export writes the point-in-time data export. It is not an import format.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

// User is the exported profile. The password hash is never exported.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Coins int    `json:"coins"`
}

// Document is the export file layout.
type Document struct {
	ExportedAt     string                `json:"exportedAt"`
	User           User                  `json:"user"`
	Tasks          []model.Task          `json:"tasks"`
	Projects       []model.Project       `json:"projects"`
	Notes          []model.Note          `json:"notes"`
	Habits         []model.Habit         `json:"habits"`
	CalendarEvents []model.CalendarEvent `json:"calendarEvents"`
	TimerSessions  []model.TimerSession  `json:"timerSessions"`
	Settings       model.Settings        `json:"settings"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Build assembles a document from snap.
func Build(snap store.Snapshot, now time.Time) Document {
	return Document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		User: User{
			Name:  snap.Profile.Name,
			Email: snap.Profile.Email,
			Coins: snap.Profile.Coins,
		},
		Tasks:          nonNil(snap.Tasks),
		Projects:       nonNil(snap.Projects),
		Notes:          nonNil(snap.Notes),
		Habits:         nonNil(snap.Habits),
		CalendarEvents: nonNil(snap.CalendarEvents),
		TimerSessions:  nonNil(snap.TimerSessions),
		Settings:       snap.Settings,
	}
}

// FileName is flownote-export-<YYYY-MM-DD>.json for the local date of now.
func FileName(now time.Time) string {
	return "flownote-export-" + now.Format(model.DateLayout) + ".json"
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// WriteFile writes doc into dir under FileName(now) and returns the path.
func WriteFile(dir string, doc Document, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
