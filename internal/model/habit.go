package model

import (
	"strconv"
	"time"
)

// DateLayout is the key format of habit completions and journal dates.
const DateLayout = "2006-01-02"

// Habit is a daily habit with its completion history.
type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Completions map[string]bool `json:"completions"`
	CreatedAt   int64           `json:"createdAt,omitempty"`
}

// Done reports whether the habit was completed on date. A missing key counts as not done.
func (h Habit) Done(date string) bool {
	return h.Completions[date]
}

// DateKey formats t as a completion key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultHabits is the set a fresh install starts with.
func DefaultHabits() []Habit {
	names := []string{"Drink water", "Read 20 minutes", "Exercise"}
	habits := make([]Habit, len(names))
	for i, n := range names {
		habits[i] = Habit{
			ID:          "habit-" + strconv.Itoa(i+1),
			Name:        n,
			Completions: map[string]bool{},
		}
	}
	return habits
}
