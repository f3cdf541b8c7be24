// Package streak derives habit streaks and the coin rewards they unlock.
package streak

import (
	"fmt"
	"time"

	"github.com/existflow/flownote/internal/model"
)

// Period is a trailing window length in days.
type Period int

const (
	Week  Period = 7
	Month Period = 30
)

// ParsePeriod accepts "week" or "month".
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "week", "":
		return Week, nil
	case "month":
		return Month, nil
	}
	return 0, fmt.Errorf("%w: unknown period %q", model.ErrInvalid, s)
}

func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	}
	return fmt.Sprintf("%d days", int(p))
}

// Day is one date of the window.
type Day struct {
	Date     string `json:"date"`
	Complete bool   `json:"complete"`
}

// Stats summarizes a window.
type Stats struct {
	Days      []Day `json:"days"` // oldest first
	Completed int   `json:"completed"`
	Missed    int   `json:"missed"`
	// CurrentStreak is the run of complete days ending today.
	CurrentStreak int `json:"currentStreak"`
	// LeadingRun counts complete days from the oldest date forward and stops
	// at the first incomplete one.
	LeadingRun int `json:"leadingRun"`
}

// Window returns the last n date keys ending with today, oldest first.
func Window(today time.Time, n int) []string {
	dates := make([]string, n)
	y, m, d := today.Date()
	for i := 0; i < n; i++ {
		// Noon keeps the date stable across DST shifts.
		day := time.Date(y, m, d-(n-1-i), 12, 0, 0, 0, today.Location())
		dates[i] = model.DateKey(day)
	}
	return dates
}

// Complete reports whether every habit is done on date. No habits means no day is complete.
func Complete(habits []model.Habit, date string) bool {
	if len(habits) == 0 {
		return false
	}
	for _, h := range habits {
		if !h.Done(date) {
			return false
		}
	}
	return true
}

// Compute evaluates the window of period days ending today.
func Compute(habits []model.Habit, period Period, today time.Time) Stats {
	dates := Window(today, int(period))
	st := Stats{Days: make([]Day, len(dates))}

	leading := true
	for i, date := range dates {
		ok := Complete(habits, date)
		st.Days[i] = Day{Date: date, Complete: ok}
		if ok {
			st.Completed++
		} else {
			st.Missed++
		}
		if leading && ok {
			st.LeadingRun++
		} else {
			leading = false
		}
	}

	for i := len(st.Days) - 1; i >= 0 && st.Days[i].Complete; i-- {
		st.CurrentStreak++
	}
	return st
}
