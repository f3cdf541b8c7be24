package model

import "time"

// DefaultEventColor is the teal used when an event has no colour set.
const DefaultEventColor = "#3d7a7a"

// EventPalette lists the colours offered by the event editor.
var EventPalette = []string{
	"#3d7a7a",
	"#4a7bd0",
	"#d0604a",
	"#d09a3d",
	"#5fa35f",
	"#8a5fc0",
	"#c05f8a",
}

// CalendarEvent is a timed block on the calendar. Times are unix milliseconds.
type CalendarEvent struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	StartTime        int64  `json:"startTime"`
	EndTime          int64  `json:"endTime"`
	Color            string `json:"color,omitempty"`
	CreatedFromTimer bool   `json:"createdFromTimer"`
}

// Start returns the start time in local time.
func (e CalendarEvent) Start() time.Time {
	return time.UnixMilli(e.StartTime)
}

// End returns the end time in local time.
func (e CalendarEvent) End() time.Time {
	return time.UnixMilli(e.EndTime)
}

// Duration returns EndTime - StartTime.
func (e CalendarEvent) Duration() time.Duration {
	return time.Duration(e.EndTime-e.StartTime) * time.Millisecond
}

// EventPatch describes a partial update of a calendar event. Nil fields are left as they are.
type EventPatch struct {
	Title     *string `json:"title,omitempty"`
	StartTime *int64  `json:"startTime,omitempty"`
	EndTime   *int64  `json:"endTime,omitempty"`
	Color     *string `json:"color,omitempty"`
}

// Apply returns a copy of e with the patch applied.
func (p EventPatch) Apply(e CalendarEvent) CalendarEvent {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	return e
}

// ValidColor reports whether c is one of the palette colours.
func ValidColor(c string) bool {
	for _, p := range EventPalette {
		if p == c {
			return true
		}
	}
	return false
}

// Millis converts t to unix milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
