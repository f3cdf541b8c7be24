// Package calendar holds the week-grid geometry of calendar events and the
// drag and resize gestures that move them.
package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/model"
)

// Grid constants.
const (
	PixelsPerHour  = 48.0
	DayColumnWidth = 120.0
	MinSpan        = 15 * time.Minute
	MinBlockHeight = 24.0
	AllDayAfter    = 12 * time.Hour
)

// DayBounds returns local midnight and 23:59:59.999 of day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), day.Location())
	return start, end
}

// EventsForDay returns the events starting within day, both bounds inclusive.
func EventsForDay(events []model.CalendarEvent, day time.Time) []model.CalendarEvent {
	start, end := DayBounds(day)
	lo, hi := start.UnixMilli(), end.UnixMilli()
	var out []model.CalendarEvent
	for _, e := range events {
		if e.StartTime >= lo && e.StartTime <= hi {
			out = append(out, e)
		}
	}
	return out
}

// TimedEvents drops events of 12 hours or more, which the hourly grid does not draw.
func TimedEvents(events []model.CalendarEvent) []model.CalendarEvent {
	var out []model.CalendarEvent
	for _, e := range events {
		if e.Duration() < AllDayAfter {
			out = append(out, e)
		}
	}
	return out
}

// Block is the pixel placement of an event in its day column.
type Block struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Layout places e on the hourly grid. The minimum height is a display clamp
// and never changes the stored times.
func Layout(e model.CalendarEvent) Block {
	start := e.Start()
	startHour := float64(start.Hour()) + float64(start.Minute())/60 + float64(start.Second())/3600
	endHour := startHour + e.Duration().Hours()
	return Block{
		Top:    startHour * PixelsPerHour,
		Height: math.Max((endHour-startHour)*PixelsPerHour, MinBlockHeight),
	}
}

// NewEvent builds a manually created event and validates it.
func NewEvent(title string, start, end time.Time, color string) (model.CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.CalendarEvent{}, fmt.Errorf("%w: event title is required", model.ErrInvalid)
	}
	if !end.After(start) {
		return model.CalendarEvent{}, fmt.Errorf("%w: event must end after it starts", model.ErrInvalid)
	}
	if color == "" {
		color = model.DefaultEventColor
	}
	if !model.ValidColor(color) {
		return model.CalendarEvent{}, fmt.Errorf("%w: unknown colour %s", model.ErrInvalid, color)
	}
	return model.CalendarEvent{
		ID:        uuid.NewString(),
		Title:     title,
		StartTime: start.UnixMilli(),
		EndTime:   end.UnixMilli(),
		Color:     color,
	}, nil
}

// SlotEvent is the one-hour event created by clicking an empty slot.
func SlotEvent(day time.Time, hour int, title, color string) (model.CalendarEvent, error) {
	if hour < 0 || hour > 23 {
		return model.CalendarEvent{}, fmt.Errorf("%w: hour must be between 0 and 23", model.ErrInvalid)
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, hour, 0, 0, 0, day.Location())
	return NewEvent(title, start, start.Add(time.Hour), color)
}
