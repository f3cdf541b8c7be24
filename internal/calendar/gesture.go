package calendar

import (
	"context"
	"math"
	"time"

	"github.com/existflow/flownote/internal/model"
)

const (
	msPerMinute = int64(time.Minute / time.Millisecond)
	msPerDay    = 24 * 60 * msPerMinute
)

// Drag moves an event, keeping its duration.
type Drag struct {
	Event         model.CalendarEvent
	StartX        float64
	StartY        float64
	OriginalStart int64
}

// NewDrag captures a drag starting at (x, y) over e.
func NewDrag(e model.CalendarEvent, x, y float64) *Drag {
	return &Drag{Event: e, StartX: x, StartY: y, OriginalStart: e.StartTime}
}

// Offset converts pixel deltas into minutes and whole days.
func Offset(dx, dy float64) (minutes, days int64) {
	minutes = int64(math.Round(dy * 60 / PixelsPerHour))
	days = int64(math.Round(dx / DayColumnWidth))
	return minutes, days
}

// Move returns the patch for the pointer at (x, y).
func (d *Drag) Move(x, y float64) model.EventPatch {
	minutes, days := Offset(x-d.StartX, y-d.StartY)
	duration := d.Event.EndTime - d.Event.StartTime
	start := d.OriginalStart + minutes*msPerMinute + days*msPerDay
	end := start + duration
	return model.EventPatch{StartTime: &start, EndTime: &end}
}

// Resize moves the end of an event.
type Resize struct {
	Event       model.CalendarEvent
	StartY      float64
	OriginalEnd int64
}

// NewResize captures a resize from the bottom handle of e at y.
func NewResize(e model.CalendarEvent, y float64) *Resize {
	return &Resize{Event: e, StartY: y, OriginalEnd: e.EndTime}
}

// Move returns the patch for the pointer at y, or false when the event would
// become 15 minutes or shorter.
func (r *Resize) Move(y float64) (model.EventPatch, bool) {
	minutes, _ := Offset(0, y-r.StartY)
	end := r.OriginalEnd + minutes*msPerMinute
	if end <= r.Event.StartTime+int64(MinSpan/time.Millisecond) {
		return model.EventPatch{}, false
	}
	return model.EventPatch{EndTime: &end}, true
}

// Updater applies an identity-preserving event update.
type Updater interface {
	UpdateCalendarEvent(ctx context.Context, id string, patch model.EventPatch) (model.CalendarEvent, error)
}

// Controller tracks at most one active gesture and applies each pointer move.
type Controller struct {
	updater Updater
	drag    *Drag
	resize  *Resize
}

// NewController returns a Controller writing through u.
func NewController(u Updater) *Controller {
	return &Controller{updater: u}
}

// PointerDown starts dragging e. Any gesture in progress is dropped.
func (c *Controller) PointerDown(e model.CalendarEvent, x, y float64) {
	c.Cancel()
	c.drag = NewDrag(e, x, y)
}

// PointerDownHandle starts resizing e from its bottom handle.
func (c *Controller) PointerDownHandle(e model.CalendarEvent, y float64) {
	c.Cancel()
	c.resize = NewResize(e, y)
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.drag != nil || c.resize != nil
}

// PointerMove applies the current gesture. It does nothing without one and
// skips resize moves that would shrink the event below the minimum span.
func (c *Controller) PointerMove(ctx context.Context, x, y float64) error {
	switch {
	case c.drag != nil:
		_, err := c.updater.UpdateCalendarEvent(ctx, c.drag.Event.ID, c.drag.Move(x, y))
		return err
	case c.resize != nil:
		patch, ok := c.resize.Move(y)
		if !ok {
			return nil
		}
		_, err := c.updater.UpdateCalendarEvent(ctx, c.resize.Event.ID, patch)
		return err
	}
	return nil
}

// PointerUp ends the gesture.
func (c *Controller) PointerUp() {
	c.Cancel()
}

// Cancel drops the gesture without another update.
func (c *Controller) Cancel() {
	c.drag = nil
	c.resize = nil
}
