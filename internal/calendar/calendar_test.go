package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/existflow/flownote/internal/model"
)

func at(h, m int) time.Time {
	return time.Date(2026, 1, 9, h, m, 0, 0, time.Local)
}

func event(id string, start, end time.Time) model.CalendarEvent {
	return model.CalendarEvent{ID: id, Title: id, StartTime: start.UnixMilli(), EndTime: end.UnixMilli()}
}

// ---------------------------------------------------------------------------
// Day views
// ---------------------------------------------------------------------------

func TestEventsForDayInclusiveBounds(t *testing.T) {
	day := at(9, 0)
	start, end := DayBounds(day)
	events := []model.CalendarEvent{
		event("midnight", start, start.Add(time.Hour)),
		event("last-ms", end, end.Add(time.Hour)),
		event("before", start.Add(-time.Millisecond), start.Add(time.Hour)),
		event("next-day", end.Add(time.Millisecond), end.Add(time.Hour)),
	}
	got := EventsForDay(events, day)
	if len(got) != 2 || got[0].ID != "midnight" || got[1].ID != "last-ms" {
		t.Fatalf("EventsForDay = %+v", got)
	}
}

func TestTimedEventsDropsLong(t *testing.T) {
	events := []model.CalendarEvent{
		event("short", at(9, 0), at(10, 0)),
		event("twelve", at(0, 0), at(12, 0)),
		event("almost", at(0, 0), at(11, 59)),
	}
	got := TimedEvents(events)
	if len(got) != 2 || got[0].ID != "short" || got[1].ID != "almost" {
		t.Fatalf("TimedEvents = %+v", got)
	}
}

func TestLayout(t *testing.T) {
	b := Layout(event("a", at(10, 30), at(12, 0)))
	if b.Top != 10.5*48 || b.Height != 1.5*48 {
		t.Fatalf("Layout = %+v", b)
	}

	short := event("b", at(9, 0), at(9, 5))
	b = Layout(short)
	if b.Height != MinBlockHeight {
		t.Fatalf("Height = %v, want clamp %v", b.Height, MinBlockHeight)
	}
	if short.EndTime-short.StartTime != int64(5*time.Minute/time.Millisecond) {
		t.Fatal("layout must not change stored times")
	}
}

func TestSlotEvent(t *testing.T) {
	e, err := SlotEvent(at(0, 0), 10, "Standup", "")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Start().Equal(at(10, 0)) || !e.End().Equal(at(11, 0)) {
		t.Fatalf("slot = %v .. %v", e.Start(), e.End())
	}
	if e.Color != model.DefaultEventColor {
		t.Fatalf("Color = %q, want %q", e.Color, model.DefaultEventColor)
	}
	if e.ID == "" || e.CreatedFromTimer {
		t.Fatalf("unexpected event %+v", e)
	}

	if _, err := SlotEvent(at(0, 0), 10, "  ", ""); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("empty title err = %v", err)
	}
	if _, err := SlotEvent(at(0, 0), 24, "x", ""); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("hour 24 err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Gestures
// ---------------------------------------------------------------------------

func TestDragPreservesDuration(t *testing.T) {
	e := event("a", at(9, 0), at(9, 45))
	d := NewDrag(e, 100, 200)

	p := d.Move(100, 296)
	moved := p.Apply(e)
	if !moved.Start().Equal(at(11, 0)) || !moved.End().Equal(at(11, 45)) {
		t.Fatalf("moved = %v .. %v", moved.Start(), moved.End())
	}

	// One column right, 12px up (15 minutes).
	moved = d.Move(220, 188).Apply(e)
	want := at(8, 45).AddDate(0, 0, 1)
	if moved.StartTime != e.StartTime+int64(24*time.Hour/time.Millisecond)-int64(15*time.Minute/time.Millisecond) {
		t.Fatalf("start = %v, want %v", moved.Start(), want)
	}
	if moved.Duration() != e.Duration() {
		t.Fatalf("duration = %v, want %v", moved.Duration(), e.Duration())
	}
}

func TestResizeRejectsShortSpan(t *testing.T) {
	e := event("a", at(9, 0), at(10, 0))
	r := NewResize(e, 500)

	if _, ok := r.Move(500 - 36); ok { // end 9:15
		t.Fatal("resize to exactly 15 minutes must be rejected")
	}
	if _, ok := r.Move(0); ok {
		t.Fatal("resize before start must be rejected")
	}
	p, ok := r.Move(500 - 24) // end 9:30
	if !ok {
		t.Fatal("resize to 30 minutes rejected")
	}
	if p.StartTime != nil || *p.EndTime != at(9, 30).UnixMilli() {
		t.Fatalf("patch = %+v", p)
	}
}

type fakeUpdater struct {
	events map[string]model.CalendarEvent
	calls  int
}

func (f *fakeUpdater) UpdateCalendarEvent(_ context.Context, id string, p model.EventPatch) (model.CalendarEvent, error) {
	e, ok := f.events[id]
	if !ok {
		return model.CalendarEvent{}, model.ErrNotFound
	}
	f.calls++
	e = p.Apply(e)
	f.events[id] = e
	return e, nil
}

func TestControllerLifecycle(t *testing.T) {
	ctx := context.Background()
	e := event("a", at(9, 0), at(10, 0))
	u := &fakeUpdater{events: map[string]model.CalendarEvent{"a": e}}
	c := NewController(u)

	if err := c.PointerMove(ctx, 0, 100); err != nil || u.calls != 0 {
		t.Fatalf("move without gesture: err=%v calls=%d", err, u.calls)
	}

	c.PointerDown(e, 0, 0)
	if !c.Active() {
		t.Fatal("expected active drag")
	}
	c.PointerMove(ctx, 0, 48)
	c.PointerMove(ctx, 0, 96)
	c.PointerUp()
	if c.Active() {
		t.Fatal("gesture not released")
	}
	got := u.events["a"]
	if !got.Start().Equal(at(11, 0)) || !got.End().Equal(at(12, 0)) {
		t.Fatalf("after drag = %v .. %v", got.Start(), got.End())
	}

	c.PointerDownHandle(got, 0)
	c.PointerMove(ctx, 0, -60) // would end at 10:45, before start
	if u.events["a"].EndTime != got.EndTime {
		t.Fatal("rejected resize mutated the event")
	}
	c.PointerMove(ctx, 0, 24)
	c.Cancel()
	if !u.events["a"].End().Equal(at(12, 30)) {
		t.Fatalf("end = %v, want 12:30", u.events["a"].End())
	}
}
