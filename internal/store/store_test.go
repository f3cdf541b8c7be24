package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/existflow/flownote/internal/calendar"
	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/streak"
)

var ctx = context.Background()

func fixedNow() time.Time {
	return time.Date(2026, 1, 9, 15, 0, 0, 0, time.Local)
}

func newTestStore(t *testing.T) (*Store, kv.Storage) {
	t.Helper()
	storage := kv.NewMemory()
	t.Cleanup(func() { storage.Close() })
	s, err := New(ctx, storage, WithClock(fixedNow))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, storage
}

// failingKV fails every Set on the given key.
type failingKV struct {
	kv.Storage
	failKey string
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Storage.Set(ctx, key, value)
}

func fullStreak(t *testing.T, s *Store, days int) {
	t.Helper()
	for _, h := range s.Habits() {
		for _, date := range streak.Window(fixedNow(), days) {
			if err := s.SetHabitCompletion(ctx, h.ID, date, true); err != nil {
				t.Fatal(err)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

func TestNewDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	if got := len(s.Habits()); got != 3 {
		t.Fatalf("habits = %d, want 3 defaults", got)
	}
	if got := s.OwnedSkins(); len(got) != 1 || got[0] != model.DefaultSkin {
		t.Fatalf("OwnedSkins = %v", got)
	}
	if s.ActiveSkin() != model.DefaultSkin {
		t.Fatalf("ActiveSkin = %q", s.ActiveSkin())
	}
	if s.Settings() != model.DefaultSettings() {
		t.Fatalf("Settings = %+v", s.Settings())
	}
}

func TestReloadFromStorage(t *testing.T) {
	s, storage := newTestStore(t)
	if _, err := s.AddHabit(ctx, "Stretch"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTask(ctx, model.Task{Title: "Write report"}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := New(ctx, storage, WithClock(fixedNow))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(reloaded.Habits()); got != 4 {
		t.Fatalf("habits after reload = %d, want 4", got)
	}
	tasks := reloaded.Tasks(TaskFilter{})
	if len(tasks) != 1 || tasks[0].Title != "Write report" {
		t.Fatalf("tasks after reload = %+v", tasks)
	}
}

func TestCorruptKeyFallsBackToDefault(t *testing.T) {
	storage := kv.NewMemory()
	storage.Set(ctx, kv.KeyHabits, []byte("{not json"))
	s, err := New(ctx, storage)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.Habits()); got != 3 {
		t.Fatalf("habits = %d, want defaults", got)
	}
}

// ---------------------------------------------------------------------------
// Calendar events
// ---------------------------------------------------------------------------

func TestSlotClickScenario(t *testing.T) {
	s, _ := newTestStore(t)
	day := time.Date(2026, 1, 9, 0, 0, 0, 0, time.Local)
	ev, err := calendar.SlotEvent(day, 10, "Standup", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddCalendarEvent(ctx, ev); err != nil {
		t.Fatal(err)
	}

	got := s.EventsForDay(day)
	if len(got) != 1 {
		t.Fatalf("EventsForDay = %d events", len(got))
	}
	if !got[0].Start().Equal(time.Date(2026, 1, 9, 10, 0, 0, 0, time.Local)) ||
		!got[0].End().Equal(time.Date(2026, 1, 9, 11, 0, 0, 0, time.Local)) {
		t.Fatalf("event = %v .. %v", got[0].Start(), got[0].End())
	}
	if got[0].Color != "#3d7a7a" {
		t.Fatalf("Color = %q", got[0].Color)
	}
}

func TestAddCalendarEventNoDedup(t *testing.T) {
	s, _ := newTestStore(t)
	e := model.CalendarEvent{ID: "dup", Title: "a", StartTime: 1000, EndTime: 2000}
	s.AddCalendarEvent(ctx, e)
	s.AddCalendarEvent(ctx, e)
	if got := len(s.CalendarEvents()); got != 2 {
		t.Fatalf("events = %d, want 2", got)
	}

	if err := s.DeleteCalendarEvent(ctx, "dup"); err != nil {
		t.Fatal(err)
	}
	if got := len(s.CalendarEvents()); got != 0 {
		t.Fatalf("events after delete = %d, want 0", got)
	}
	if err := s.DeleteCalendarEvent(ctx, "dup"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestAddCalendarEventValidation(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddCalendarEvent(ctx, model.CalendarEvent{Title: " ", StartTime: 1, EndTime: 2}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("empty title err = %v", err)
	}
	if _, err := s.AddCalendarEvent(ctx, model.CalendarEvent{Title: "x", StartTime: 2, EndTime: 2}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("zero length err = %v", err)
	}
}

func TestEventColourMustBeInPalette(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.AddCalendarEvent(ctx, model.CalendarEvent{Title: "x", StartTime: 1, EndTime: 2, Color: "not-a-colour"}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("bad colour err = %v", err)
	}
	if n := len(s.CalendarEvents()); n != 0 {
		t.Fatalf("events = %d, want 0", n)
	}

	e, err := s.AddCalendarEvent(ctx, model.CalendarEvent{Title: "x", StartTime: 1, EndTime: 2, Color: model.EventPalette[2]})
	if err != nil {
		t.Fatal(err)
	}

	bad := "#ffffff"
	if _, err := s.UpdateCalendarEvent(ctx, e.ID, model.EventPatch{Color: &bad}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("bad colour patch err = %v", err)
	}
	if got := s.CalendarEvents()[0].Color; got != model.EventPalette[2] {
		t.Fatalf("Color = %q after rejected patch", got)
	}

	good := model.EventPalette[4]
	got, err := s.UpdateCalendarEvent(ctx, e.ID, model.EventPatch{Color: &good})
	if err != nil || got.Color != good {
		t.Fatalf("palette patch = %+v, %v", got, err)
	}
}

func TestDragScenarioPreservesIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	start := time.Date(2026, 1, 9, 9, 0, 0, 0, time.Local)
	ev, _ := s.AddCalendarEvent(ctx, model.CalendarEvent{
		Title: "Deep work", StartTime: start.UnixMilli(), EndTime: start.Add(90 * time.Minute).UnixMilli(),
	})

	c := calendar.NewController(s)
	c.PointerDown(ev, 300, 400)
	if err := c.PointerMove(ctx, 300, 496); err != nil {
		t.Fatal(err)
	}
	c.PointerUp()

	events := s.CalendarEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	got := events[0]
	if got.ID != ev.ID {
		t.Fatalf("ID = %q, want %q", got.ID, ev.ID)
	}
	if !got.Start().Equal(start.Add(2*time.Hour)) || got.Duration() != 90*time.Minute {
		t.Fatalf("moved = %v for %v", got.Start(), got.Duration())
	}
}

func TestResizeBelowMinimumLeavesEvent(t *testing.T) {
	s, _ := newTestStore(t)
	start := time.Date(2026, 1, 9, 9, 0, 0, 0, time.Local)
	ev, _ := s.AddCalendarEvent(ctx, model.CalendarEvent{
		Title: "Call", StartTime: start.UnixMilli(), EndTime: start.Add(time.Hour).UnixMilli(),
	})

	c := calendar.NewController(s)
	c.PointerDownHandle(ev, 100)
	for _, y := range []float64{64, 52, 0, -500} {
		if err := c.PointerMove(ctx, 0, y); err != nil {
			t.Fatal(err)
		}
		if got := s.CalendarEvents()[0]; got != ev {
			t.Fatalf("after move to %v: %+v, want unchanged %+v", y, got, ev)
		}
	}
	c.PointerUp()
}

func TestUpdateCalendarEvent(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.AddCalendarEvent(ctx, model.CalendarEvent{Title: "a", StartTime: 1000, EndTime: 5000})
	s.AddCalendarEvent(ctx, model.CalendarEvent{Title: "b", StartTime: 1000, EndTime: 5000})

	title := "renamed"
	got, err := s.UpdateCalendarEvent(ctx, a.ID, model.EventPatch{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != a.ID || got.Title != "renamed" || got.StartTime != 1000 {
		t.Fatalf("updated = %+v", got)
	}
	if s.CalendarEvents()[0].Title != "renamed" {
		t.Fatal("position not preserved")
	}

	end := int64(500)
	if _, err := s.UpdateCalendarEvent(ctx, a.ID, model.EventPatch{EndTime: &end}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("end before start err = %v", err)
	}
	if _, err := s.UpdateCalendarEvent(ctx, "missing", model.EventPatch{Title: &title}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Habits and rewards
// ---------------------------------------------------------------------------

func TestToggleHabit(t *testing.T) {
	s, storage := newTestStore(t)
	id := s.Habits()[0].ID

	done, err := s.ToggleHabit(ctx, id, "2026-01-09")
	if err != nil || !done {
		t.Fatalf("ToggleHabit = %v, %v", done, err)
	}
	done, _ = s.ToggleHabit(ctx, id, "2026-01-09")
	if done {
		t.Fatal("second toggle should clear")
	}

	raw, _ := storage.Get(ctx, kv.KeyHabits)
	var habits []model.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		t.Fatal(err)
	}
	if _, ok := habits[0].Completions["2026-01-09"]; ok {
		t.Fatal("cleared completion should be absent")
	}

	if _, err := s.ToggleHabit(ctx, id, "09/01/2026"); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("bad date err = %v", err)
	}
	if _, err := s.AddHabit(ctx, ""); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("empty name err = %v", err)
	}
}

func TestStreakTodayMissed(t *testing.T) {
	s, _ := newTestStore(t)
	fullStreak(t, s, 7)
	if got := s.Streak(streak.Week).CurrentStreak; got != 7 {
		t.Fatalf("CurrentStreak = %d, want 7", got)
	}
	s.SetHabitCompletion(ctx, s.Habits()[2].ID, "2026-01-09", false)
	if got := s.Streak(streak.Week).CurrentStreak; got != 0 {
		t.Fatalf("CurrentStreak = %d, want 0", got)
	}
}

func TestClaimRewardOnce(t *testing.T) {
	s, _ := newTestStore(t)
	fullStreak(t, s, 7)

	ok, err := s.ClaimReward(ctx, "streak-7", 50)
	if !ok || err != nil {
		t.Fatalf("first claim = %v, %v", ok, err)
	}
	ok, err = s.ClaimReward(ctx, "streak-7", 50)
	if ok || !errors.Is(err, model.ErrRewardClaimed) {
		t.Fatalf("second claim = %v, %v", ok, err)
	}
	if coins := s.Profile().Coins; coins != 50 {
		t.Fatalf("Coins = %d, want 50", coins)
	}

	ok, err = s.ClaimReward(ctx, "streak-14", 100)
	if ok || !errors.Is(err, model.ErrRewardLocked) {
		t.Fatalf("locked claim = %v, %v", ok, err)
	}
	if coins := s.Profile().Coins; coins != 50 {
		t.Fatalf("Coins after locked claim = %d", coins)
	}
	if _, err := s.ClaimReward(ctx, "streak-14", 999); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("wrong amount err = %v", err)
	}
}

func TestClaimRewardAtomic(t *testing.T) {
	storage := &failingKV{Storage: kv.NewMemory(), failKey: kv.KeyProfile}
	s, err := New(ctx, storage, WithClock(fixedNow))
	if err != nil {
		t.Fatal(err)
	}
	fullStreak(t, s, 7)

	if _, err := s.ClaimReward(ctx, "streak-7", 50); err == nil {
		t.Fatal("expected save error")
	}
	if len(s.ClaimedRewards()) != 0 || s.Profile().Coins != 0 {
		t.Fatal("failed claim changed state")
	}
	raw, err := storage.Get(ctx, kv.KeyClaimedRewards)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[]" {
		t.Fatalf("claimedRewards not restored: %s", raw)
	}
}

// ---------------------------------------------------------------------------
// Shop
// ---------------------------------------------------------------------------

func TestPurchaseSkin(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.PurchaseSkin(ctx, "forest"); !errors.Is(err, model.ErrInsufficientCoins) {
		t.Fatalf("err = %v, want ErrInsufficientCoins", err)
	}
	if err := s.PurchaseSkin(ctx, model.DefaultSkin); !errors.Is(err, model.ErrAlreadyOwned) {
		t.Fatalf("err = %v, want ErrAlreadyOwned", err)
	}

	fullStreak(t, s, 28)
	for _, r := range streak.Rewards {
		if _, err := s.ClaimReward(ctx, r.ID, r.Coins); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.PurchaseSkin(ctx, "forest"); err != nil {
		t.Fatal(err)
	}
	if coins := s.Profile().Coins; coins != 250 {
		t.Fatalf("Coins = %d, want 250", coins)
	}
	if err := s.SetActiveSkin(ctx, "forest"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetActiveSkin(ctx, "ocean"); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("unowned skin err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tasks and projects
// ---------------------------------------------------------------------------

func TestAddTaskDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(ctx, model.Task{Title: " Plan ", Subtasks: []model.Subtask{{Title: "draft"}}})
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "Plan" || task.Status != "Not started" {
		t.Fatalf("task = %+v", task)
	}
	if task.Subtasks[0].Status != model.SubtaskTodo {
		t.Fatalf("subtask status = %q", task.Subtasks[0].Status)
	}

	cases := []model.Task{
		{Title: ""},
		{Title: "x", Status: "Someday"},
		{Title: "x", Priority: "Urgent"},
		{Title: "x", DueDate: "tomorrow"},
		{Title: "x", ProjectID: "nope"},
	}
	for _, c := range cases {
		if _, err := s.AddTask(ctx, c); !errors.Is(err, model.ErrInvalid) {
			t.Errorf("AddTask(%+v) err = %v, want ErrInvalid", c, err)
		}
	}
}

func TestCustomStatuses(t *testing.T) {
	s, err := New(ctx, kv.NewMemory(), WithTaskStatuses([]string{"Todo", "Doing", "Done"}))
	if err != nil {
		t.Fatal(err)
	}
	task, _ := s.AddTask(ctx, model.Task{Title: "x"})
	if task.Status != "Todo" {
		t.Fatalf("Status = %q", task.Status)
	}
}

func TestBulkUpdateTasks(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.AddTask(ctx, model.Task{Title: "a"})
	b, _ := s.AddTask(ctx, model.Task{Title: "b"})
	c, _ := s.AddTask(ctx, model.Task{Title: "c"})

	status, prio := "Done", model.PriorityHigh
	n, err := s.BulkUpdateTasks(ctx, []string{a.ID, c.ID}, model.TaskPatch{Status: &status, Priority: &prio})
	if err != nil || n != 2 {
		t.Fatalf("BulkUpdateTasks = %d, %v", n, err)
	}
	done := s.Tasks(TaskFilter{Status: "Done"})
	if len(done) != 2 || done[0].Priority != model.PriorityHigh {
		t.Fatalf("done tasks = %+v", done)
	}

	// All or nothing.
	bad := "Blocked"
	if _, err := s.BulkUpdateTasks(ctx, []string{b.ID, a.ID}, model.TaskPatch{Status: &bad}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.BulkUpdateTasks(ctx, []string{b.ID, "missing"}, model.TaskPatch{Status: &status}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if got, _ := s.Task(b.ID); got.Status != "Not started" {
		t.Fatalf("b changed to %q", got.Status)
	}

	n, err = s.BulkDeleteTasks(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil || n != 2 {
		t.Fatalf("BulkDeleteTasks = %d, %v", n, err)
	}
}

func TestSubtasks(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.AddTask(ctx, model.Task{Title: "a"})
	task, err := s.AddSubtask(ctx, task.ID, "step one")
	if err != nil {
		t.Fatal(err)
	}
	task, err = s.ToggleSubtask(ctx, task.ID, 0)
	if err != nil || task.Subtasks[0].Status != model.SubtaskDone {
		t.Fatalf("ToggleSubtask = %+v, %v", task.Subtasks, err)
	}
	if _, err := s.ToggleSubtask(ctx, task.ID, 3); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("out of range err = %v", err)
	}
}

func TestDeleteProjectOrphansTasks(t *testing.T) {
	s, _ := newTestStore(t)
	p, _ := s.AddProject(ctx, "Launch", "")
	if p.Color != model.DefaultProjectColor {
		t.Fatalf("Color = %q", p.Color)
	}
	task, err := s.AddTask(ctx, model.Task{Title: "ship", ProjectID: p.ID})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.Task(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectID != "" {
		t.Fatalf("ProjectID = %q, want cleared", got.ProjectID)
	}
	if len(s.Tasks(TaskFilter{NoProject: true})) != 1 {
		t.Fatal("orphan should list under no project")
	}
}

// ---------------------------------------------------------------------------
// Notes, journals, profile
// ---------------------------------------------------------------------------

func TestNotesAndJournals(t *testing.T) {
	s, _ := newTestStore(t)
	n, _ := s.AddNote(ctx, "", "body")
	if n.Title != "Untitled" {
		t.Fatalf("Title = %q", n.Title)
	}
	content := "edited"
	n, err := s.UpdateNote(ctx, n.ID, nil, &content)
	if err != nil || n.Content != "edited" {
		t.Fatalf("UpdateNote = %+v, %v", n, err)
	}

	s.SaveJournal(ctx, "2026-01-09", "first", "ok")
	s.SaveJournal(ctx, "2026-01-08", "earlier", "")
	j, _ := s.SaveJournal(ctx, "2026-01-09", "second", "good")
	journals := s.Journals()
	if len(journals) != 2 || journals[0].Date != "2026-01-08" {
		t.Fatalf("journals = %+v", journals)
	}
	if journals[1].ID != j.ID || journals[1].Content != "second" {
		t.Fatalf("upsert = %+v", journals[1])
	}
}

func TestUpdateSettings(t *testing.T) {
	s, storage := newTestStore(t)
	theme, off := "dark", false
	if _, err := s.UpdateSettings(ctx, SettingsPatch{Theme: &theme, EmailNotifications: &off}); err != nil {
		t.Fatal(err)
	}
	bad := "neon"
	if _, err := s.UpdateSettings(ctx, SettingsPatch{Theme: &bad}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("err = %v", err)
	}

	reloaded, _ := New(ctx, storage)
	st := reloaded.Settings()
	if st.Theme != "dark" || st.EmailNotifications {
		t.Fatalf("settings = %+v", st)
	}
}

func TestUpdateProfile(t *testing.T) {
	s, _ := newTestStore(t)
	name, email := "Ada", "ada@example.com"
	p, err := s.UpdateProfile(ctx, ProfilePatch{Name: &name, Email: &email})
	if err != nil || p.Name != "Ada" || p.Email != email {
		t.Fatalf("UpdateProfile = %+v, %v", p, err)
	}
	bad := "not an email"
	if _, err := s.UpdateProfile(ctx, ProfilePatch{Email: &bad}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Snapshot()
	snap.Habits[0].Completions["2026-01-09"] = true
	if s.Habits()[0].Done("2026-01-09") {
		t.Fatal("snapshot aliases store state")
	}
}
