package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
)

// TaskFilter narrows Tasks. Zero fields match everything.
type TaskFilter struct {
	Status    string
	Priority  string
	ProjectID string
	NoProject bool
	Query     string
}

func (f TaskFilter) match(t model.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.NoProject && t.ProjectID != "" {
		return false
	}
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		t.Subtasks = slices.Clone(t.Subtasks)
		out[i] = t
	}
	return out
}

// TaskStatuses returns the configured status set.
func (s *Store) TaskStatuses() []string {
	return slices.Clone(s.statuses)
}

// Tasks returns the tasks matching filter in creation order.
func (s *Store) Tasks(filter TaskFilter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Task
	for _, t := range cloneTasks(s.tasks) {
		if filter.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Task returns one task.
func (s *Store) Task(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	return cloneTasks(s.tasks[i : i+1])[0], nil
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) saveTasks(ctx context.Context, next []model.Task) error {
	if err := s.persist(ctx, change{kv.KeyTasks, next, s.tasks}); err != nil {
		return err
	}
	s.tasks = next
	return nil
}

// checkTask validates the fields shared by new and patched tasks. Callers hold s.mu.
func (s *Store) checkTask(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("task title is required")
	}
	if !slices.Contains(s.statuses, t.Status) {
		return invalid(fmt.Sprintf("unknown status %q", t.Status))
	}
	if !model.ValidPriority(t.Priority) {
		return invalid(fmt.Sprintf("unknown priority %q", t.Priority))
	}
	if t.DueDate != "" {
		if err := parseDate(t.DueDate); err != nil {
			return err
		}
	}
	if t.ProjectID != "" && s.projectIndex(t.ProjectID) < 0 {
		return invalid(fmt.Sprintf("unknown project %q", t.ProjectID))
	}
	for _, st := range t.Subtasks {
		if st.Status != model.SubtaskTodo && st.Status != model.SubtaskDone {
			return invalid(fmt.Sprintf("unknown subtask status %q", st.Status))
		}
	}
	return nil
}

func applyTaskPatch(t model.Task, p model.TaskPatch) model.Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	return t
}

// AddTask creates a task from draft. An empty status becomes the first
// configured status.
func (s *Store) AddTask(ctx context.Context, draft model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	t := draft
	t.ID = uuid.NewString()
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = s.statuses[0]
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].Status == "" {
			t.Subtasks[i].Status = model.SubtaskTodo
		}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.checkTask(t); err != nil {
		return model.Task{}, err
	}

	next := append(cloneTasks(s.tasks), t)
	if err := s.saveTasks(ctx, next); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask applies patch to task id.
func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	next := cloneTasks(s.tasks)
	t := applyTaskPatch(next[i], patch)
	t.UpdatedAt = s.nowMillis()
	if err := s.checkTask(t); err != nil {
		return model.Task{}, err
	}
	next[i] = t
	if err := s.saveTasks(ctx, next); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// DeleteTask removes task id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return notFound("task", id)
	}
	return s.saveTasks(ctx, slices.Delete(cloneTasks(s.tasks), i, i+1))
}

// BulkUpdateTasks sets status, priority or due date on every selected task.
// Either all tasks are updated or none.
func (s *Store) BulkUpdateTasks(ctx context.Context, ids []string, patch model.TaskPatch) (int, error) {
	if patch.Title != nil || patch.ProjectID != nil {
		return 0, invalid("bulk edit changes only status, priority and due date")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneTasks(s.tasks)
	now := s.nowMillis()
	for _, id := range ids {
		i := s.taskIndex(id)
		if i < 0 {
			return 0, notFound("task", id)
		}
		t := applyTaskPatch(next[i], patch)
		t.UpdatedAt = now
		if err := s.checkTask(t); err != nil {
			return 0, err
		}
		next[i] = t
	}
	if err := s.saveTasks(ctx, next); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// BulkDeleteTasks removes the selected tasks and returns how many existed.
func (s *Store) BulkDeleteTasks(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	next := slices.DeleteFunc(cloneTasks(s.tasks), func(t model.Task) bool { return selected[t.ID] })
	removed := len(s.tasks) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveTasks(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// AddSubtask appends a todo subtask to task id.
func (s *Store) AddSubtask(ctx context.Context, taskID, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, invalid("subtask title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(taskID)
	if i < 0 {
		return model.Task{}, notFound("task", taskID)
	}
	next := cloneTasks(s.tasks)
	next[i].Subtasks = append(next[i].Subtasks, model.Subtask{Title: title, Status: model.SubtaskTodo})
	next[i].UpdatedAt = s.nowMillis()
	if err := s.saveTasks(ctx, next); err != nil {
		return model.Task{}, err
	}
	return next[i], nil
}

// ToggleSubtask flips subtask index of task id between todo and done.
func (s *Store) ToggleSubtask(ctx context.Context, taskID string, index int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(taskID)
	if i < 0 {
		return model.Task{}, notFound("task", taskID)
	}
	if index < 0 || index >= len(s.tasks[i].Subtasks) {
		return model.Task{}, invalid(fmt.Sprintf("subtask %d out of range", index))
	}
	next := cloneTasks(s.tasks)
	st := &next[i].Subtasks[index]
	if st.Status == model.SubtaskDone {
		st.Status = model.SubtaskTodo
	} else {
		st.Status = model.SubtaskDone
	}
	next[i].UpdatedAt = s.nowMillis()
	if err := s.saveTasks(ctx, next); err != nil {
		return model.Task{}, err
	}
	return next[i], nil
}
