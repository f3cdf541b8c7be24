package store

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

// Projects returns all projects.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

func (s *Store) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
}

// AddProject creates a project. An empty colour uses the default.
func (s *Store) AddProject(ctx context.Context, name, color string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, invalid("project name is required")
	}
	if color == "" {
		color = model.DefaultProjectColor
	}
	p := model.Project{ID: uuid.NewString(), Name: name, Color: color, CreatedAt: s.nowMillis()}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.projects), p)
	if err := s.persist(ctx, change{kv.KeyProjects, next, s.projects}); err != nil {
		return model.Project{}, err
	}
	s.projects = next
	return p, nil
}

// RenameProject changes a project's name.
func (s *Store) RenameProject(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("project name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return notFound("project", id)
	}
	next := slices.Clone(s.projects)
	next[i].Name = name
	if err := s.persist(ctx, change{kv.KeyProjects, next, s.projects}); err != nil {
		return err
	}
	s.projects = next
	return nil
}

// DeleteProject removes a project. Its tasks are kept without a project.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return notFound("project", id)
	}
	projects := slices.Delete(slices.Clone(s.projects), i, i+1)

	tasks := cloneTasks(s.tasks)
	orphaned := 0
	for j := range tasks {
		if tasks[j].ProjectID == id {
			tasks[j].ProjectID = ""
			orphaned++
		}
	}

	changes := []change{{kv.KeyProjects, projects, s.projects}}
	if orphaned > 0 {
		changes = append(changes, change{kv.KeyTasks, tasks, s.tasks})
	}
	if err := s.persist(ctx, changes...); err != nil {
		return err
	}
	s.projects = projects
	s.tasks = tasks
	logger.Info("Project deleted", logger.F("project", id), logger.F("orphaned_tasks", orphaned))
	return nil
}
