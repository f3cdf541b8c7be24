package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

type bulkRequest struct {
	IDs   []string        `json:"ids"`
	Patch model.TaskPatch `json:"patch"`
}

func (s *Server) handleListTasks(c echo.Context) error {
	f := store.TaskFilter{
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
		ProjectID: c.QueryParam("project"),
		Query:     c.QueryParam("q"),
	}
	if f.ProjectID == "none" {
		f.ProjectID = ""
		f.NoProject = true
	}
	return c.JSON(http.StatusOK, nonNil(s.store.Tasks(f)))
}

func (s *Server) handleTaskStatuses(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.TaskStatuses())
}

func (s *Server) handleGetTask(c echo.Context) error {
	t, err := s.store.Task(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var draft model.Task
	if err := c.Bind(&draft); err != nil {
		return badRequest(c, "invalid request")
	}
	t, err := s.store.AddTask(c.Request().Context(), draft)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}
	t, err := s.store.UpdateTask(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.store.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleBulkUpdateTasks(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	n, err := s.store.BulkUpdateTasks(c.Request().Context(), req.IDs, req.Patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": n})
}

func (s *Server) handleBulkDeleteTasks(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	n, err := s.store.BulkDeleteTasks(c.Request().Context(), req.IDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"deleted": n})
}

func (s *Server) handleAddSubtask(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	t, err := s.store.AddSubtask(c.Request().Context(), c.Param("id"), req.Title)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleToggleSubtask(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return badRequest(c, "subtask index must be a number")
	}
	t, err := s.store.ToggleSubtask(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) handleListProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.store.Projects()))
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	p, err := s.store.AddProject(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleRenameProject(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := s.store.RenameProject(c.Request().Context(), c.Param("id"), req.Name); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleDeleteProject keeps the project's tasks; they move to no project.
func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.store.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
