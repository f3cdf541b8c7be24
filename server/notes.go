package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *Server) handleListNotes(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.store.Notes()))
}

func (s *Server) handleCreateNote(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	var title, content string
	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}
	n, err := s.store.AddNote(c.Request().Context(), title, content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	n, err := s.store.UpdateNote(c.Request().Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleDeleteNote(c echo.Context) error {
	if err := s.store.DeleteNote(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListJournals(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.store.Journals()))
}

func (s *Server) handleSaveJournal(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
		Mood    string `json:"mood"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	j, err := s.store.SaveJournal(c.Request().Context(), c.Param("date"), req.Content, req.Mood)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, j)
}
