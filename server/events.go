package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/calendar"
	"github.com/existflow/flownote/internal/model"
)

type createEventRequest struct {
	Title     string `json:"title"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Color     string `json:"color"`
}

type slotRequest struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type dragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type placedEvent struct {
	model.CalendarEvent
	Block calendar.Block `json:"block"`
}

type dayResponse struct {
	Date   string                `json:"date"`
	Timed  []placedEvent         `json:"timed"`
	AllDay []model.CalendarEvent `json:"allDay"`
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.Local)
}

func (s *Server) handleListEvents(c echo.Context) error {
	if day := c.QueryParam("day"); day != "" {
		d, err := parseDay(day)
		if err != nil {
			return badRequest(c, "day must be YYYY-MM-DD")
		}
		return c.JSON(http.StatusOK, nonNil(s.store.EventsForDay(d)))
	}
	return c.JSON(http.StatusOK, nonNil(s.store.CalendarEvents()))
}

func (s *Server) handleDay(c echo.Context) error {
	d, err := parseDay(c.Param("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	events := s.store.EventsForDay(d)
	resp := dayResponse{Date: c.Param("date"), Timed: []placedEvent{}, AllDay: []model.CalendarEvent{}}
	for _, e := range events {
		if e.Duration() >= calendar.AllDayAfter {
			resp.AllDay = append(resp.AllDay, e)
			continue
		}
		resp.Timed = append(resp.Timed, placedEvent{CalendarEvent: e, Block: calendar.Layout(e)})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	e, err := calendar.NewEvent(req.Title, time.UnixMilli(req.StartTime), time.UnixMilli(req.EndTime), req.Color)
	if err != nil {
		return fail(c, err)
	}
	e, err = s.store.AddCalendarEvent(c.Request().Context(), e)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleCreateSlotEvent(c echo.Context) error {
	var req slotRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	day, err := parseDay(req.Day)
	if err != nil {
		return badRequest(c, "day must be YYYY-MM-DD")
	}
	e, err := calendar.SlotEvent(day, req.Hour, req.Title, req.Color)
	if err != nil {
		return fail(c, err)
	}
	e, err = s.store.AddCalendarEvent(c.Request().Context(), e)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleUpdateEvent(c echo.Context) error {
	var patch model.EventPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}
	e, err := s.store.UpdateCalendarEvent(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) handleDeleteEvent(c echo.Context) error {
	if err := s.store.DeleteCalendarEvent(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) findEvent(id string) (model.CalendarEvent, error) {
	for _, e := range s.store.CalendarEvents() {
		if e.ID == id {
			return e, nil
		}
	}
	return model.CalendarEvent{}, fmt.Errorf("%w: event %s", model.ErrNotFound, id)
}

// handleDragEvent applies a whole drag gesture given as the pointer offset.
func (s *Server) handleDragEvent(c echo.Context) error {
	var req dragRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	e, err := s.findEvent(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	ctrl := calendar.NewController(s.store)
	ctrl.PointerDown(e, 0, 0)
	defer ctrl.PointerUp()
	if err := ctrl.PointerMove(c.Request().Context(), req.DX, req.DY); err != nil {
		return fail(c, err)
	}
	if e, err = s.findEvent(e.ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// handleResizeEvent moves the bottom edge by dy pixels. A resize below the
// minimum span is refused with 422 and leaves the event as it was.
func (s *Server) handleResizeEvent(c echo.Context) error {
	var req dragRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	e, err := s.findEvent(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	patch, ok := calendar.NewResize(e, 0).Move(req.DY)
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "event must be longer than 15 minutes"})
	}
	e, err = s.store.UpdateCalendarEvent(c.Request().Context(), e.ID, patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
