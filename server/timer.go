package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/timer"
)

type timerResponse struct {
	State            string               `json:"state"`
	Topic            string               `json:"topic"`
	DurationSeconds  int                  `json:"durationSeconds"`
	RemainingSeconds int                  `json:"remainingSeconds"`
	StartedAt        int64                `json:"startedAt,omitempty"`
	Progress         float64              `json:"progress"`
	LastEvent        *model.CalendarEvent `json:"lastEvent,omitempty"`
}

func toTimerResponse(snap timer.Snapshot) timerResponse {
	r := timerResponse{
		State:            snap.State.String(),
		Topic:            snap.Topic,
		DurationSeconds:  int(snap.Duration / time.Second),
		RemainingSeconds: int(snap.Remaining / time.Second),
		Progress:         snap.Progress(),
		LastEvent:        snap.LastEvent,
	}
	if !snap.StartedAt.IsZero() {
		r.StartedAt = snap.StartedAt.UnixMilli()
	}
	return r
}

func (s *Server) timerState(c echo.Context, status int) error {
	return c.JSON(status, toTimerResponse(s.timer.Snapshot()))
}

func (s *Server) handleTimer(c echo.Context) error {
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerTopic(c echo.Context) error {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := s.timer.SetTopic(req.Topic); err != nil {
		return fail(c, err)
	}
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerDuration(c echo.Context) error {
	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := s.timer.SetDuration(time.Duration(req.Minutes) * time.Minute); err != nil {
		return fail(c, err)
	}
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerStart(c echo.Context) error {
	if err := s.timer.Start(c.Request().Context()); err != nil {
		return fail(c, err)
	}
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerPause(c echo.Context) error {
	s.timer.Pause()
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerResume(c echo.Context) error {
	s.timer.Resume()
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerReset(c echo.Context) error {
	s.timer.Reset()
	return s.timerState(c, http.StatusOK)
}

func (s *Server) handleTimerFinish(c echo.Context) error {
	e, err := s.timer.FinishEarly(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if e == nil {
		return s.timerState(c, http.StatusOK)
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleSessions(c echo.Context) error {
	return c.JSON(http.StatusOK, nonNil(s.store.TimerSessions()))
}
