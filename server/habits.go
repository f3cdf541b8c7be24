package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/streak"
)

type habitRequest struct {
	Name string `json:"name"`
}

type toggleRequest struct {
	Date string `json:"date"`
	Done *bool  `json:"done"`
}

func (s *Server) handleListHabits(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Habits())
}

func (s *Server) handleCreateHabit(c echo.Context) error {
	var req habitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	h, err := s.store.AddHabit(c.Request().Context(), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, h)
}

func (s *Server) handleRenameHabit(c echo.Context) error {
	var req habitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := s.store.RenameHabit(c.Request().Context(), c.Param("id"), req.Name); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteHabit(c echo.Context) error {
	if err := s.store.DeleteHabit(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleToggleHabit flips the completion, or sets it when done is given.
// The date defaults to today.
func (s *Server) handleToggleHabit(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Date == "" {
		req.Date = model.DateKey(s.store.Now())
	}
	ctx := c.Request().Context()
	done := false
	var err error
	if req.Done != nil {
		done = *req.Done
		err = s.store.SetHabitCompletion(ctx, c.Param("id"), req.Date, done)
	} else {
		done, err = s.store.ToggleHabit(ctx, c.Param("id"), req.Date)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"date": req.Date, "done": done})
}

func (s *Server) handleStreak(c echo.Context) error {
	p, err := streak.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s.store.Streak(p))
}

func (s *Server) handleRewards(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Rewards())
}

func (s *Server) handleClaimReward(c echo.Context) error {
	var req struct {
		Coins int `json:"coins"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Coins == 0 {
		if r, ok := streak.FindReward(c.Param("id")); ok {
			req.Coins = r.Coins
		}
	}
	if _, err := s.store.ClaimReward(c.Request().Context(), c.Param("id"), req.Coins); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"claimed": true,
		"coins":   s.store.Profile().Coins,
	})
}
