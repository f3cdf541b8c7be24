package server

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/export"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

type shopResponse struct {
	Skins  []model.Skin `json:"skins"`
	Owned  []string     `json:"owned"`
	Active string       `json:"active"`
	Coins  int          `json:"coins"`
}

func toUser(p model.Profile) export.User {
	return export.User{Name: p.Name, Email: p.Email, Coins: p.Coins}
}

func (s *Server) handleShop(c echo.Context) error {
	return c.JSON(http.StatusOK, shopResponse{
		Skins:  model.Skins,
		Owned:  s.store.OwnedSkins(),
		Active: s.store.ActiveSkin(),
		Coins:  s.store.Profile().Coins,
	})
}

func (s *Server) handlePurchaseSkin(c echo.Context) error {
	if err := s.store.PurchaseSkin(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return s.handleShop(c)
}

func (s *Server) handleSetActiveSkin(c echo.Context) error {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := s.store.SetActiveSkin(c.Request().Context(), req.ID); err != nil {
		return fail(c, err)
	}
	return s.handleShop(c)
}

func (s *Server) handleProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, toUser(s.store.Profile()))
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	var patch store.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}
	p, err := s.store.UpdateProfile(c.Request().Context(), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUser(p))
}

func (s *Server) handleSignUp(c echo.Context) error {
	var req auth.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	p, err := s.auth.SignUp(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toUser(p))
}

func (s *Server) handleSignIn(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	p, err := s.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toUser(p))
}

func (s *Server) handleSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Settings())
}

func (s *Server) handleUpdateSettings(c echo.Context) error {
	var patch store.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request")
	}
	st, err := s.store.UpdateSettings(c.Request().Context(), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) handleExport(c echo.Context) error {
	now := s.store.Now()
	var buf bytes.Buffer
	if err := export.Write(&buf, export.Build(s.store.Snapshot(), now)); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName(now)+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes())
}

func (s *Server) handleExportEventsCSV(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteEventsCSV(&buf, s.store.CalendarEvents()); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="flownote-events.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
