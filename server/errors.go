package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

var statusOf = []struct {
	err    error
	status int
}{
	{model.ErrInvalid, http.StatusBadRequest},
	{model.ErrPasswordMismatch, http.StatusBadRequest},
	{model.ErrWeakPassword, http.StatusBadRequest},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{model.ErrNotFound, http.StatusNotFound},
	{model.ErrInsufficientCoins, http.StatusPaymentRequired},
	{model.ErrRewardLocked, http.StatusForbidden},
	{model.ErrAlreadyOwned, http.StatusConflict},
	{model.ErrRewardClaimed, http.StatusConflict},
	{model.ErrTimerRunning, http.StatusConflict},
}

// fail writes err as {"error": msg}. Unknown errors are logged and hidden.
func fail(c echo.Context, err error) error {
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			return c.JSON(s.status, map[string]string{"error": err.Error()})
		}
	}
	logger.Error("Request failed",
		logger.F("uri", c.Request().RequestURI),
		logger.F("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		logger.F("error", err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
