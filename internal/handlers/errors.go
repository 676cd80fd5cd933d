package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/anonto42/nano-forum/backend/internal/throttle"
	"github.com/labstack/echo/v4"
)

// serviceError turns a service error into the matching echo.HTTPError.
// Unexpected errors are logged and reported without their text.
func serviceError(c echo.Context, err error) error {
	var (
		verr *services.ValidationError
		terr *throttle.ThrottledError
	)
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
	case errors.As(err, &terr):
		c.Response().Header().Set("Retry-After", strconv.Itoa(terr.Seconds()))
		return echo.NewHTTPError(http.StatusTooManyRequests, terr.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	slog.ErrorContext(c.Request().Context(), "Request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
