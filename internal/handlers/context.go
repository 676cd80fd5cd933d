package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-forum/backend/internal/middleware"
	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// currentActor reads the actor placed in the context by the JWT middleware.
func currentActor(c echo.Context) (services.Actor, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return services.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return services.Actor{
		UserID:    claims.UserID,
		Username:  claims.Username,
		SessionID: claims.SessionID,
	}, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
