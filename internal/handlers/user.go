package handlers

import (
	"net/http"

	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the authenticated user's own profile
type UserHandler struct {
	service *services.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *services.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetProfile)
}

// ProfileResponse is the body of GET /me.
type ProfileResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	UnreadCount int64  `json:"unread_count"`
}

// GetProfile returns the current user with their unread notification count
func (h *UserHandler) GetProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	user, unread, err := h.service.Profile(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		UnreadCount: unread,
	})
}
