package handlers

import (
	"net/http"

	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	service *services.Service
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(service *services.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike likes or unlikes a post and returns the new state
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.service.ToggleLike(c.Request().Context(), actor, postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
