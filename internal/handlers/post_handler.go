package handlers

import (
	"net/http"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	service *services.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service *services.Service) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.CreatePost(c.Request().Context(), actor, req.Title, req.Content)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPosts lists every post, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	posts, err := h.service.ListPosts(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns one post with its comment tree
func (h *PostHandler) GetPost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.service.GetPost(c.Request().Context(), actor, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePost deletes a post of the current user with everything attached to it
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeletePostCascade(c.Request().Context(), actor, id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
