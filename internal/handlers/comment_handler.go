package handlers

import (
	"net/http"

	"github.com/anonto42/nano-forum/backend/internal/models"
	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	service *services.Service
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service *services.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment adds a comment, or a reply when parent_id is set
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.service.CreateCommentWithNotifications(c.Request().Context(), actor, postID, req.Content, req.ParentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost returns the comment tree of a post
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tree, err := h.service.BuildCommentTree(c.Request().Context(), postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}
