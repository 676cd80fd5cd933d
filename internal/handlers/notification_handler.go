package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-forum/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	service *services.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *services.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns the newest notifications of the current user
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	notifications, err := h.service.ListNotifications(c.Request().Context(), actor, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.UnreadCount(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkAsRead marks one notification of the current user as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.MarkNotificationRead(c.Request().Context(), actor, id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead marks every notification of the current user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	count, err := h.service.MarkAllRead(c.Request().Context(), actor)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
