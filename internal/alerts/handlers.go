package alerts

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the caller's notifications.
type Handler struct {
	Store  NotificationStore
	Logger *zap.Logger
}

// ListNotifications returns current user's notifications, newest first
func (h *Handler) ListNotifications(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	items, err := h.Store.ListByUser(c.Request().Context(), userID)
	if err != nil {
		h.Logger.Error("list notifications failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to load notifications"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notifications": items})
}

// MarkNotificationRead marks specific notification as read
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	nid := c.Param("id")
	if nid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "missing notification id"})
	}
	err := h.Store.MarkRead(c.Request().Context(), nid, userID)
	if errors.Is(err, ErrNotificationNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": err.Error()})
	}
	if err != nil {
		h.Logger.Error("mark notification read failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to update"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "ok"})
}
