package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/store"
)

type NotificationHandler struct {
	notifications *store.NotificationService
}

func NewNotificationHandler(notifications *store.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's in-app feed, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
		}
		limit = parsed
	}

	filter := &store.NotificationFilter{
		UID:    uid,
		Unread: c.QueryParam("unread") == "true",
		Limit:  limit,
	}

	notifications, err := h.notifications.GetNotifications(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	notificationID := c.Param("id")
	if notificationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Notification ID is required"})
	}

	if err := h.notifications.MarkAsRead(c.Request().Context(), uid, notificationID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notification as read"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notifications.MarkAllAsRead(c.Request().Context(), uid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notifications as read"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Stats(c echo.Context) error {
	uid := c.Get("uid").(string)

	stats, err := h.notifications.GetNotificationStats(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notification stats"})
	}

	return c.JSON(http.StatusOK, stats)
}
