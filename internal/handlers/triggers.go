package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

// Enqueuer schedules fan-out work. *queue.Queue implements it.
type Enqueuer interface {
	EnqueueMessageCreated(event model.MessageCreatedEvent) (string, error)
}

type TriggerHandler struct {
	queue Enqueuer
}

func NewTriggerHandler(q Enqueuer) *TriggerHandler {
	return &TriggerHandler{queue: q}
}

// MessageCreated receives the document-created notification from the
// message store and enqueues the fan-out. It acknowledges as soon as
// the task is queued; delivery outcomes are never reported back to the
// trigger infrastructure.
func (h *TriggerHandler) MessageCreated(c echo.Context) error {
	var event model.MessageCreatedEvent
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if event.ChatID == "" || event.MessageID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "chat_id and message_id are required"})
	}

	taskID, err := h.queue.EnqueueMessageCreated(event)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to enqueue fan-out"})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"task_id": taskID})
}
