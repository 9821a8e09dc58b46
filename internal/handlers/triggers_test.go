package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

type fakeQueue struct {
	events []model.MessageCreatedEvent
	err    error
}

func (f *fakeQueue) EnqueueMessageCreated(event model.MessageCreatedEvent) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, event)
	return "task-1", nil
}

func postTrigger(t *testing.T, handler *TriggerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/triggers/message", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler.MessageCreated(c))
	return rec
}

func TestMessageCreatedEnqueues(t *testing.T) {
	q := &fakeQueue{}
	handler := NewTriggerHandler(q)

	rec := postTrigger(t, handler, `{"chat_id":"chat1","message_id":"m1"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, q.events, 1)
	assert.Equal(t, "chat1", q.events[0].ChatID)
	assert.Equal(t, "m1", q.events[0].MessageID)
}

func TestMessageCreatedRejectsMissingIDs(t *testing.T) {
	q := &fakeQueue{}
	handler := NewTriggerHandler(q)

	rec := postTrigger(t, handler, `{"chat_id":"chat1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, q.events)
}

func TestMessageCreatedEnqueueFailure(t *testing.T) {
	handler := NewTriggerHandler(&fakeQueue{err: errors.New("redis down")})

	rec := postTrigger(t, handler, `{"chat_id":"chat1","message_id":"m1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
