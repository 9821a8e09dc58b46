// Package store holds the Firestore-backed reads and writes of the
// fan-out pipeline. The pipeline itself depends only on the interfaces
// here so tests can substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

// ErrNotFound is returned for point reads of documents that do not
// exist. Callers treat it as data, not as a failure.
var ErrNotFound = errors.New("document not found")

// ChatStore reads chat context for a fan-out invocation.
type ChatStore interface {
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
	GetCircle(ctx context.Context, circleID string) (*model.Circle, error)
	GetMessage(ctx context.Context, chatID, messageID string) (*model.Message, error)
}

// ProfileStore reads user notification profiles. Read-only from this
// service.
type ProfileStore interface {
	GetProfile(ctx context.Context, uid string) (*model.UserProfile, error)
}

// NotificationSink persists in-app notification records.
type NotificationSink interface {
	BatchInsert(ctx context.Context, notifications []*model.Notification) error
}
