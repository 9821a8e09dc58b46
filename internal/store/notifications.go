package store

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

const (
	notificationsCollection = "notifications"
	userStatsCollection     = "user_stats"
)

type NotificationService struct {
	db *firestore.Client
}

func NewNotificationService(db *firestore.Client) *NotificationService {
	return &NotificationService{db: db}
}

// BatchInsert writes one fan-out's notification records in a single
// atomic commit, together with an unread-counter bump per recipient.
// A WriteBatch commits all-or-nothing; BulkWriter does not, which is
// why the feed write does not use it.
func (s *NotificationService) BatchInsert(ctx context.Context, notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := s.db.Batch()
	for _, n := range notifications {
		batch.Set(s.db.Collection(notificationsCollection).Doc(n.ID), n)
		batch.Set(s.db.Collection(userStatsCollection).Doc(n.UID), map[string]interface{}{
			"notifications": map[string]interface{}{
				"total":  firestore.Increment(1),
				"unread": firestore.Increment(1),
			},
		}, firestore.MergeAll)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to write notification batch: %w", err)
	}

	return nil
}

type NotificationFilter struct {
	UID    string
	Unread bool
	Limit  int
}

func (s *NotificationService) GetNotifications(ctx context.Context, filter *NotificationFilter) ([]*model.Notification, error) {
	query := s.db.Collection(notificationsCollection).
		Where("uid", "==", filter.UID).
		OrderBy("createdAt", firestore.Desc)

	if filter.Unread {
		query = s.db.Collection(notificationsCollection).
			Where("uid", "==", filter.UID).
			Where("read", "==", false).
			OrderBy("createdAt", firestore.Desc)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get notifications: %w", err)
		}

		var notification model.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, fmt.Errorf("failed to parse notification: %w", err)
		}
		notification.ID = doc.Ref.ID

		result = append(result, &notification)
	}

	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, uid, notificationID string) error {
	_, err := s.db.Collection(notificationsCollection).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	if err := s.refreshStats(ctx, uid); err != nil {
		slog.Warn("failed to update notification stats", "uid", uid, "error", err)
	}

	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, uid string) error {
	iter := s.db.Collection(notificationsCollection).
		Where("uid", "==", uid).
		Where("read", "==", false).
		Documents(ctx)
	defer iter.Stop()

	bulkWriter := s.db.BulkWriter(ctx)
	defer bulkWriter.End()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to get notifications: %w", err)
		}

		_, err = bulkWriter.Update(doc.Ref, []firestore.Update{
			{Path: "read", Value: true},
		})
		if err != nil {
			return fmt.Errorf("failed to add update to bulk writer: %w", err)
		}
	}

	bulkWriter.Flush()

	if err := s.refreshStats(ctx, uid); err != nil {
		slog.Warn("failed to update notification stats", "uid", uid, "error", err)
	}

	return nil
}

func (s *NotificationService) GetNotificationStats(ctx context.Context, uid string) (*model.NotificationStats, error) {
	iter := s.db.Collection(notificationsCollection).Where("uid", "==", uid).Documents(ctx)
	defer iter.Stop()

	stats := &model.NotificationStats{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error occurred fetching notification stats: %w", err)
		}

		var notification model.Notification
		if err := doc.DataTo(&notification); err != nil {
			slog.Warn("failed to parse notification in stats", "doc_id", doc.Ref.ID, "error", err)
			continue
		}

		stats.Total++
		if !notification.Read {
			stats.Unread++
		}
	}

	return stats, nil
}

// refreshStats recomputes the counter document after read-state
// changes. Fan-out inserts bump the counters incrementally instead so
// the batch stays a single commit.
func (s *NotificationService) refreshStats(ctx context.Context, uid string) error {
	stats, err := s.GetNotificationStats(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get notification stats: %w", err)
	}

	_, err = s.db.Collection(userStatsCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"notifications": stats,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %w", err)
	}

	return nil
}
