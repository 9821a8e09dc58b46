// Package queue enqueues fan-out work for the asynq worker. The
// trigger webhook is the only producer.
package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

const (
	// TaskMessageCreated is the asynq task type for one created chat
	// message.
	TaskMessageCreated = "chat:message_created"

	// QueueNotifications is the queue fan-out tasks land on.
	QueueNotifications = "notifications"
)

type Queue struct {
	client *asynq.Client
}

func New(redisAddr string) *Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	slog.Info("Successfully initialized task queue", "redis_addr", redisAddr)
	return &Queue{client: client}
}

// EnqueueMessageCreated schedules the fan-out for one message. No
// retries: the pipeline is best-effort and the message write already
// committed, so a failed fan-out is dropped rather than replayed.
func (q *Queue) EnqueueMessageCreated(event model.MessageCreatedEvent) (string, error) {
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %v", err)
	}

	task := asynq.NewTask(TaskMessageCreated, payloadBytes)

	info, err := q.client.Enqueue(task,
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(0),
		asynq.Timeout(1*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue task: %v", err)
	}

	return info.ID, nil
}

func (q *Queue) Close() error {
	if q.client != nil {
		return q.client.Close()
	}
	return nil
}
