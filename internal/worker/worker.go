// Package worker consumes fan-out tasks and hands them to the
// orchestrator.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/fanout"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/queue"
)

type Worker struct {
	server       *asynq.Server
	orchestrator *fanout.Orchestrator
}

func NewWorker(redisAddr string, orchestrator *fanout.Orchestrator) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				queue.QueueNotifications: 10,
			},
		},
	)

	return &Worker{
		server:       server,
		orchestrator: orchestrator,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskMessageCreated, w.handleMessageCreated)

	slog.Info("Starting worker",
		"queues", []string{queue.QueueNotifications},
		"concurrency", 10)

	if err := w.server.Start(mux); err != nil {
		return err
	}

	slog.Info("Worker started successfully")

	<-ctx.Done()

	w.server.Stop()
	w.server.Shutdown()
	slog.Info("Worker stopped")
	return nil
}

// handleMessageCreated unpacks the event and runs the fan-out. It only
// errors on an undecodable or invalid payload; fan-out failures are
// absorbed inside the orchestrator, so a task is never retried for
// them.
func (w *Worker) handleMessageCreated(ctx context.Context, t *asynq.Task) error {
	var event model.MessageCreatedEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		slog.Error("undecodable fan-out task", "error", err)
		return err
	}

	summary, err := w.orchestrator.Handle(ctx, event)
	if err != nil {
		slog.Error("rejected fan-out event", "error", err)
		return err
	}

	slog.Info("fan-out task done",
		"chat_id", summary.ChatID,
		"message_id", summary.MessageID,
		"eligible", summary.Eligible,
		"deduplicated", summary.Deduplicated)
	return nil
}
