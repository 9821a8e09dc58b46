// Package push delivers notification payloads through the two
// independent push channels: FCM (multicast, one batched call) and
// Expo (token-addressed, hard limit of 100 messages per call).
package push

import (
	"context"
	"log/slog"
	"sync"

	"firebase.google.com/go/v4/messaging"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/metrics"
)

// ExpoChunkSize is the provider's hard per-call batch limit.
const ExpoChunkSize = 100

// ExpoSender is the token-addressed channel. *ExpoClient implements it.
type ExpoSender interface {
	SendBatch(ctx context.Context, messages []ExpoMessage) (int, error)
}

// Result carries per-channel delivery counts for one fan-out. Partial
// failure is normal here; token churn makes rejected tokens data, not
// errors.
type Result struct {
	MulticastSent int
	PushSent      int
}

type Dispatcher struct {
	fcm  FCMClient
	expo ExpoSender
}

func NewDispatcher(fcm FCMClient, expo ExpoSender) *Dispatcher {
	return &Dispatcher{fcm: fcm, expo: expo}
}

// Dispatch sends both channels concurrently. Neither channel's failure
// affects the other, and Dispatch itself never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, multicast []*messaging.Message, push []ExpoMessage) Result {
	var result Result
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.MulticastSent = d.sendMulticast(ctx, multicast)
	}()
	go func() {
		defer wg.Done()
		result.PushSent = d.sendTokenAddressed(ctx, push)
	}()
	wg.Wait()

	return result
}

// sendMulticast submits every FCM message for the fan-out in a single
// multi-send call and counts successes from the per-item responses.
func (d *Dispatcher) sendMulticast(ctx context.Context, messages []*messaging.Message) int {
	if len(messages) == 0 {
		return 0
	}

	response, err := d.fcm.SendEach(ctx, messages)
	if err != nil {
		slog.Error("FCM multicast send failed", "messages", len(messages), "error", err)
		metrics.PushFailed.WithLabelValues("fcm").Add(float64(len(messages)))
		return 0
	}

	if response.FailureCount > 0 {
		for i, item := range response.Responses {
			if !item.Success {
				slog.Warn("FCM rejected message", "index", i, "error", item.Error)
			}
		}
	}

	metrics.PushSent.WithLabelValues("fcm").Add(float64(response.SuccessCount))
	metrics.PushFailed.WithLabelValues("fcm").Add(float64(response.FailureCount))
	return response.SuccessCount
}

// sendTokenAddressed sends Expo messages in chunks of at most 100,
// strictly in sequence. A failed chunk is logged and skipped; the
// remaining chunks still go out.
func (d *Dispatcher) sendTokenAddressed(ctx context.Context, messages []ExpoMessage) int {
	sent := 0
	for i := 0; i < len(messages); i += ExpoChunkSize {
		end := i + ExpoChunkSize
		if end > len(messages) {
			end = len(messages)
		}

		chunk := messages[i:end]
		accepted, err := d.expo.SendBatch(ctx, chunk)
		if err != nil {
			slog.Error("Expo push chunk failed", "chunk_size", len(chunk), "error", err)
			metrics.PushFailed.WithLabelValues("expo").Add(float64(len(chunk)))
			continue
		}

		sent += accepted
		metrics.PushSent.WithLabelValues("expo").Add(float64(accepted))
		if accepted < len(chunk) {
			metrics.PushFailed.WithLabelValues("expo").Add(float64(len(chunk) - accepted))
		}
	}
	return sent
}
