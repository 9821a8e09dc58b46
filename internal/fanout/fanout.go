// Package fanout turns one created chat message into per-recipient
// notifications: an in-app feed record plus pushes over FCM and Expo.
//
// The pipeline is strictly best-effort. The chat message committed
// before this runs, so nothing here may fail the triggering write:
// every runtime failure is logged, counted, and swallowed.
package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-playground/validator/v10"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/metrics"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/payload"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/policy"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/push"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/store"
)

type Orchestrator struct {
	chats      store.ChatStore
	profiles   store.ProfileStore
	resolver   *policy.Resolver
	sink       store.NotificationSink
	dispatcher *push.Dispatcher
	dedupe     Deduper
	validate   *validator.Validate
}

// NewOrchestrator wires the pipeline. dedupe may be nil, which
// disables the duplicate-trigger guard.
func NewOrchestrator(chats store.ChatStore, profiles store.ProfileStore, sink store.NotificationSink, dispatcher *push.Dispatcher, dedupe Deduper) *Orchestrator {
	return &Orchestrator{
		chats:      chats,
		profiles:   profiles,
		resolver:   policy.NewResolver(profiles),
		sink:       sink,
		dispatcher: dispatcher,
		dedupe:     dedupe,
		validate:   validator.New(),
	}
}

// Handle is the entry point for one message-created event. The only
// error it returns is a malformed event; everything downstream
// degrades silently to "no notification sent" or "partial delivery".
func (o *Orchestrator) Handle(ctx context.Context, event model.MessageCreatedEvent) (*model.FanOutSummary, error) {
	if err := o.validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid message created event: %w", err)
	}

	metrics.FanOutsStarted.Inc()
	summary := &model.FanOutSummary{ChatID: event.ChatID, MessageID: event.MessageID}

	if o.dedupe != nil {
		seen, err := o.dedupe.Seen(ctx, event.MessageID)
		if err != nil {
			// Fail open: a duplicate push beats a dropped one.
			slog.Warn("dedupe check failed, continuing", "message_id", event.MessageID, "error", err)
		} else if seen {
			slog.Info("duplicate trigger, skipping fan-out", "message_id", event.MessageID)
			metrics.FanOutsSkipped.WithLabelValues("duplicate").Inc()
			summary.Deduplicated = true
			return summary, nil
		}
	}

	if err := o.run(ctx, event, summary); err != nil {
		slog.Error("fan-out failed", "chat_id", event.ChatID, "message_id", event.MessageID, "error", err)
		metrics.FanOutsFailed.Inc()
	}

	return summary, nil
}

func (o *Orchestrator) run(ctx context.Context, event model.MessageCreatedEvent, summary *model.FanOutSummary) error {
	message, err := o.chats.GetMessage(ctx, event.ChatID, event.MessageID)
	if err == store.ErrNotFound {
		metrics.FanOutsSkipped.WithLabelValues("message_missing").Inc()
		return nil
	}
	if err != nil {
		return err
	}

	chat, sender, err := o.loadContext(ctx, event.ChatID, message.SenderID)
	if err == store.ErrNotFound {
		// Chat mid-deletion; not an error.
		metrics.FanOutsSkipped.WithLabelValues("chat_missing").Inc()
		return nil
	}
	if err != nil {
		return err
	}

	recipients := chat.Recipients(message.SenderID)
	summary.Recipients = len(recipients)
	if len(recipients) == 0 {
		metrics.FanOutsSkipped.WithLabelValues("no_recipients").Inc()
		return nil
	}

	chatCtx := o.chatContext(ctx, chat)
	eligible := o.resolvePolicies(ctx, recipients, chat.ID, chatCtx.IsGroup)
	summary.Eligible = len(eligible)
	if len(eligible) == 0 {
		metrics.FanOutsSkipped.WithLabelValues("no_eligible").Inc()
		return nil
	}

	inApp := make([]*model.Notification, 0, len(eligible))
	var multicast []*messaging.Message
	var tokenPush []push.ExpoMessage
	for _, pol := range eligible {
		built := payload.Build(message, sender, chatCtx, pol)
		inApp = append(inApp, built.InApp)
		multicast = append(multicast, built.Multicast...)
		tokenPush = append(tokenPush, built.Push...)
	}

	// The feed write comes first so the in-app list is never stale
	// relative to a push the user taps. Its failure does not block
	// dispatch.
	if err := o.sink.BatchInsert(ctx, inApp); err != nil {
		slog.Error("in-app notification write failed", "chat_id", chat.ID, "records", len(inApp), "error", err)
		metrics.InAppWriteFailures.Inc()
	} else {
		summary.InAppWritten = len(inApp)
		metrics.InAppWritten.Add(float64(len(inApp)))
	}

	result := o.dispatcher.Dispatch(ctx, multicast, tokenPush)
	summary.MulticastSent = result.MulticastSent
	summary.PushSent = result.PushSent

	slog.Info("fan-out complete",
		"chat_id", chat.ID,
		"message_id", message.ID,
		"recipients", summary.Recipients,
		"eligible", summary.Eligible,
		"in_app", summary.InAppWritten,
		"fcm_sent", summary.MulticastSent,
		"expo_sent", summary.PushSent)

	return nil
}

// loadContext fetches the chat document and the sender profile in
// parallel. A missing chat surfaces as ErrNotFound; a missing sender
// profile degrades to a placeholder name.
func (o *Orchestrator) loadContext(ctx context.Context, chatID, senderID string) (*model.Chat, *model.UserProfile, error) {
	var (
		chat      *model.Chat
		chatErr   error
		sender    *model.UserProfile
		senderErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		chat, chatErr = o.chats.GetChat(ctx, chatID)
	}()
	go func() {
		defer wg.Done()
		sender, senderErr = o.profiles.GetProfile(ctx, senderID)
	}()
	wg.Wait()

	if chatErr != nil {
		return nil, nil, chatErr
	}
	if senderErr != nil {
		slog.Warn("sender profile unavailable, using placeholder", "uid", senderID, "error", senderErr)
		sender = &model.UserProfile{UID: senderID, DisplayName: "Someone"}
	}

	return chat, sender, nil
}

// chatContext resolves the display name and avatar a group
// notification carries. A circle-backed chat prefers the circle's
// name and image, falling back to the chat's own when the circle
// lookup fails.
func (o *Orchestrator) chatContext(ctx context.Context, chat *model.Chat) payload.ChatContext {
	chatCtx := payload.ChatContext{
		ChatID:      chat.ID,
		IsGroup:     chat.IsGroup(),
		GroupName:   chat.Name,
		GroupAvatar: chat.Image,
	}

	if chatCtx.IsGroup && chat.CircleID != "" {
		circle, err := o.chats.GetCircle(ctx, chat.CircleID)
		if err != nil {
			slog.Warn("circle lookup failed, using chat name", "circle_id", chat.CircleID, "error", err)
		} else {
			if circle.Name != "" {
				chatCtx.GroupName = circle.Name
			}
			if circle.Image != "" {
				chatCtx.GroupAvatar = circle.Image
			}
		}
	}

	return chatCtx
}

// resolvePolicies runs the preference resolver for every recipient
// concurrently and keeps only those who should be notified. This is
// the load-shedding point: everything after it is proportional to
// interested recipients, not participant count.
func (o *Orchestrator) resolvePolicies(ctx context.Context, recipients []string, chatID string, isGroup bool) []*policy.ResolvedPolicy {
	resolved := make([]*policy.ResolvedPolicy, len(recipients))

	var wg sync.WaitGroup
	for i, uid := range recipients {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			resolved[i] = o.resolver.Resolve(ctx, uid, chatID, isGroup)
		}(i, uid)
	}
	wg.Wait()

	eligible := make([]*policy.ResolvedPolicy, 0, len(resolved))
	for _, pol := range resolved {
		if pol != nil && pol.Deliver {
			eligible = append(eligible, pol)
		}
	}
	return eligible
}
