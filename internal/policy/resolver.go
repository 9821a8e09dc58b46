// Package policy decides whether and how a single recipient should be
// notified about a chat message.
package policy

import (
	"context"
	"log/slog"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/store"
)

// ResolvedPolicy is the normalized delivery decision for one recipient
// of one message. It lives only for the duration of a fan-out.
type ResolvedPolicy struct {
	UID             string
	Deliver         bool
	ShowPreview     bool
	PlaySound       bool
	MulticastTokens []string
	PushTokens      []string
}

type Resolver struct {
	profiles store.ProfileStore
}

func NewResolver(profiles store.ProfileStore) *Resolver {
	return &Resolver{profiles: profiles}
}

// Resolve loads the recipient's profile and applies their settings.
// Every setting defaults to enabled when unset; a muted chat always
// wins over the show setting. A nil result means "do not notify" —
// profile-load failures are absorbed here so one broken recipient
// never aborts the batch.
func (r *Resolver) Resolve(ctx context.Context, uid, chatID string, isGroup bool) *ResolvedPolicy {
	profile, err := r.profiles.GetProfile(ctx, uid)
	if err != nil {
		slog.Warn("skipping recipient, profile unavailable", "uid", uid, "error", err)
		return nil
	}

	settings := profile.Settings

	deliver := true
	playSound := true
	if isGroup {
		deliver = boolOrDefault(settings.GroupMessageShow, true)
		playSound = boolOrDefault(settings.GroupMessageSound, true)
	} else {
		deliver = boolOrDefault(settings.DirectMessageShow, true)
		playSound = boolOrDefault(settings.DirectMessageSound, true)
	}

	if profile.HasMuted(chatID) {
		deliver = false
	}

	return &ResolvedPolicy{
		UID:             uid,
		Deliver:         deliver,
		ShowPreview:     boolOrDefault(settings.ShowPreview, true),
		PlaySound:       playSound,
		MulticastTokens: profile.MulticastTokens,
		PushTokens:      profile.PushTokens,
	}
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
