package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/policy"
)

func testMessage() *model.Message {
	return &model.Message{
		ID:       "m1",
		ChatID:   "chat1",
		SenderID: "sender1",
		Text:     "hey, lunch?",
	}
}

func testSender() *model.UserProfile {
	return &model.UserProfile{
		UID:         "sender1",
		DisplayName: "Ada",
		Photo:       "https://cdn.example.com/ada.png",
	}
}

func directContext() ChatContext {
	return ChatContext{ChatID: "chat1", IsGroup: false}
}

func groupContext() ChatContext {
	return ChatContext{
		ChatID:      "chat1",
		IsGroup:     true,
		GroupName:   "Morning Circle",
		GroupAvatar: "https://cdn.example.com/circle.png",
	}
}

func basePolicy() *policy.ResolvedPolicy {
	return &policy.ResolvedPolicy{
		UID:             "u1",
		Deliver:         true,
		ShowPreview:     true,
		PlaySound:       true,
		MulticastTokens: []string{"fcm-1"},
		PushTokens:      []string{"ExponentPushToken[abc]"},
	}
}

func TestBuildDirectChat(t *testing.T) {
	built := Build(testMessage(), testSender(), directContext(), basePolicy())

	assert.Equal(t, "Ada", built.InApp.Title)
	assert.Equal(t, "hey, lunch?", built.InApp.Subtitle)
	assert.Equal(t, "https://cdn.example.com/ada.png", built.InApp.Avatar)
	assert.Equal(t, model.NotificationTypeChatMessage, built.InApp.Type)
	assert.False(t, built.InApp.Read)

	require.Len(t, built.Multicast, 1)
	assert.Equal(t, "fcm-1", built.Multicast[0].Token)
	assert.Equal(t, "Ada", built.Multicast[0].Notification.Title)
	assert.Equal(t, "hey, lunch?", built.Multicast[0].Notification.Body)

	require.Len(t, built.Push, 1)
	assert.Equal(t, "ExponentPushToken[abc]", built.Push[0].To)
	assert.Equal(t, "Ada", built.Push[0].Title)
	assert.Equal(t, "hey, lunch?", built.Push[0].Body)
}

func TestBuildGroupChat(t *testing.T) {
	built := Build(testMessage(), testSender(), groupContext(), basePolicy())

	assert.Equal(t, "Morning Circle", built.InApp.Title)
	assert.Equal(t, "Ada: hey, lunch?", built.InApp.Subtitle)
	assert.Equal(t, "https://cdn.example.com/circle.png", built.InApp.Avatar)

	require.Len(t, built.Multicast, 1)
	assert.Equal(t, "Morning Circle", built.Multicast[0].Notification.Title)
	assert.Equal(t, "Ada: hey, lunch?", built.Multicast[0].Notification.Body)
}

func TestBuildPreviewMasking(t *testing.T) {
	pol := basePolicy()
	pol.ShowPreview = false

	direct := Build(testMessage(), testSender(), directContext(), pol)
	assert.Equal(t, "New message", direct.InApp.Subtitle)
	assert.NotContains(t, direct.Push[0].Body, "lunch")
	assert.NotContains(t, direct.Multicast[0].Notification.Body, "lunch")

	group := Build(testMessage(), testSender(), groupContext(), pol)
	assert.Equal(t, "Ada: New message", group.InApp.Subtitle)
	assert.Equal(t, "Ada: New message", group.Push[0].Body)
	assert.NotContains(t, group.Multicast[0].Notification.Body, "lunch")
}

func TestBuildSoundSelection(t *testing.T) {
	loud := Build(testMessage(), testSender(), directContext(), basePolicy())
	assert.Equal(t, ChannelDefault, loud.Multicast[0].Android.Notification.ChannelID)
	assert.Equal(t, "default", loud.Multicast[0].APNS.Payload.Aps.Sound)
	assert.Equal(t, ChannelDefault, loud.Push[0].ChannelID)
	assert.Equal(t, "default", loud.Push[0].Sound)

	pol := basePolicy()
	pol.PlaySound = false
	silent := Build(testMessage(), testSender(), directContext(), pol)
	assert.Equal(t, ChannelSilent, silent.Multicast[0].Android.Notification.ChannelID)
	assert.Empty(t, silent.Multicast[0].APNS.Payload.Aps.Sound)
	assert.Equal(t, ChannelSilent, silent.Push[0].ChannelID)
	assert.Empty(t, silent.Push[0].Sound)
}

func TestBuildDataEnvelopeIdenticalAcrossChannels(t *testing.T) {
	built := Build(testMessage(), testSender(), groupContext(), basePolicy())

	want := map[string]string{
		"type":         "chat_message",
		"chatId":       "chat1",
		"messageId":    "m1",
		"senderId":     "sender1",
		"senderName":   "Ada",
		"isGroup":      "true",
		"chatAvatar":   "https://cdn.example.com/circle.png",
		"senderAvatar": "https://cdn.example.com/ada.png",
	}
	assert.Equal(t, want, built.Multicast[0].Data)
	assert.Equal(t, want, built.Push[0].Data)
}

func TestBuildZeroTokens(t *testing.T) {
	pol := basePolicy()
	pol.MulticastTokens = nil
	pol.PushTokens = nil

	built := Build(testMessage(), testSender(), directContext(), pol)
	require.NotNil(t, built.InApp)
	assert.Empty(t, built.Multicast)
	assert.Empty(t, built.Push)
}

func TestBuildOnePayloadPerToken(t *testing.T) {
	pol := basePolicy()
	pol.MulticastTokens = []string{"fcm-1", "fcm-2", "fcm-3"}
	pol.PushTokens = []string{"expo-1", "expo-2"}

	built := Build(testMessage(), testSender(), directContext(), pol)
	assert.Len(t, built.Multicast, 3)
	assert.Len(t, built.Push, 2)
}

func TestBuildThreadAndCategory(t *testing.T) {
	built := Build(testMessage(), testSender(), groupContext(), basePolicy())

	aps := built.Multicast[0].APNS.Payload.Aps
	assert.Equal(t, "chat1", aps.ThreadID)
	assert.Equal(t, "chat_message", aps.Category)
}
