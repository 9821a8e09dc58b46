// Package payload shapes notification content for every delivery
// channel. It is pure transformation: the content rules here are the
// product's business logic and are exercised heavily by tests.
package payload

import (
	"strconv"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/policy"
	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/push"
)

// Android notification channels registered by the mobile app. The
// silent variant exists so muting sound never requires re-registering
// the default channel.
const (
	ChannelDefault = "chat-messages"
	ChannelSilent  = "chat-messages-silent"
)

const maskedBody = "New message"

// ChatContext is the display context resolved by the orchestrator:
// group flag plus the name and avatar a group notification should
// carry (circle's when the chat belongs to one, chat's otherwise).
type ChatContext struct {
	ChatID      string
	IsGroup     bool
	GroupName   string
	GroupAvatar string
}

// Built is everything one recipient's notification expands to.
type Built struct {
	InApp     *model.Notification
	Multicast []*messaging.Message
	Push      []push.ExpoMessage
}

// Build produces the in-app record and one payload per device token
// for a single recipient. Zero tokens of a kind yields zero payloads
// of that kind.
func Build(msg *model.Message, sender *model.UserProfile, chat ChatContext, pol *policy.ResolvedPolicy) *Built {
	title, body := content(msg, sender, chat, pol.ShowPreview)
	avatar := avatarFor(sender, chat)
	data := envelope(msg, sender, chat)

	channelID := ChannelDefault
	if !pol.PlaySound {
		channelID = ChannelSilent
	}

	built := &Built{
		InApp: &model.Notification{
			ID:        uuid.New().String(),
			UID:       pol.UID,
			Type:      model.NotificationTypeChatMessage,
			Title:     title,
			Subtitle:  body,
			ChatID:    msg.ChatID,
			SenderID:  msg.SenderID,
			MessageID: msg.ID,
			Avatar:    avatar,
			Read:      false,
			CreatedAt: time.Now(),
		},
	}

	for _, token := range pol.MulticastTokens {
		built.Multicast = append(built.Multicast, fcmMessage(token, title, body, data, chat, channelID, pol.PlaySound))
	}

	for _, token := range pol.PushTokens {
		expo := push.ExpoMessage{
			To:        token,
			Title:     title,
			Body:      body,
			Data:      data,
			ChannelID: channelID,
		}
		if pol.PlaySound {
			expo.Sound = "default"
		}
		built.Push = append(built.Push, expo)
	}

	return built
}

// content applies the title and preview-masking rules. Group chats are
// titled with the group name and prefix the body with the sender;
// direct chats are titled with the sender and carry the bare text.
func content(msg *model.Message, sender *model.UserProfile, chat ChatContext, showPreview bool) (string, string) {
	text := msg.Text
	if !showPreview {
		text = maskedBody
	}

	if chat.IsGroup {
		return chat.GroupName, sender.DisplayName + ": " + text
	}
	return sender.DisplayName, text
}

func avatarFor(sender *model.UserProfile, chat ChatContext) string {
	if chat.IsGroup {
		return chat.GroupAvatar
	}
	return sender.Photo
}

// envelope is attached identically to every channel so the client can
// route notification taps the same way regardless of how the push
// arrived.
func envelope(msg *model.Message, sender *model.UserProfile, chat ChatContext) map[string]string {
	return map[string]string{
		"type":         model.NotificationTypeChatMessage,
		"chatId":       msg.ChatID,
		"messageId":    msg.ID,
		"senderId":     msg.SenderID,
		"senderName":   sender.DisplayName,
		"isGroup":      strconv.FormatBool(chat.IsGroup),
		"chatAvatar":   chat.GroupAvatar,
		"senderAvatar": sender.Photo,
	}
}

func fcmMessage(token, title, body string, data map[string]string, chat ChatContext, channelID string, playSound bool) *messaging.Message {
	android := &messaging.AndroidNotification{
		ChannelID: channelID,
	}
	aps := &messaging.Aps{
		Category: model.NotificationTypeChatMessage,
		ThreadID: chat.ChatID,
	}
	if playSound {
		android.Sound = "default"
		aps.Sound = "default"
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: android,
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: aps,
			},
		},
	}
}
