package model

import "time"

// NotificationTypeChatMessage is the category identifier attached to
// every chat notification so the client can route taps consistently.
const NotificationTypeChatMessage = "chat_message"

// Notification is one entry in a user's in-app feed. Written once by
// the fan-out pipeline; only the read flag changes afterwards.
type Notification struct {
	ID        string    `firestore:"-" json:"id"`
	UID       string    `firestore:"uid" json:"uid"`
	Type      string    `firestore:"type" json:"type"`
	Title     string    `firestore:"title" json:"title"`
	Subtitle  string    `firestore:"subtitle" json:"subtitle"`
	ChatID    string    `firestore:"chatId" json:"chat_id"`
	SenderID  string    `firestore:"senderId" json:"sender_id"`
	MessageID string    `firestore:"messageId" json:"message_id"`
	Avatar    string    `firestore:"avatar,omitempty" json:"avatar,omitempty"`
	Read      bool      `firestore:"read" json:"read"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}

// NotificationStats is the per-user unread counter document.
type NotificationStats struct {
	Total  int `firestore:"total" json:"total"`
	Unread int `firestore:"unread" json:"unread"`
}
