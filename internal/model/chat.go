package model

import "time"

const (
	ChatTypeDirect = "direct"
	ChatTypeGroup  = "group"
)

// Chat is a conversation document. Participants always includes the
// sender of any message in the chat.
type Chat struct {
	ID           string   `firestore:"-" json:"id"`
	Type         string   `firestore:"type" json:"type"`
	Name         string   `firestore:"name,omitempty" json:"name,omitempty"`
	Image        string   `firestore:"image,omitempty" json:"image,omitempty"`
	CircleID     string   `firestore:"circleId,omitempty" json:"circle_id,omitempty"`
	Participants []string `firestore:"participants" json:"participants"`
}

// IsGroup treats a chat as a group either by its explicit type or by
// participant count, since older chat documents have no type field.
func (c *Chat) IsGroup() bool {
	return c.Type == ChatTypeGroup || len(c.Participants) > 2
}

// Recipients returns the participant list minus the sender.
func (c *Chat) Recipients(senderID string) []string {
	recipients := make([]string, 0, len(c.Participants))
	for _, uid := range c.Participants {
		if uid != senderID {
			recipients = append(recipients, uid)
		}
	}
	return recipients
}

// Circle backs a group chat and supplies its display name and avatar.
type Circle struct {
	ID    string `firestore:"-" json:"id"`
	Name  string `firestore:"name" json:"name"`
	Image string `firestore:"image,omitempty" json:"image,omitempty"`
}

// Message is a chat message document, stored under the chat's messages
// subcollection. Immutable once created; this service only reads it.
type Message struct {
	ID        string    `firestore:"-" json:"id"`
	ChatID    string    `firestore:"chatId" json:"chat_id"`
	SenderID  string    `firestore:"senderId" json:"sender_id"`
	Text      string    `firestore:"text" json:"text"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}
