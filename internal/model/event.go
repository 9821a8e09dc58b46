package model

// MessageCreatedEvent is the trigger input: the routing keys of a chat
// message that was just persisted. The message body itself is fetched
// by lookup so the event stays small on the wire.
type MessageCreatedEvent struct {
	ChatID    string `json:"chat_id" validate:"required"`
	MessageID string `json:"message_id" validate:"required"`
}

// FanOutSummary reports what one fan-out invocation actually did. It is
// informational only; callers never branch on it.
type FanOutSummary struct {
	ChatID        string `json:"chat_id"`
	MessageID     string `json:"message_id"`
	Recipients    int    `json:"recipients"`
	Eligible      int    `json:"eligible"`
	InAppWritten  int    `json:"in_app_written"`
	MulticastSent int    `json:"multicast_sent"`
	PushSent      int    `json:"push_sent"`
	Deduplicated  bool   `json:"deduplicated,omitempty"`
}
