package model

// NotificationSettings is the typed form of a user's notification
// preferences. Pointer fields distinguish "unset" from "false"; every
// setting defaults to enabled when unset.
type NotificationSettings struct {
	DirectMessageShow  *bool `firestore:"directMessageShow,omitempty" json:"direct_message_show,omitempty"`
	DirectMessageSound *bool `firestore:"directMessageSound,omitempty" json:"direct_message_sound,omitempty"`
	GroupMessageShow   *bool `firestore:"groupMessageShow,omitempty" json:"group_message_show,omitempty"`
	GroupMessageSound  *bool `firestore:"groupMessageSound,omitempty" json:"group_message_sound,omitempty"`
	ShowPreview        *bool `firestore:"showPreview,omitempty" json:"show_preview,omitempty"`
}

// UserProfile is the slice of the user document this service reads.
// It is mutated only by the settings UI, never by the fan-out pipeline.
type UserProfile struct {
	UID             string               `firestore:"-" json:"uid"`
	DisplayName     string               `firestore:"displayName,omitempty" json:"display_name,omitempty"`
	Photo           string               `firestore:"photo,omitempty" json:"photo,omitempty"`
	Settings        NotificationSettings `firestore:"settings,omitempty" json:"settings,omitempty"`
	MutedChatIDs    []string             `firestore:"mutedChatIds,omitempty" json:"muted_chat_ids,omitempty"`
	PushTokens      []string             `firestore:"pushTokens,omitempty" json:"push_tokens,omitempty"`
	MulticastTokens []string             `firestore:"fcmTokens,omitempty" json:"fcm_tokens,omitempty"`
}

// HasMuted reports whether the user muted the given chat.
func (p *UserProfile) HasMuted(chatID string) bool {
	for _, id := range p.MutedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
