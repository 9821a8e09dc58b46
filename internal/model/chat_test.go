package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIsGroup(t *testing.T) {
	tests := []struct {
		name string
		chat Chat
		want bool
	}{
		{"explicit group type", Chat{Type: ChatTypeGroup, Participants: []string{"a", "b"}}, true},
		{"direct two participants", Chat{Type: ChatTypeDirect, Participants: []string{"a", "b"}}, false},
		{"untyped two participants", Chat{Participants: []string{"a", "b"}}, false},
		{"untyped three participants", Chat{Participants: []string{"a", "b", "c"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chat.IsGroup())
		})
	}
}

func TestChatRecipients(t *testing.T) {
	chat := Chat{Participants: []string{"a", "b", "c"}}
	assert.Equal(t, []string{"b", "c"}, chat.Recipients("a"))
	assert.Equal(t, []string{"a", "b", "c"}, chat.Recipients("outsider"))
	empty := Chat{}
	assert.Empty(t, empty.Recipients("a"))
}
