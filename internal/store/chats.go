package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

const (
	chatsCollection    = "chats"
	circlesCollection  = "circles"
	messagesCollection = "messages"
)

type ChatService struct {
	db *firestore.Client
}

func NewChatService(db *firestore.Client) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	doc, err := s.db.Collection(chatsCollection).Doc(chatID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	var chat model.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (s *ChatService) GetCircle(ctx context.Context, circleID string) (*model.Circle, error) {
	doc, err := s.db.Collection(circlesCollection).Doc(circleID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}

	var circle model.Circle
	if err := doc.DataTo(&circle); err != nil {
		return nil, fmt.Errorf("failed to parse circle: %w", err)
	}
	circle.ID = doc.Ref.ID

	return &circle, nil
}

func (s *ChatService) GetMessage(ctx context.Context, chatID, messageID string) (*model.Message, error) {
	doc, err := s.db.Collection(chatsCollection).Doc(chatID).Collection(messagesCollection).Doc(messageID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	var message model.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	message.ID = doc.Ref.ID
	message.ChatID = chatID

	return &message, nil
}
