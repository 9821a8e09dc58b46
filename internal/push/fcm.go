package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// FCMClient sends a fan-out's FCM messages in one SendEach call.
// messaging.Client implements it directly.
type FCMClient interface {
	SendEach(ctx context.Context, messages []*messaging.Message) (*messaging.BatchResponse, error)
}
