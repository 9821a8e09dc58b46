package push

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFCM struct {
	calls    [][]*messaging.Message
	err      error
	failures int
}

func (f *fakeFCM) SendEach(_ context.Context, messages []*messaging.Message) (*messaging.BatchResponse, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return nil, f.err
	}

	responses := make([]*messaging.SendResponse, len(messages))
	failures := f.failures
	for i := range messages {
		if failures > 0 {
			responses[i] = &messaging.SendResponse{Success: false, Error: errors.New("registration-token-not-registered")}
			failures--
			continue
		}
		responses[i] = &messaging.SendResponse{Success: true, MessageID: fmt.Sprintf("msg-%d", i)}
	}

	return &messaging.BatchResponse{
		SuccessCount: len(messages) - f.failures,
		FailureCount: f.failures,
		Responses:    responses,
	}, nil
}

type fakeExpo struct {
	chunks [][]ExpoMessage
	errAt  map[int]error
}

func (f *fakeExpo) SendBatch(_ context.Context, messages []ExpoMessage) (int, error) {
	call := len(f.chunks)
	f.chunks = append(f.chunks, messages)
	if err, ok := f.errAt[call]; ok {
		return 0, err
	}
	return len(messages), nil
}

func fcmMessages(n int) []*messaging.Message {
	messages := make([]*messaging.Message, n)
	for i := range messages {
		messages[i] = &messaging.Message{Token: fmt.Sprintf("fcm-%d", i)}
	}
	return messages
}

func expoMessages(n int) []ExpoMessage {
	messages := make([]ExpoMessage, n)
	for i := range messages {
		messages[i] = ExpoMessage{To: fmt.Sprintf("expo-%d", i)}
	}
	return messages
}

func TestDispatchCountsBothChannels(t *testing.T) {
	fcm := &fakeFCM{}
	expo := &fakeExpo{}
	d := NewDispatcher(fcm, expo)

	result := d.Dispatch(context.Background(), fcmMessages(3), expoMessages(5))

	assert.Equal(t, 3, result.MulticastSent)
	assert.Equal(t, 5, result.PushSent)
	assert.Len(t, fcm.calls, 1, "all multicast payloads go in one call")
}

func TestDispatchExpoChunking(t *testing.T) {
	expo := &fakeExpo{}
	d := NewDispatcher(&fakeFCM{}, expo)

	result := d.Dispatch(context.Background(), nil, expoMessages(250))

	require.Len(t, expo.chunks, 3)
	assert.Len(t, expo.chunks[0], 100)
	assert.Len(t, expo.chunks[1], 100)
	assert.Len(t, expo.chunks[2], 50)
	assert.Equal(t, 250, result.PushSent)
}

func TestDispatchExpoChunkFailureDoesNotAbortRest(t *testing.T) {
	expo := &fakeExpo{errAt: map[int]error{1: errors.New("gateway timeout")}}
	d := NewDispatcher(&fakeFCM{}, expo)

	result := d.Dispatch(context.Background(), nil, expoMessages(250))

	require.Len(t, expo.chunks, 3, "remaining chunks still attempted")
	assert.Equal(t, 150, result.PushSent)
}

func TestDispatchChannelIsolation(t *testing.T) {
	fcm := &fakeFCM{err: errors.New("fcm unavailable")}
	expo := &fakeExpo{}
	d := NewDispatcher(fcm, expo)

	result := d.Dispatch(context.Background(), fcmMessages(2), expoMessages(2))
	assert.Equal(t, 0, result.MulticastSent)
	assert.Equal(t, 2, result.PushSent, "expo proceeds when fcm throws")

	fcm = &fakeFCM{}
	expo = &fakeExpo{errAt: map[int]error{0: errors.New("expo unavailable")}}
	d = NewDispatcher(fcm, expo)

	result = d.Dispatch(context.Background(), fcmMessages(2), expoMessages(2))
	assert.Equal(t, 2, result.MulticastSent, "fcm proceeds when expo throws")
	assert.Equal(t, 0, result.PushSent)
}

func TestDispatchPartialTokenFailuresAreData(t *testing.T) {
	fcm := &fakeFCM{failures: 2}
	d := NewDispatcher(fcm, &fakeExpo{})

	result := d.Dispatch(context.Background(), fcmMessages(5), nil)
	assert.Equal(t, 3, result.MulticastSent)
}

func TestDispatchEmptyInputsMakeNoCalls(t *testing.T) {
	fcm := &fakeFCM{}
	expo := &fakeExpo{}
	d := NewDispatcher(fcm, expo)

	result := d.Dispatch(context.Background(), nil, nil)
	assert.Zero(t, result.MulticastSent)
	assert.Zero(t, result.PushSent)
	assert.Empty(t, fcm.calls)
	assert.Empty(t, expo.chunks)
}
