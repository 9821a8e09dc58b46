package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ExpoMessage is one token-addressed push in Expo's wire format.
type ExpoMessage struct {
	To        string            `json:"to"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
	Sound     string            `json:"sound,omitempty"`
}

type expoResponse struct {
	Data []json.RawMessage `json:"data"`
}

// ExpoClient talks to the Expo push endpoint. The endpoint accepts at
// most 100 messages per request; chunking is the dispatcher's job.
type ExpoClient struct {
	url    string
	client *http.Client
}

func NewExpoClient(url string) *ExpoClient {
	return &ExpoClient{
		url:    url,
		client: &http.Client{},
	}
}

// SendBatch posts one chunk of messages and returns how many the
// provider accepted.
func (c *ExpoClient) SendBatch(ctx context.Context, messages []ExpoMessage) (int, error) {
	body, err := json.Marshal(messages)
	if err != nil {
		return 0, fmt.Errorf("error encoding expo push request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("expo push API returned status: %d", resp.StatusCode)
	}

	var result expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("error decoding response: %v", err)
	}

	return len(result.Data), nil
}
