package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client delivers push notifications through an FCM-style gateway. Each
// message targets the owner's per-user topic.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Notification is one fire-and-forget message. ID is freshly randomized per
// send so repeated jobs produce independent notifications.
type Notification struct {
	ID    int    `json:"message_id"`
	Topic string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendRequest struct {
	To           string           `json:"to"`
	MessageID    int              `json:"message_id"`
	Notification sendNotification `json:"notification"`
}

type sendNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Send(ctx context.Context, n Notification) error {
	reqBody := sendRequest{
		To:        "/topics/" + n.Topic,
		MessageID: n.ID,
		Notification: sendNotification{
			Title: n.Title,
			Body:  n.Body,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/send"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "key="+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send notification: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}
