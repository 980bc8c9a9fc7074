// Package whatsapp provides the WhatsApp Business messaging gateway:
// an outbound Graph API client and the inbound webhook handler.
package whatsapp

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

const defaultBaseURL = "https://graph.facebook.com/v19.0"

// Client sends text messages through the WhatsApp Business Graph API.
type Client struct {
	baseURL       string
	token         string
	phoneNumberID string
	httpClient    *http.Client
}

// NewClient creates a WhatsApp Graph API client. An empty baseURL selects
// the production Graph API endpoint.
func NewClient(baseURL, token, phoneNumberID string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:       trimmed,
		token:         token,
		phoneNumberID: phoneNumberID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// Send delivers one text message to a user identified by phone number.
func (c *Client) Send(ctx context.Context, userID, text string) error {
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               userID,
		Type:             "text",
		Text:             sendText{Body: text},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("WhatsApp API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
