// Package sendgrid is a minimal client for the SendGrid v3 mail send API,
// used for the optional email reminder path.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client sends plain text email through SendGrid.
type Client struct {
	apiURL     string
	apiKey     string
	sender     string
	httpClient *http.Client
}

// NewClient creates a new SendGrid client. sender must be a verified address.
func NewClient(apiKey, sender string) *Client {
	return &Client{
		apiURL:     "https://api.sendgrid.com",
		apiKey:     apiKey,
		sender:     sender,
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

type mailRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers a plain text email to the recipient.
func (c *Client) Send(ctx context.Context, recipient, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid: API key not configured")
	}
	if c.sender == "" {
		return fmt.Errorf("sendgrid: sender not configured")
	}
	if recipient == "" {
		return fmt.Errorf("sendgrid: recipient not configured")
	}

	payload := mailRequest{
		Personalizations: []personalization{{To: []address{{Email: recipient}}}},
		From:             address{Email: c.sender},
		Subject:          subject,
		Content:          []content{{Type: "text/plain", Value: body}},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v3/mail/send", bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("sendgrid: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		if len(respBody) > 150 {
			respBody = respBody[:150]
		}
		return fmt.Errorf("sendgrid: API error %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
