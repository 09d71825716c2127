// Package tts fetches spoken audio for short texts from the Google
// Translate text-to-speech endpoint.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxTextLen is the endpoint's per-request text limit.
const maxTextLen = 200

// Client fetches MP3 audio for text.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a new TTS client.
func NewClient() *Client {
	return &Client{
		apiURL:     "https://translate.google.com/translate_tts",
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the endpoint for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// Synthesize returns MP3 audio speaking text in the given language code.
// Text longer than the endpoint limit is cut off.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("tts: empty text")
	}
	if lang == "" {
		lang = "en"
	}
	runes := []rune(text)
	if len(runes) > maxTextLen {
		text = string(runes[:maxTextLen])
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("tts: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: failed to call endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts: endpoint error %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: failed to read audio: %w", err)
	}
	return audio, nil
}
