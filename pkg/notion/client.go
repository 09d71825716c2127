package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultAPIURL = "https://api.notion.com"

	// maxErrorBody bounds how much of an upstream error body is carried in
	// error messages sent back to the user.
	maxErrorBody = 150
)

// Client is the HTTP wrapper for the Notion REST API.
type Client struct {
	apiURL     string
	token      string
	databaseID string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a new Notion HTTP client bound to one task database.
func NewClient(token, databaseID, apiVersion string) *Client {
	return &Client{
		apiURL:     defaultAPIURL,
		token:      token,
		databaseID: databaseID,
		apiVersion: apiVersion,
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the default Notion API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	c.apiURL = url
}

// QueryDatabase fetches up to pageSize task pages sorted by due date ascending.
func (c *Client) QueryDatabase(ctx context.Context, pageSize int) ([]Page, error) {
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.apiURL, c.databaseID)
	req := queryRequest{
		PageSize: pageSize,
		Sorts:    []querySort{{Property: "Due date", Direction: "ascending"}},
	}

	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CreatePage creates a new task page in the database.
func (c *Client) CreatePage(ctx context.Context, props Properties) (*Page, error) {
	url := fmt.Sprintf("%s/v1/pages", c.apiURL)
	req := createPageRequest{
		Parent:     parentRef{DatabaseID: c.databaseID},
		Properties: props,
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, url, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePageProperties patches a subset of a page's properties.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, props Properties) error {
	url := fmt.Sprintf("%s/v1/pages/%s", c.apiURL, pageID)
	return c.do(ctx, http.MethodPatch, url, patchPageRequest{Properties: &props}, nil)
}

// ArchivePage soft-deletes a page by setting archived=true.
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	url := fmt.Sprintf("%s/v1/pages/%s", c.apiURL, pageID)
	archived := true
	return c.do(ctx, http.MethodPatch, url, patchPageRequest{Archived: &archived}, nil)
}

// do runs one request/response round trip. A non-2xx response becomes an
// error carrying the status code and a truncated body; nothing is retried.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("notion: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("notion: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	httpReq.Header.Set("Notion-Version", c.apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("notion: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		if len(respBody) > maxErrorBody {
			respBody = respBody[:maxErrorBody]
		}
		return fmt.Errorf("notion: API error %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: failed to decode response: %w", err)
	}
	return nil
}
