package notion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kairos/pkg/notion"
)

func TestQueryDatabaseSortsByDueDate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/v1/databases/db-1/query") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("unexpected version header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"id": "p1", "properties": {}}, {"id": "p2", "properties": {}}]}`))
	}))
	defer server.Close()

	client := notion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)

	pages, err := client.QueryDatabase(context.Background(), 25)
	if err != nil {
		t.Fatalf("QueryDatabase failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].ID != "p1" || pages[1].ID != "p2" {
		t.Errorf("unexpected page IDs: %q, %q", pages[0].ID, pages[1].ID)
	}

	if captured["page_size"] != float64(25) {
		t.Errorf("expected page_size 25, got %v", captured["page_size"])
	}
	sorts, ok := captured["sorts"].([]any)
	if !ok || len(sorts) != 1 {
		t.Fatalf("expected one sort, got %v", captured["sorts"])
	}
	sort := sorts[0].(map[string]any)
	if sort["property"] != "Due date" || sort["direction"] != "ascending" {
		t.Errorf("unexpected sort: %v", sort)
	}
}

func TestCreatePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		parent := body["parent"].(map[string]any)
		if parent["database_id"] != "db-1" {
			t.Errorf("expected parent database db-1, got %v", parent["database_id"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "new-page", "properties": {"Task": {"title": [{"plain_text": "Essay"}]}}}`))
	}))
	defer server.Close()

	client := notion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)

	props := notion.Properties{
		Task: &notion.PropTitle{Title: []notion.RichText{{Text: &notion.TextContent{Content: "Essay"}}}},
	}
	page, err := client.CreatePage(context.Background(), props)
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if page.ID != "new-page" {
		t.Errorf("expected page ID new-page, got %q", page.ID)
	}
	if got := page.Properties.Task.PlainTitle(); got != "Essay" {
		t.Errorf("expected title Essay, got %q", got)
	}
}

func TestUpdatePageProperties(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["archived"]; ok {
			t.Error("status update should not set archived")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := notion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)

	props := notion.Properties{
		Status: &notion.PropStatus{Status: &notion.SelectOption{Name: "Completed"}},
	}
	if err := client.UpdatePageProperties(context.Background(), "page-9", props); err != nil {
		t.Fatalf("UpdatePageProperties failed: %v", err)
	}
	if method != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", method)
	}
	if path != "/v1/pages/page-9" {
		t.Errorf("unexpected path %q", path)
	}
}

func TestArchivePage(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := notion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)

	if err := client.ArchivePage(context.Background(), "page-9"); err != nil {
		t.Fatalf("ArchivePage failed: %v", err)
	}
	if captured["archived"] != true {
		t.Errorf("expected archived=true in body, got %v", captured)
	}
}

func TestAPIErrorTruncatesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer server.Close()

	client := notion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)

	_, err := client.QueryDatabase(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("expected error to carry status code, got %q", err.Error())
	}
	if len(err.Error()) > 250 {
		t.Errorf("expected truncated error body, got %d chars", len(err.Error()))
	}
}
