package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Token:      "secret-token",
		DatabaseID: "db-1",
		BaseURL:    server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing token", Config{DatabaseID: "db-1"}},
		{"missing database id", Config{Token: "secret"}},
		{"whitespace token", Config{Token: "   ", DatabaseID: "db-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewClient(tt.cfg); err == nil {
				t.Error("NewClient() returned nil error, want validation failure")
			}
		})
	}
}

func TestClient_QueryPublishedPages(t *testing.T) {
	t.Parallel()
	var requests []queryRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/databases/db-1/query" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		requests = append(requests, req)

		// Two pages of results.
		resp := queryResponse{
			Results: []Page{{ID: fmt.Sprintf("page-%d", len(requests))}},
		}
		if len(requests) == 1 {
			resp.HasMore = true
			resp.NextCursor = "cursor-2"
		}
		json.NewEncoder(w).Encode(resp)
	})

	pages, err := client.QueryPublishedPages(context.Background())
	if err != nil {
		t.Fatalf("QueryPublishedPages() error: %v", err)
	}

	if len(pages) != 2 || pages[0].ID != "page-1" || pages[1].ID != "page-2" {
		t.Errorf("pages = %+v, want page-1 and page-2", pages)
	}
	if len(requests) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(requests))
	}

	first := requests[0]
	if first.Filter.Property != PropPublished || !first.Filter.Checkbox.Equals {
		t.Errorf("filter = %+v, want published checkbox equals true", first.Filter)
	}
	if len(first.Sorts) != 1 || first.Sorts[0].Property != PropPublishedDate || first.Sorts[0].Direction != "descending" {
		t.Errorf("sorts = %+v, want published date descending", first.Sorts)
	}
	if first.StartCursor != "" {
		t.Errorf("first request cursor = %q, want empty", first.StartCursor)
	}
	if requests[1].StartCursor != "cursor-2" {
		t.Errorf("second request cursor = %q, want cursor-2", requests[1].StartCursor)
	}
}

func TestClient_ListBlockChildren(t *testing.T) {
	t.Parallel()
	var cursors []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/blocks/block-1/children" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("page_size"); got != "100" {
			t.Errorf("page_size = %q, want 100", got)
		}
		cursors = append(cursors, r.URL.Query().Get("start_cursor"))

		resp := childrenResponse{
			Results: []Block{{ID: fmt.Sprintf("b%d", len(cursors)), Type: TypeParagraph}},
		}
		if len(cursors) < 3 {
			resp.HasMore = true
			resp.NextCursor = fmt.Sprintf("cursor-%d", len(cursors)+1)
		}
		json.NewEncoder(w).Encode(resp)
	})

	blocks, err := client.ListBlockChildren(context.Background(), "block-1")
	if err != nil {
		t.Fatalf("ListBlockChildren() error: %v", err)
	}

	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	wantCursors := []string{"", "cursor-2", "cursor-3"}
	for i, want := range wantCursors {
		if cursors[i] != want {
			t.Errorf("request %d cursor = %q, want %q", i, cursors[i], want)
		}
	}
}

func TestClient_ErrorCarriesStatusAndBody(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message":"rate limited"}`)
	})

	_, err := client.QueryPublishedPages(context.Background())
	if err == nil {
		t.Fatal("QueryPublishedPages() returned nil error, want http failure")
	}
	if !strings.Contains(err.Error(), "http 429") {
		t.Errorf("error = %q, want the status code included", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %q, want the response body included", err)
	}
}

func TestClient_BlockPayloadDecoding(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"results": [
				{"id": "b1", "type": "paragraph", "paragraph": {"rich_text": [{"plain_text": "hello", "annotations": {"bold": true}}]}},
				{"id": "b2", "type": "image", "image": {"type": "file", "file": {"url": "https://files.notion.so/x.png"}}},
				{"id": "b3", "type": "heading_2", "has_children": true, "heading_2": {"rich_text": [{"plain_text": "t"}], "is_toggleable": true}}
			],
			"has_more": false
		}`)
	})

	blocks, err := client.ListBlockChildren(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("ListBlockChildren() error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	if blocks[0].Paragraph == nil || blocks[0].Paragraph.RichText[0].PlainText != "hello" {
		t.Errorf("paragraph payload = %+v", blocks[0].Paragraph)
	}
	if !blocks[0].Paragraph.RichText[0].Annotations.Bold {
		t.Error("bold annotation lost in decoding")
	}
	if !blocks[1].Image.Hosted() || blocks[1].Image.URL() != "https://files.notion.so/x.png" {
		t.Errorf("image payload = %+v", blocks[1].Image)
	}
	heading := blocks[2].Heading()
	if heading == nil || !heading.IsToggleable || !blocks[2].HasChildren {
		t.Errorf("heading payload = %+v", blocks[2])
	}
}
