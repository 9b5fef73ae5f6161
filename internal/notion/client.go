package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.notion.com"
	apiVersion         = "2022-06-28"
	defaultHTTPTimeout = 30 * time.Second
	childrenPageSize   = 100
)

// Config captures the runtime settings required to talk to the Notion API.
type Config struct {
	Token          string
	DatabaseID     string
	BaseURL        string
	TimeoutSeconds int
}

// Client is a minimal Notion API client covering the two queries the sync
// pipeline needs: listing published database pages and listing block
// children. Both are paginated and looped to exhaustion by the caller-facing
// methods. Requests are never retried; a failed run is re-invoked whole.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Notion client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.DatabaseID = strings.TrimSpace(cfg.DatabaseID)
	if cfg.Token == "" {
		return nil, errors.New("notion client: token required")
	}
	if cfg.DatabaseID == "" {
		return nil, errors.New("notion client: database id required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("notion request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

type queryRequest struct {
	Filter      queryFilter `json:"filter"`
	Sorts       []querySort `json:"sorts"`
	StartCursor string      `json:"start_cursor,omitempty"`
}

type queryFilter struct {
	Property string         `json:"property"`
	Checkbox checkboxEquals `json:"checkbox"`
}

type checkboxEquals struct {
	Equals bool `json:"equals"`
}

type querySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type childrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// QueryPublishedPages returns every page of the configured database with the
// published checkbox set, sorted by publication date descending. Pagination
// is followed until the API reports no more results.
func (c *Client) QueryPublishedPages(ctx context.Context) ([]Page, error) {
	var pages []Page
	cursor := ""

	for {
		reqBody := queryRequest{
			Filter: queryFilter{
				Property: PropPublished,
				Checkbox: checkboxEquals{Equals: true},
			},
			Sorts: []querySort{
				{Property: PropPublishedDate, Direction: "descending"},
			},
			StartCursor: cursor,
		}

		var resp queryResponse
		endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.cfg.BaseURL, c.cfg.DatabaseID)
		if err := c.post(ctx, endpoint, reqBody, &resp); err != nil {
			return nil, fmt.Errorf("querying pages: %w", err)
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}

// ListBlockChildren returns all direct children of the given block (a page
// is itself a block), following pagination to exhaustion.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	cursor := ""

	for {
		q := url.Values{}
		q.Set("page_size", strconv.Itoa(childrenPageSize))
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?%s", c.cfg.BaseURL, blockID, q.Encode())

		var resp childrenResponse
		if err := c.get(ctx, endpoint, &resp); err != nil {
			return nil, fmt.Errorf("listing children of block %s: %w", blockID, err)
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
