// Package sdk is a thin Go client for the pressdex HTTP API.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Article is an indexed press article as returned by the API.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Body            string    `json:"body"`
	Author          string    `json:"author"`
	PublicationDate time.Time `json:"publication_date"`
	Timestamp       time.Time `json:"timestamp"`
}

// Hit is one search match.
type Hit struct {
	Article
	Score      float64           `json:"score"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Pagination echoes the requested window and whether more results exist.
type Pagination struct {
	From    int  `json:"from"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

// Page is one window of search or listing results.
type Page struct {
	Total      int        `json:"total"`
	Articles   []Hit      `json:"articles"`
	Pagination Pagination `json:"pagination"`
}

// FailedItem is one failure from a bulk operation.
type FailedItem struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// AuthorCount is one row of the per-author breakdown.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// DayCount is one bucket of the per-day histogram.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// IndexStats describes the backing index.
type IndexStats struct {
	Documents   int   `json:"documents"`
	DeletedDocs int   `json:"deleted_docs"`
	SizeBytes   int64 `json:"size_bytes"`
}

// Aggregations holds the corpus breakdowns.
type Aggregations struct {
	TopAuthors       []AuthorCount `json:"top_authors"`
	ArticlesOverTime []DayCount    `json:"articles_over_time"`
}

// Stats is the index-wide statistics overview.
type Stats struct {
	Index        IndexStats   `json:"index"`
	Aggregations Aggregations `json:"aggregations"`
}

// UploadInput carries the fields of a new article.
type UploadInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Body            string `json:"body"`
	Author          string `json:"author"`
	PublicationDate string `json:"publication_date,omitempty"`
}

// Filters narrows an advanced search.
type Filters struct {
	Author   string `json:"author,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

// AdvancedQuery carries the full set of search controls. Sort takes the
// form "field:dir", e.g. "publication_date:desc".
type AdvancedQuery struct {
	Query   string  `json:"query,omitempty"`
	Filters Filters `json:"filters,omitempty"`
	From    int     `json:"from,omitempty"`
	Size    int     `json:"size,omitempty"`
	Sort    string  `json:"sort,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pressdex: %s (status %d)", e.Message, e.StatusCode)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// Client talks to a pressdex server.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Upload submits a new article and returns it with its assigned ID.
func (c *Client) Upload(ctx context.Context, in UploadInput) (Article, error) {
	var resp struct {
		Article Article `json:"article"`
	}
	err := c.do(ctx, http.MethodPost, "/api/upload", in, &resp)
	return resp.Article, err
}

// Find fetches an article by ID.
func (c *Client) Find(ctx context.Context, id string) (Article, error) {
	var resp struct {
		Article Article `json:"article"`
	}
	err := c.do(ctx, http.MethodGet, "/api/find/"+url.PathEscape(id), nil, &resp)
	return resp.Article, err
}

// FindBatch fetches several articles at once. IDs without a document are
// returned separately.
func (c *Client) FindBatch(ctx context.Context, ids []string) (found []Article, notFound []string, err error) {
	var resp struct {
		Articles []Article `json:"articles"`
		NotFound []string  `json:"not_found"`
	}
	err = c.do(ctx, http.MethodPost, "/api/find/batch", map[string][]string{"ids": ids}, &resp)
	return resp.Articles, resp.NotFound, err
}

// List returns a sorted page of articles. Sort takes the form "field:dir".
func (c *Client) List(ctx context.Context, from, size int, sort string) (Page, error) {
	q := url.Values{}
	if from > 0 {
		q.Set("from", strconv.Itoa(from))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if sort != "" {
		q.Set("sort", sort)
	}

	var resp Page
	err := c.do(ctx, http.MethodGet, withQuery("/api/find", q), nil, &resp)
	return resp, err
}

// Delete removes an article by ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/delete/"+url.PathEscape(id), nil, nil)
}

// DeleteBulk removes several articles and reports per-item outcomes.
func (c *Client) DeleteBulk(ctx context.Context, ids []string) (deleted []string, failed []FailedItem, err error) {
	var resp struct {
		Deleted []string     `json:"deleted"`
		Failed  []FailedItem `json:"failed"`
	}
	err = c.do(ctx, http.MethodPost, "/api/delete/bulk", map[string][]string{"ids": ids}, &resp)
	return resp.Deleted, resp.Failed, err
}

// Search runs a free-text search with relevance scores and highlights.
func (c *Client) Search(ctx context.Context, term string, from, size int) (Page, error) {
	q := url.Values{"q": {term}}
	if from > 0 {
		q.Set("from", strconv.Itoa(from))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var resp Page
	err := c.do(ctx, http.MethodGet, withQuery("/api/search", q), nil, &resp)
	return resp, err
}

// AdvancedSearch runs a filtered search.
func (c *Client) AdvancedSearch(ctx context.Context, query AdvancedQuery) (Page, error) {
	var resp Page
	err := c.do(ctx, http.MethodPost, "/api/search/advanced", query, &resp)
	return resp, err
}

// Stats fetches the index-wide statistics overview.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var resp struct {
		Stats Stats `json:"stats"`
	}
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &resp)
	return resp.Stats, err
}

// Init creates the search index if it does not exist yet.
func (c *Client) Init(ctx context.Context) (created bool, err error) {
	var resp struct {
		Created bool `json:"created"`
	}
	err = c.do(ctx, http.MethodPost, "/api/init", nil, &resp)
	return resp.Created, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("pressdex: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("pressdex: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("pressdex: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("pressdex: read response: %w", err)
	}

	if res.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(res.StatusCode)
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &APIError{StatusCode: res.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("pressdex: decode response: %w", err)
	}
	return nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
