package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	DefaultCatalogURL = "https://openlibrary.org"
	searchPath        = "/search.json"
	searchLimit       = "20"
	searchFields      = "key,title,author_name,cover_i,first_publish_year"
	defaultUserAgent  = "shelfkit/0.1"
)

// ErrUnexpectedStatus is wrapped into errors for non-2xx catalog responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// BookRecord is a single normalized catalog hit. Optional fields are nil when
// the catalog omitted them.
type BookRecord struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors,omitempty"`
	CoverID          *int     `json:"coverId,omitempty"`
	FirstPublishYear *int     `json:"firstPublishYear,omitempty"`
}

// SearchResult is the normalized form of one search response.
type SearchResult struct {
	TotalFound  int          `json:"totalFound"`
	StartOffset int          `json:"startOffset"`
	Records     []BookRecord `json:"records"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	CoverI           *int     `json:"cover_i"`
	FirstPublishYear *int     `json:"first_publish_year"`
}

type searchResponse struct {
	NumFound int         `json:"numFound"`
	Start    int         `json:"start"`
	Docs     []searchDoc `json:"docs"`
}

// Client is an HTTP client for the Open Library search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different catalog host.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new catalog client. No request timeout is set; callers
// bound requests through the context.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultCatalogURL,
		userAgent:  defaultUserAgent,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the books matching query. Failures are logged and reported
// as an empty slice, so "no results" and "request failed" look the same.
func (c *Client) Search(ctx context.Context, query string) []BookRecord {
	return c.SearchResult(ctx, query).Records
}

// SearchResult is Search with the response paging fields kept.
func (c *Client) SearchResult(ctx context.Context, query string) SearchResult {
	if strings.TrimSpace(query) == "" {
		return SearchResult{}
	}

	resp, err := c.fetch(ctx, query)
	if err != nil {
		c.logger.Error("Catalog search failed", "query", query, "error", err)
		return SearchResult{}
	}

	records := make([]BookRecord, 0, len(resp.Docs))
	for _, doc := range resp.Docs {
		records = append(records, doc.record())
	}
	return SearchResult{
		TotalFound:  resp.NumFound,
		StartOffset: resp.Start,
		Records:     records,
	}
}

func (c *Client) fetch(ctx context.Context, query string) (*searchResponse, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", searchLimit)
	values.Set("fields", searchFields)
	searchURL := fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("Catalog request", "url", searchURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return &payload, nil
}

func (d searchDoc) record() BookRecord {
	rec := BookRecord{
		ID:               d.Key,
		Title:            d.Title,
		CoverID:          d.CoverI,
		FirstPublishYear: d.FirstPublishYear,
	}
	if d.AuthorName != nil {
		rec.Authors = append([]string(nil), d.AuthorName...)
	}
	return rec
}
