package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// ErrNotFound is returned by SelectOne when no row matches the filters.
var ErrNotFound = errors.New("store: row not found")

// Client talks to the remote relational store over its REST surface:
// equality-filtered row selection by table name plus named remote
// procedures. All durable data lives behind this client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a store client. apiKey may be empty for stores that
// do not require one.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Select fetches the rows of table matching every filter (column ->
// value equality) and decodes them into v, which must be a pointer to a
// slice.
func (c *Client) Select(ctx context.Context, table string, filters map[string]string, v any) error {
	u := c.tableURL(table, filters)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, v)
}

// SelectOne fetches a single row of table matching the filters. It
// returns ErrNotFound when no row matches.
func (c *Client) SelectOne(ctx context.Context, table string, filters map[string]string, v any) error {
	var rows []json.RawMessage
	if err := c.Select(ctx, table, filters, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(rows[0], v)
}

// Insert adds a row to table. The store echoes the created row back;
// pass a non-nil v to decode it, or nil to discard it.
func (c *Client) Insert(ctx context.Context, table string, row any, v any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(req, v)
}

// Upsert inserts a row or overwrites the existing one on key conflict.
func (c *Client) Upsert(ctx context.Context, table string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")
	return c.do(req, nil)
}

// Delete removes the rows of table matching every filter.
func (c *Client) Delete(ctx context.Context, table string, filters map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.tableURL(table, filters), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// RPC invokes a named remote procedure with params as its JSON argument
// object and decodes the result set into v.
func (c *Client) RPC(ctx context.Context, name string, params any, v any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, v)
}

func (c *Client) tableURL(table string, filters map[string]string) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(table))
	if len(filters) == 0 {
		return u
	}
	// Deterministic filter order keeps URLs stable for logs and tests.
	cols := make([]string, 0, len(filters))
	for col := range filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	q := url.Values{}
	for _, col := range cols {
		q.Set(col, "eq."+filters[col])
	}
	return u + "?" + q.Encode()
}

func (c *Client) do(req *http.Request, v any) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store: HTTP %d from %s", resp.StatusCode, req.URL.Path)
	}
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
