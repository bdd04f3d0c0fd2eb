package lh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the Linkloft management API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	// no overall timeout; bulk streams stay open as long as the server
	// keeps sending frames and are bounded by the request context
	stream  *http.Client
	metrics *Metrics
}

// New builds a client with the default retrying transport.
func New(baseURL, token string) *Client {
	opts := DefaultTransportOptions()
	rt := NewRetryTransport(opts)
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Transport: rt, Timeout: 15 * time.Second},
		stream:  &http.Client{Transport: rt},
		metrics: opts.Metrics,
	}
}

// MetricsSnapshot exposes transport counters for the console footer.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.token == "" {
		return nil, errors.New("empty token")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %s", path, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// Ping validates base URL and token against the account endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Username string `json:"username"`
	}
	return c.getJSON(ctx, "/api/v1/me", &out)
}

// ListBookmarksOpts narrows a bookmark listing.
type ListBookmarksOpts struct {
	Page    int
	PerPage int // 0 => default 50
	Tag     string
	Folder  string
}

type bookmarksResp struct {
	Bookmarks []Bookmark `json:"bookmarks"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"per_page"`
}

// ListBookmarks fetches the collection, following pagination until the
// server runs dry.
func (c *Client) ListBookmarks(ctx context.Context, opt ListBookmarksOpts) ([]Bookmark, error) {
	if opt.PerPage <= 0 {
		opt.PerPage = 50
	}
	page := opt.Page
	if page <= 0 {
		page = 1
	}

	var all []Bookmark
	for {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(opt.PerPage))
		if opt.Tag != "" {
			q.Set("tag", opt.Tag)
		}
		if opt.Folder != "" {
			q.Set("folder", opt.Folder)
		}
		var payload bookmarksResp
		if err := c.getJSON(ctx, "/api/v1/bookmarks?"+q.Encode(), &payload); err != nil {
			return nil, err
		}
		all = append(all, payload.Bookmarks...)
		if len(payload.Bookmarks) < opt.PerPage || len(all) >= payload.Total {
			return all, nil
		}
		page++
	}
}

// ListTags fetches all tags with aggregate counts.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var payload struct {
		Tags []Tag `json:"tags"`
	}
	if err := c.getJSON(ctx, "/api/v1/tags", &payload); err != nil {
		return nil, err
	}
	return payload.Tags, nil
}

// ListFolders fetches all folders with aggregate counts.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var payload struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.getJSON(ctx, "/api/v1/folders", &payload); err != nil {
		return nil, err
	}
	return payload.Folders, nil
}
