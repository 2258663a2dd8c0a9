// Package client talks to the tweet REST backend. Every call is a fresh round
// trip: no retries, no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tweetboard/internal/model"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// Client is the transport adapter for the /api/tweets resource.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for the resource at baseURL, e.g.
// "http://localhost:8080/api/tweets".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTweets handles GET /api/tweets
func (c *Client) ListTweets(ctx context.Context) ([]model.Tweet, error) {
	var out []model.Tweet
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// CreateTweet handles POST /api/tweets
func (c *Client) CreateTweet(ctx context.Context, req model.TweetRequest) (model.Tweet, error) {
	var out model.Tweet
	err := c.do(ctx, http.MethodPost, c.baseURL, req, &out)
	return out, err
}

// GetTweet handles GET /api/tweets/{id}
func (c *Client) GetTweet(ctx context.Context, id int64) (model.Tweet, error) {
	var out model.Tweet
	err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &out)
	return out, err
}

// UpdateTweet handles PUT /api/tweets/{id}
func (c *Client) UpdateTweet(ctx context.Context, id int64, req model.TweetRequest) (model.Tweet, error) {
	var out model.Tweet
	err := c.do(ctx, http.MethodPut, c.itemURL(id), req, &out)
	return out, err
}

// DeleteTweet handles DELETE /api/tweets/{id}
func (c *Client) DeleteTweet(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

// TweetsByAuthor handles GET /api/tweets/author/{author}
func (c *Client) TweetsByAuthor(ctx context.Context, author string) ([]model.Tweet, error) {
	var out []model.Tweet
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/author/"+url.PathEscape(author), nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// SearchTweets handles GET /api/tweets/search?q={text}
func (c *Client) SearchTweets(ctx context.Context, text string) ([]model.Tweet, error) {
	var out []model.Tweet
	q := url.Values{"q": {text}}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// do performs one request. A nil body sends no payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("tweet service request failed", "method", method, "url", target, "error", err)
		return unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		e := statusError(resp.StatusCode)
		c.logger.Error("tweet service returned error status", "method", method, "url", target, "status", resp.StatusCode)
		return e
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("tweet service response not decodable", "method", method, "url", target, "error", err)
		return invalidResponse(resp.StatusCode, err)
	}
	return nil
}

func nonNil(tweets []model.Tweet) []model.Tweet {
	if tweets == nil {
		return []model.Tweet{}
	}
	return tweets
}
