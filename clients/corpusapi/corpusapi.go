// Package corpusapi is a minimal client for the labeled-corpus HTTP API.
//
// The API exposes one paginated endpoint, GET /v1/corpus, returning a page
// of {text, sentiment} records and an opaque next_cursor. An empty or absent
// next_cursor marks the terminal page.
package corpusapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/FrenchMajesty/sentiment-pipeline/corpus"
	"github.com/FrenchMajesty/sentiment-pipeline/internal/retry"
)

const defaultPageSize = 100

// Client fetches labeled corpus pages over HTTP. It implements
// corpus.SourceClient.
type Client struct {
	APIKey      string
	BaseURL     string
	PageSize    int
	HTTPClient  *http.Client
	RetryConfig retry.Config
}

// NewClient creates a corpus API client for the given base URL.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		PageSize: defaultPageSize,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		RetryConfig: retry.DefaultConfig(),
	}
}

// isRetryable retries network errors, server errors, and rate limiting.
func (c *Client) isRetryable(statusCode int, body []byte, err error) bool {
	if err != nil {
		return true
	}
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}

// FetchPage retrieves one page of records. Pass an empty cursor for the
// first page; the returned cursor is empty on the terminal page.
func (c *Client) FetchPage(ctx context.Context, cursor string) ([]corpus.Record, string, error) {
	endpoint, err := c.pageURL(cursor)
	if err != nil {
		return nil, "", err
	}

	opts := retry.Options{
		Config:    c.RetryConfig,
		Retryable: c.isRetryable,
		APIName:   "corpus",
	}

	status, body, err := retry.Do(ctx, opts, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		return resp.StatusCode, data, nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("corpus API request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, "", fmt.Errorf("corpus API returned status %d: %s", status, truncate(body, 200))
	}

	return parsePage(body)
}

func (c *Client) pageURL(cursor string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid corpus API base URL %q: %w", c.BaseURL, err)
	}
	u = u.JoinPath("v1", "corpus")

	q := u.Query()
	q.Set("limit", fmt.Sprintf("%d", c.pageSize()))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return defaultPageSize
}

func parsePage(body []byte) ([]corpus.Record, string, error) {
	if !gjson.ValidBytes(body) {
		return nil, "", fmt.Errorf("corpus API returned invalid JSON: %s", truncate(body, 200))
	}

	root := gjson.ParseBytes(body)
	data := root.Get("data")
	if !data.IsArray() {
		return nil, "", fmt.Errorf("corpus API response missing data array")
	}

	var records []corpus.Record
	data.ForEach(func(_, item gjson.Result) bool {
		records = append(records, corpus.Record{
			Text:      item.Get("text").String(),
			Sentiment: item.Get("sentiment").String(),
		})
		return true
	})

	return records, root.Get("next_cursor").String(), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
