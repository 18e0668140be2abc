package coincap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"cryptodash/internal/models"
)

const defaultLimit = 100

// Client talks to the CoinCap-style asset API. List and single fetches are
// retried with exponential backoff since asset reads are cheap and
// idempotent.
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	retryAttempts int

	lastRequest  time.Time
	requestMutex sync.Mutex
}

// ListResponse is the envelope of the /assets endpoint.
type ListResponse struct {
	Data      []models.Asset `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// SingleResponse is the envelope of the /assets/{id} endpoint.
type SingleResponse struct {
	Data      models.Asset `json:"data"`
	Timestamp int64        `json:"timestamp"`
}

// HistoryPoint is one point-in-time price of an asset.
type HistoryPoint struct {
	PriceUsd string `json:"priceUsd"`
	Time     int64  `json:"time"`
}

type historyResponse struct {
	Data []HistoryPoint `json:"data"`
}

// ListParams are the query parameters of the asset list fetch.
type ListParams struct {
	Search string
	IDs    string
	Limit  int
	Offset int
}

func NewClient(baseURL, apiKey string, timeout time.Duration, retryAttempts int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retryAttempts <= 0 {
		retryAttempts = 3
	}

	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: timeout},
		retryAttempts: retryAttempts,
		lastRequest:   time.Now(),
	}
}

// GetAssets fetches the asset list. The returned slice is a fresh snapshot
// on every call, never a mutation of a prior one.
func (c *Client) GetAssets(ctx context.Context, params ListParams) ([]models.Asset, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.IDs != "" {
		query.Set("ids", params.IDs)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(params.Offset))

	var response ListResponse
	if err := c.getJSON(ctx, "/assets?"+query.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}

	return response.Data, nil
}

// GetAssetByID fetches a single asset.
func (c *Client) GetAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var response SingleResponse
	if err := c.getJSON(ctx, "/assets/"+url.PathEscape(id), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", id, err)
	}

	return &response.Data, nil
}

// GetAssetHistory fetches point-in-time prices for an asset. Interval uses
// the upstream notation (m1, m5, h1, d1, ...).
func (c *Client) GetAssetHistory(ctx context.Context, id, interval string, start, end *int64) ([]HistoryPoint, error) {
	query := url.Values{}
	if interval == "" {
		interval = "h1"
	}
	query.Set("interval", interval)
	if start != nil {
		query.Set("start", strconv.FormatInt(*start, 10))
	}
	if end != nil {
		query.Set("end", strconv.FormatInt(*end, 10))
	}

	var response historyResponse
	path := "/assets/" + url.PathEscape(id) + "/history?" + query.Encode()
	if err := c.getJSON(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", id, err)
	}

	return response.Data, nil
}

// getJSON performs one GET with rate limiting and bounded retry. Backoff
// doubles per attempt starting at one second, capped at 30 seconds.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			log.Printf("Retrying CoinCap request %s (attempt %d)", path, attempt+1)
		}

		if err := c.doRequest(ctx, path, out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return lastErr
}

func (c *Client) doRequest(ctx context.Context, path string, out interface{}) error {
	c.waitForRateLimit()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}

	return nil
}

// waitForRateLimit spaces requests at least 100ms apart.
func (c *Client) waitForRateLimit() {
	c.requestMutex.Lock()
	defer c.requestMutex.Unlock()

	minInterval := 100 * time.Millisecond
	elapsed := time.Since(c.lastRequest)

	if elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}

	c.lastRequest = time.Now()
}
