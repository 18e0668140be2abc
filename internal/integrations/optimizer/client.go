package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cryptodash/internal/models"
)

// Error is the typed failure of an optimizer call, carrying the upstream
// {message, code} error body when one was returned.
type Error struct {
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("optimizer error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("optimizer error: %s", e.Message)
}

// HistoryFilters narrows the remote history listing.
type HistoryFilters struct {
	OptimizationType string
	Status           string
	DateFrom         string
	DateTo           string
}

// Client talks to the external portfolio-optimization service. Submissions
// are never retried: a duplicate run is a potentially expensive computation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// OptimizePortfolio submits a simulation request and returns the evaluated
// response. Non-2xx replies map to *Error.
func (c *Client) OptimizePortfolio(ctx context.Context, request models.SimulationRequest) (*models.SimulationResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/simulation/optimize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("network error: %v", err), Code: "NETWORK_ERROR"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var response models.SimulationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response body: %v", err), StatusCode: resp.StatusCode}
	}

	return &response, nil
}

// GetHistory fetches the paged remote simulation history.
func (c *Client) GetHistory(ctx context.Context, page, limit int, filters HistoryFilters) (*models.HistoryPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if filters.OptimizationType != "" {
		query.Set("optimizationType", filters.OptimizationType)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.DateFrom != "" {
		query.Set("dateFrom", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query.Set("dateTo", filters.DateTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/simulation/history?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("network error: %v", err), Code: "NETWORK_ERROR"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var pageData models.HistoryPage
	if err := json.NewDecoder(resp.Body).Decode(&pageData); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed response body: %v", err), StatusCode: resp.StatusCode}
	}

	return &pageData, nil
}

func decodeError(resp *http.Response) *Error {
	var apiErr Error
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
