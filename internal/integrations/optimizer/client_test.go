package optimizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/models"
)

func TestOptimizePortfolio_Success(t *testing.T) {
	var gotRequest models.SimulationRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/simulation/optimize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(models.SimulationResponse{
			ID:     "sim-42",
			Status: models.SimulationStatusCompleted,
			Portfolio: models.Portfolio{
				Performance: models.Performance{TotalReturn: 12.5},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	request := models.SimulationRequest{
		Coins:             []models.CoinRef{{ID: "bitcoin", Symbol: "BTC"}, {ID: "ethereum", Symbol: "ETH"}},
		Timeframe:         models.TimeframeDaily,
		OptimizationType:  models.OptimizationSharpe,
		InitialInvestment: 10000,
	}

	response, err := client.OptimizePortfolio(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, "sim-42", response.ID)
	assert.Equal(t, models.SimulationStatusCompleted, response.Status)
	assert.Equal(t, 12.5, response.Portfolio.Performance.TotalReturn)
	assert.Len(t, gotRequest.Coins, 2)
}

func TestOptimizePortfolio_ErrorBodyMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "not enough price history",
			"code":    "INSUFFICIENT_DATA",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.OptimizePortfolio(context.Background(), models.SimulationRequest{})

	var optErr *Error
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "not enough price history", optErr.Message)
	assert.Equal(t, "INSUFFICIENT_DATA", optErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, optErr.StatusCode)
}

func TestOptimizePortfolio_UnparsableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.OptimizePortfolio(context.Background(), models.SimulationRequest{})

	var optErr *Error
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, http.StatusInternalServerError, optErr.StatusCode)
	assert.Contains(t, optErr.Message, "HTTP 500")
}

func TestOptimizePortfolio_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, time.Second)

	_, err := client.OptimizePortfolio(context.Background(), models.SimulationRequest{})

	var optErr *Error
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "NETWORK_ERROR", optErr.Code)
}

func TestOptimizePortfolio_NotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.OptimizePortfolio(context.Background(), models.SimulationRequest{})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetHistory_QueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/simulation/history", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "sharpe", r.URL.Query().Get("optimizationType"))
		assert.Equal(t, "completed", r.URL.Query().Get("status"))

		json.NewEncoder(w).Encode(models.HistoryPage{
			Items: []models.HistoryItem{{ID: "h1"}},
			Total: 1, Page: 3, Limit: 25, TotalPages: 1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	page, err := client.GetHistory(context.Background(), 3, 25, HistoryFilters{
		OptimizationType: "sharpe",
		Status:           "completed",
	})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "h1", page.Items[0].ID)
	assert.Equal(t, 3, page.Page)
}

func TestGetHistory_DefaultsPaging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(models.HistoryPage{})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.GetHistory(context.Background(), 0, -5, HistoryFilters{})

	require.NoError(t, err)
}
