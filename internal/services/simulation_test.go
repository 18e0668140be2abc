package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/integrations/optimizer"
	"cryptodash/internal/models"
)

// memHistoryDAO is an in-memory stand-in for the gorm-backed history DAO.
type memHistoryDAO struct {
	items []models.HistoryItem
}

func (d *memHistoryDAO) Append(item *models.HistoryItem) error {
	d.items = append(d.items, *item)
	return nil
}

func (d *memHistoryDAO) List() ([]models.HistoryItem, error) {
	out := make([]models.HistoryItem, len(d.items))
	copy(out, d.items)
	return out, nil
}

func (d *memHistoryDAO) GetByID(id string) (*models.HistoryItem, error) {
	for i := range d.items {
		if d.items[i].ID == id {
			item := d.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("failed to get history item: %s", id)
}

func (d *memHistoryDAO) Clear() error {
	d.items = nil
	return nil
}

func (d *memHistoryDAO) Count() (int64, error) {
	return int64(len(d.items)), nil
}

func newSimulationFixture(t *testing.T, handler http.HandlerFunc) (SimulationServiceInterface, *memHistoryDAO, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dao := &memHistoryDAO{}
	prefs := NewPreferencesService(newMemPrefsDAO())
	svc := NewSimulationService(optimizer.NewClient(server.URL, 5*time.Second), dao, prefs)
	return svc, dao, server
}

func validSimulationRequest() models.SimulationRequest {
	end := time.Now().Add(-24 * time.Hour).UTC()
	return models.SimulationRequest{
		Coins: []models.CoinRef{
			{ID: "bitcoin", Symbol: "BTC"},
			{ID: "ethereum", Symbol: "ETH"},
		},
		DateRange: models.DateRange{
			StartDate: end.AddDate(0, -6, 0).Format(time.RFC3339),
			EndDate:   end.Format(time.RFC3339),
		},
		Timeframe:         models.TimeframeDaily,
		OptimizationType:  models.OptimizationSharpe,
		InitialInvestment: 10000,
	}
}

func TestRecordResult_SuccessfulSubmission(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	request := validSimulationRequest()
	response := &models.SimulationResponse{
		ID:        "sim-1",
		Timestamp: "2026-08-01T00:00:00Z",
		Status:    models.SimulationStatusCompleted,
		Portfolio: models.Portfolio{
			Performance: models.Performance{TotalReturn: 18.2},
		},
	}

	svc.RecordResult(response, request, nil)

	require.Len(t, dao.items, 1)
	item := dao.items[0]
	assert.Equal(t, "sim-1", item.ID)
	assert.Equal(t, "BTC, ETH", item.Name)
	assert.Equal(t, "2026-08-01T00:00:00Z", item.Timestamp)
	assert.Equal(t, models.OptimizationSharpe, item.OptimizationType)
	assert.Equal(t, float64(10000), item.InitialInvestment)
	assert.Equal(t, 18.2, item.TotalReturn)
	assert.Equal(t, models.SimulationStatusCompleted, item.Status)

	// The full request survives for re-runs.
	var saved models.SimulationRequest
	require.NoError(t, json.Unmarshal([]byte(item.RequestJSON), &saved))
	assert.Equal(t, request, saved)
}

func TestRecordResult_FailedSubmissionStillRecorded(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	request := validSimulationRequest()

	svc.RecordResult(nil, request, errors.New("optimizer down"))

	require.Len(t, dao.items, 1)
	item := dao.items[0]
	assert.NotEmpty(t, item.ID) // locally generated
	assert.NotEmpty(t, item.Timestamp)
	assert.Equal(t, models.SimulationStatusFailed, item.Status)
	assert.Equal(t, "BTC, ETH", item.Name)
	assert.Zero(t, item.TotalReturn)
}

func TestRecordResult_MissingResponseIDGetsLocalOne(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	svc.RecordResult(&models.SimulationResponse{
		Status: models.SimulationStatusCompleted,
	}, validSimulationRequest(), nil)

	require.Len(t, dao.items, 1)
	assert.NotEmpty(t, dao.items[0].ID)
	assert.NotEmpty(t, dao.items[0].Timestamp)
}

func TestRerun_ValidationErrorsReturnedAsData(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("optimizer must not be called for an invalid saved request")
	})

	bad := validSimulationRequest()
	bad.Coins = bad.Coins[:1]
	raw, err := json.Marshal(bad)
	require.NoError(t, err)
	dao.items = append(dao.items, models.HistoryItem{ID: "h1", RequestJSON: string(raw)})

	response, validationErrors, err := svc.Rerun(context.Background(), "h1")

	require.NoError(t, err)
	assert.Nil(t, response)
	assert.Contains(t, validationErrors, "At least 2 cryptocurrencies must be selected")
}

func TestRerun_ResubmitsAndRecords(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.SimulationResponse{
			ID:     "sim-2",
			Status: models.SimulationStatusCompleted,
		})
	})

	raw, err := json.Marshal(validSimulationRequest())
	require.NoError(t, err)
	dao.items = append(dao.items, models.HistoryItem{ID: "h1", RequestJSON: string(raw)})

	response, validationErrors, err := svc.Rerun(context.Background(), "h1")

	require.NoError(t, err)
	assert.Empty(t, validationErrors)
	require.NotNil(t, response)
	assert.Equal(t, "sim-2", response.ID)

	// The re-run outcome lands in history alongside the original.
	require.Len(t, dao.items, 2)
	assert.Equal(t, "sim-2", dao.items[1].ID)
}

func TestRerun_UnknownHistoryID(t *testing.T) {
	svc, _, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	_, _, err := svc.Rerun(context.Background(), "missing")

	assert.Error(t, err)
}

func TestRerun_OptimizerFailureRecordedAndReturned(t *testing.T) {
	svc, dao, _ := newSimulationFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "overloaded", "code": "BUSY"})
	})

	raw, err := json.Marshal(validSimulationRequest())
	require.NoError(t, err)
	dao.items = append(dao.items, models.HistoryItem{ID: "h1", RequestJSON: string(raw)})

	_, _, err = svc.Rerun(context.Background(), "h1")

	var optErr *optimizer.Error
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "BUSY", optErr.Code)

	require.Len(t, dao.items, 2)
	assert.Equal(t, models.SimulationStatusFailed, dao.items[1].Status)
}

func TestWizardStatePersistedAndRestored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(server.Close)

	prefsDAO := newMemPrefsDAO()
	client := optimizer.NewClient(server.URL, 5*time.Second)

	first := NewSimulationService(client, &memHistoryDAO{}, NewPreferencesService(prefsDAO))
	require.NoError(t, first.SetCoins([]models.Asset{
		{ID: "bitcoin", Symbol: "BTC"},
		{ID: "ethereum", Symbol: "ETH"},
	}))
	require.NoError(t, first.UpdateParams(models.SimulationParams{
		OptimizationType:  models.OptimizationRiskParity,
		InitialInvestment: 7500,
	}))

	// A fresh service over the same store picks the state back up.
	second := NewSimulationService(client, &memHistoryDAO{}, NewPreferencesService(prefsDAO))
	require.NoError(t, second.RestoreWizardState())

	state := second.Wizard().State()
	require.Len(t, state.SelectedCoins, 2)
	assert.Equal(t, "bitcoin", state.SelectedCoins[0].ID)
	assert.Equal(t, models.OptimizationRiskParity, state.Params.OptimizationType)
	assert.Equal(t, float64(7500), state.Params.InitialInvestment)
	// Fields never set keep their defaults.
	assert.Equal(t, models.TimeframeDaily, state.Params.Timeframe)
}
