package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/models"
)

type fakeOptimizer struct {
	mu       sync.Mutex
	response *models.SimulationResponse
	err      error
	requests []models.SimulationRequest
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeOptimizer) OptimizePortfolio(ctx context.Context, request models.SimulationRequest) (*models.SimulationResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}
	return f.response, f.err
}

type fakeSink struct {
	mu      sync.Mutex
	results []error
}

func (f *fakeSink) RecordResult(response *models.SimulationResponse, request models.SimulationRequest, submitErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, submitErr)
}

func coins(n int) []models.Asset {
	out := make([]models.Asset, n)
	for i := range out {
		out[i] = models.Asset{ID: string(rune('a' + i)), Symbol: string(rune('A' + i))}
	}
	return out
}

func TestWizard_InitialState(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)

	state := w.State()

	assert.Equal(t, StepSelectCoins, state.CurrentStep)
	assert.Empty(t, state.SelectedCoins)
	assert.Equal(t, models.DefaultSimulationParams(), state.Params)
	assert.False(t, state.IsSubmitting)
	assert.Nil(t, state.CurrentSimulation)
}

func TestWizard_ForwardGateOnCoinSelection(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)

	t.Run("one coin does not advance", func(t *testing.T) {
		require.NoError(t, w.SetCoins(coins(1)))

		err := w.Next(context.Background())

		assert.Error(t, err)
		assert.Equal(t, StepSelectCoins, w.State().CurrentStep)
	})

	t.Run("two coins advance", func(t *testing.T) {
		require.NoError(t, w.SetCoins(coins(2)))

		err := w.Next(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, StepSetParameters, w.State().CurrentStep)
	})

	t.Run("over the coin cap does not advance", func(t *testing.T) {
		w2 := New(&fakeOptimizer{}, nil)
		require.NoError(t, w2.SetCoins(coins(21)))

		err := w2.Next(context.Background())

		assert.Error(t, err)
		assert.Equal(t, StepSelectCoins, w2.State().CurrentStep)
	})
}

func TestWizard_PreviousUngated(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)
	require.NoError(t, w.SetCoins(coins(2)))
	require.NoError(t, w.Next(context.Background()))
	require.Equal(t, StepSetParameters, w.State().CurrentStep)

	// Wipe the selection so step 0 is no longer valid; stepping back must
	// still work.
	require.NoError(t, w.SetCoins(nil))
	require.NoError(t, w.Previous())
	assert.Equal(t, StepSelectCoins, w.State().CurrentStep)

	// But not below the first step.
	assert.Error(t, w.Previous())
}

func TestWizard_GoToStepRangeCheckedOnly(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)

	// Jumps skip validity gates entirely.
	require.NoError(t, w.GoToStep(StepPreview))
	assert.Equal(t, StepPreview, w.State().CurrentStep)

	require.NoError(t, w.GoToStep(StepSelectCoins))

	assert.Error(t, w.GoToStep(-1))
	assert.Error(t, w.GoToStep(StepResults+1))
}

func TestWizard_UpdateParamsMergesNonZero(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)

	require.NoError(t, w.UpdateParams(models.SimulationParams{
		OptimizationType: models.OptimizationMomentum,
	}))

	params := w.State().Params
	assert.Equal(t, models.OptimizationMomentum, params.OptimizationType)
	// Untouched fields keep their defaults.
	assert.Equal(t, models.TimeframeDaily, params.Timeframe)
	assert.Equal(t, float64(10000), params.InitialInvestment)
}

func TestWizard_BuildRequestSynthesizesTrailingYear(t *testing.T) {
	fixed := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	w := New(&fakeOptimizer{}, nil)
	w.now = func() time.Time { return fixed }

	require.NoError(t, w.SetCoins(coins(2)))

	request := w.BuildRequest()

	assert.Equal(t, "2025-08-15T12:00:00Z", request.DateRange.StartDate)
	assert.Equal(t, "2026-08-15T12:00:00Z", request.DateRange.EndDate)
	require.Len(t, request.Coins, 2)
	assert.Equal(t, "a", request.Coins[0].ID)
	assert.Equal(t, float64(10000), request.InitialInvestment)
}

func TestWizard_SubmitSuccessLandsOnResults(t *testing.T) {
	response := &models.SimulationResponse{
		ID:     "sim-1",
		Status: models.SimulationStatusCompleted,
	}
	sink := &fakeSink{}
	w := New(&fakeOptimizer{response: response}, sink)

	require.NoError(t, w.SetCoins(coins(3)))
	require.NoError(t, w.GoToStep(StepPreview))

	err := w.Next(context.Background())

	require.NoError(t, err)
	state := w.State()
	assert.Equal(t, StepResults, state.CurrentStep)
	require.NotNil(t, state.CurrentSimulation)
	assert.Equal(t, "sim-1", state.CurrentSimulation.ID)
	assert.False(t, state.IsSubmitting)

	require.Len(t, sink.results, 1)
	assert.NoError(t, sink.results[0])
}

func TestWizard_SubmitFailureKeepsStepAndSelections(t *testing.T) {
	sink := &fakeSink{}
	w := New(&fakeOptimizer{err: errors.New("optimizer down")}, sink)

	require.NoError(t, w.SetCoins(coins(3)))
	require.NoError(t, w.GoToStep(StepPreview))

	err := w.Next(context.Background())

	require.Error(t, err)
	state := w.State()
	assert.Equal(t, StepPreview, state.CurrentStep)
	assert.Len(t, state.SelectedCoins, 3)
	assert.Nil(t, state.CurrentSimulation)
	assert.Contains(t, state.LastError, "optimizer down")
	assert.False(t, state.IsSubmitting)

	// Failed submissions still reach the sink for the history log.
	require.Len(t, sink.results, 1)
	assert.Error(t, sink.results[0])
}

func TestWizard_SubmitValidationFailure(t *testing.T) {
	w := New(&fakeOptimizer{}, nil)

	// Preview is reachable by jump with no coins selected; submission must
	// then refuse with accumulated violations.
	require.NoError(t, w.GoToStep(StepPreview))

	err := w.Next(context.Background())

	var validationErr *ValidationFailedError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "At least 2 cryptocurrencies must be selected")
	assert.Equal(t, StepPreview, w.State().CurrentStep)
}

func TestWizard_SubmittingBlocksTransitions(t *testing.T) {
	opt := &fakeOptimizer{
		response: &models.SimulationResponse{ID: "sim-1", Status: models.SimulationStatusCompleted},
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	started := opt.started
	w := New(opt, nil)

	require.NoError(t, w.SetCoins(coins(2)))
	require.NoError(t, w.GoToStep(StepPreview))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = w.Next(context.Background())
	}()

	<-started

	assert.True(t, w.State().IsSubmitting)
	assert.ErrorIs(t, w.Next(context.Background()), ErrSubmitting)
	assert.ErrorIs(t, w.Previous(), ErrSubmitting)
	assert.ErrorIs(t, w.GoToStep(StepSelectCoins), ErrSubmitting)
	assert.ErrorIs(t, w.SetCoins(coins(2)), ErrSubmitting)
	assert.ErrorIs(t, w.UpdateParams(models.SimulationParams{InitialInvestment: 5}), ErrSubmitting)

	close(opt.release)
	wg.Wait()

	assert.Equal(t, StepResults, w.State().CurrentStep)
}

func TestWizard_ResetRestoresInitialState(t *testing.T) {
	w := New(&fakeOptimizer{response: &models.SimulationResponse{ID: "sim-1"}}, nil)

	require.NoError(t, w.SetCoins(coins(2)))
	require.NoError(t, w.UpdateParams(models.SimulationParams{InitialInvestment: 500}))
	require.NoError(t, w.GoToStep(StepPreview))
	require.NoError(t, w.Next(context.Background()))

	w.Reset()

	state := w.State()
	assert.Equal(t, StepSelectCoins, state.CurrentStep)
	assert.Empty(t, state.SelectedCoins)
	assert.Equal(t, models.DefaultSimulationParams(), state.Params)
	assert.Nil(t, state.CurrentSimulation)
	assert.Empty(t, state.LastError)
}
