package liveupdate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/models"
)

func TestPoller_TickRunsFetchTrackUpdate(t *testing.T) {
	tracker := NewTracker(time.Minute)

	var gotStats models.LiveStats
	poller := NewPoller(tracker, time.Minute,
		func(ctx context.Context) ([]models.Asset, error) {
			return []models.Asset{makeAsset("bitcoin", "60000", "2.0")}, nil
		},
		func(assets []models.Asset, stats models.LiveStats) {
			gotStats = stats
		},
	)

	ok := poller.Tick(context.Background())

	require.True(t, ok)
	assert.Equal(t, 1, gotStats.TotalAssets)
	assert.Equal(t, 1, tracker.Stats().Rising)
}

func TestPoller_TickSkippedWhileInFlight(t *testing.T) {
	tracker := NewTracker(time.Minute)

	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once
	poller := NewPoller(tracker, time.Minute,
		func(ctx context.Context) ([]models.Asset, error) {
			once.Do(func() { close(fetchStarted) })
			<-release
			return nil, nil
		},
		nil,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Tick(context.Background())
	}()

	<-fetchStarted

	// A tick firing while the first fetch is still in flight must be
	// refused, not queued.
	assert.False(t, poller.Tick(context.Background()))

	close(release)
	wg.Wait()

	assert.True(t, poller.Tick(context.Background()))
}

func TestPoller_FetchErrorDoesNotDisturbTracker(t *testing.T) {
	tracker := NewTracker(time.Minute)
	tracker.ApplySnapshot([]models.Asset{makeAsset("bitcoin", "60000", "2.0")}, time.Now())

	poller := NewPoller(tracker, time.Minute,
		func(ctx context.Context) ([]models.Asset, error) {
			return nil, context.DeadlineExceeded
		},
		func(assets []models.Asset, stats models.LiveStats) {
			t.Fatal("onUpdate must not run for a failed fetch")
		},
	)

	ok := poller.Tick(context.Background())

	// The tick completed (it was not skipped) and the last good stats stand.
	assert.True(t, ok)
	assert.Equal(t, 1, tracker.Stats().TotalAssets)
}

func TestPoller_StartStop(t *testing.T) {
	tracker := NewTracker(time.Minute)

	var mu sync.Mutex
	calls := 0

	poller := NewPoller(tracker, time.Hour,
		func(ctx context.Context) ([]models.Asset, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil, nil
		},
		nil,
	)

	poller.Start()
	assert.True(t, poller.IsRunning())

	// Start is a no-op while running.
	poller.Start()

	poller.Stop()
	assert.False(t, poller.IsRunning())

	// The priming tick ran exactly once despite the double Start.
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
