package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cryptodash/internal/cache/redis"
	"cryptodash/internal/engines/filter"
	"cryptodash/internal/engines/liveupdate"
	"cryptodash/internal/engines/ranking"
	"cryptodash/internal/integrations/binance"
	"cryptodash/internal/integrations/coincap"
	"cryptodash/internal/models"
)

// MarketService orchestrates the read path: asset snapshots from the
// upstream repository (through the staleness cache), the filter engine,
// the ranking generator and the live-update tracker.
type MarketService struct {
	coincapClient *coincap.Client
	binanceClient *binance.Service
	cache         *redis.SnapshotCache
	tracker       *liveupdate.Tracker

	mu           sync.RWMutex
	lastRankings *models.TopRankings
}

// MarketServiceInterface defines the contract for market data access.
type MarketServiceInterface interface {
	Snapshot(ctx context.Context) ([]models.Asset, error)
	FetchFresh(ctx context.Context) ([]models.Asset, error)
	Refresh(ctx context.Context) ([]models.Asset, error)
	FilteredAssets(ctx context.Context, spec models.FilterSpec, favorites map[string]bool) ([]models.Asset, error)
	Rankings(ctx context.Context) (models.TopRankings, error)
	LiveStats() models.LiveStats
	AckChanges()
	GetAssetByID(ctx context.Context, id string) (*models.Asset, error)
	GetAssetHistory(ctx context.Context, id, interval string, start, end *int64) ([]coincap.HistoryPoint, error)
	GetCandles(ctx context.Context, symbol, interval string, limit int, start, end *int64) ([]models.Candle, error)
	ValidateCandleInterval(interval string) bool
	OnSnapshot(assets []models.Asset, stats models.LiveStats)
}

// NewMarketService creates a new market data service.
func NewMarketService(coincapClient *coincap.Client, binanceClient *binance.Service, cache *redis.SnapshotCache, tracker *liveupdate.Tracker) MarketServiceInterface {
	return &MarketService{
		coincapClient: coincapClient,
		binanceClient: binanceClient,
		cache:         cache,
		tracker:       tracker,
	}
}

// Snapshot returns the current asset collection, served from the staleness
// cache when fresh enough.
func (s *MarketService) Snapshot(ctx context.Context) ([]models.Asset, error) {
	if assets, ok := s.cache.Get(ctx); ok {
		return assets, nil
	}
	return s.FetchFresh(ctx)
}

// FetchFresh always pulls a new snapshot from upstream and refreshes the
// cache. The live-update poller uses this as its fetch function.
func (s *MarketService) FetchFresh(ctx context.Context) ([]models.Asset, error) {
	assets, err := s.coincapClient.GetAssets(ctx, coincap.ListParams{Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("asset snapshot fetch failed: %w", err)
	}

	s.cache.Set(ctx, assets)
	return assets, nil
}

// Refresh drops the cached snapshot and fetches a fresh one, for the
// manual refresh action.
func (s *MarketService) Refresh(ctx context.Context) ([]models.Asset, error) {
	s.cache.Invalidate(ctx)
	return s.FetchFresh(ctx)
}

// FilteredAssets applies the filter spec to the current snapshot.
func (s *MarketService) FilteredAssets(ctx context.Context, spec models.FilterSpec, favorites map[string]bool) ([]models.Asset, error) {
	assets, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(assets, spec, favorites), nil
}

// Rankings returns the three leaderboards for the current snapshot. The
// last poller-computed rankings are served when available; otherwise they
// are derived on demand.
func (s *MarketService) Rankings(ctx context.Context) (models.TopRankings, error) {
	s.mu.RLock()
	cached := s.lastRankings
	s.mu.RUnlock()

	if cached != nil {
		return *cached, nil
	}

	assets, err := s.Snapshot(ctx)
	if err != nil {
		return models.TopRankings{}, err
	}
	return ranking.Generate(assets), nil
}

// LiveStats returns the aggregates of the most recent tracker pass.
func (s *MarketService) LiveStats() models.LiveStats {
	return s.tracker.Stats()
}

// AckChanges clears the change highlights once the consumer has seen them.
func (s *MarketService) AckChanges() {
	s.tracker.Clear()
}

// GetAssetByID fetches a single asset from upstream.
func (s *MarketService) GetAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	return s.coincapClient.GetAssetByID(ctx, id)
}

// GetAssetHistory fetches point-in-time prices for the detail view.
func (s *MarketService) GetAssetHistory(ctx context.Context, id, interval string, start, end *int64) ([]coincap.HistoryPoint, error) {
	return s.coincapClient.GetAssetHistory(ctx, id, interval, start, end)
}

// GetCandles fetches exchange klines backing the detail chart. A bare
// asset symbol (BTC) is mapped to its USDT trading pair; full pair names
// pass through unchanged.
func (s *MarketService) GetCandles(ctx context.Context, symbol, interval string, limit int, start, end *int64) ([]models.Candle, error) {
	pair := strings.ToUpper(symbol)
	if !strings.HasSuffix(pair, "USDT") {
		pair = binance.SymbolFor(symbol)
	}
	return s.binanceClient.GetCandles(ctx, pair, interval, limit, start, end)
}

// ValidateCandleInterval checks the chart interval notation.
func (s *MarketService) ValidateCandleInterval(interval string) bool {
	return s.binanceClient.ValidateInterval(interval)
}

// OnSnapshot is the poller callback: it replaces the derived rankings in
// one step, so consumers never observe a partially updated leaderboard.
func (s *MarketService) OnSnapshot(assets []models.Asset, stats models.LiveStats) {
	rankings := ranking.Generate(assets)

	s.mu.Lock()
	s.lastRankings = &rankings
	s.mu.Unlock()
}
