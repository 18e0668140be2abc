package models

import (
	"strconv"
	"time"
)

// StableChangeThreshold is the ±% band of 24h change inside which an asset
// counts as "stable". Both the filter category clause and the live stats
// aggregation must use this same constant.
const StableChangeThreshold = 1.0

// Asset represents one tradable cryptocurrency and its latest market
// snapshot. Numeric fields arrive as decimal strings from the upstream API
// and must be parsed through Numbers() before any arithmetic.
type Asset struct {
	ID                string `json:"id"`
	Rank              string `json:"rank"`
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Supply            string `json:"supply"`
	MaxSupply         string `json:"maxSupply"`
	MarketCapUsd      string `json:"marketCapUsd"`
	VolumeUsd24Hr     string `json:"volumeUsd24Hr"`
	PriceUsd          string `json:"priceUsd"`
	ChangePercent24Hr string `json:"changePercent24Hr"`
	Vwap24Hr          string `json:"vwap24Hr"`
	Explorer          string `json:"explorer"`
}

// AssetNumbers holds the parsed numeric view of an asset. OK is false when
// any of the fields needed by numeric predicates failed to parse; such an
// asset fails every numeric clause but never aborts a computation.
type AssetNumbers struct {
	Rank      int
	Price     float64
	MarketCap float64
	Volume    float64
	Change    float64
	OK        bool
}

// Numbers parses the decimal-string fields once. This is the single
// conversion point for the malformed-input policy.
func (a *Asset) Numbers() AssetNumbers {
	price, err1 := strconv.ParseFloat(a.PriceUsd, 64)
	marketCap, err2 := strconv.ParseFloat(a.MarketCapUsd, 64)
	volume, err3 := strconv.ParseFloat(a.VolumeUsd24Hr, 64)
	change, err4 := strconv.ParseFloat(a.ChangePercent24Hr, 64)
	rank, err5 := strconv.Atoi(a.Rank)

	return AssetNumbers{
		Rank:      rank,
		Price:     price,
		MarketCap: marketCap,
		Volume:    volume,
		Change:    change,
		OK:        err1 == nil && err2 == nil && err3 == nil && err4 == nil && err5 == nil,
	}
}

// IsStable reports whether a 24h change falls in the stable band.
func IsStable(change float64) bool {
	return change >= -StableChangeThreshold && change <= StableChangeThreshold
}

type FilterCategory string

const (
	CategoryAll     FilterCategory = "all"
	CategoryRising  FilterCategory = "rising"
	CategoryFalling FilterCategory = "falling"
	CategoryStable  FilterCategory = "stable"
)

// FilterSpec is the composable filter specification applied to an asset
// collection. An asset passes iff it passes every clause (logical AND).
type FilterSpec struct {
	Search         string         `json:"search"`
	PriceRange     [2]float64     `json:"priceRange"`
	MarketCapRange [2]float64     `json:"marketCapRange"`
	ChangeRange    [2]float64     `json:"changeRange"`
	RankRange      [2]int         `json:"rankRange"`
	OnlyFavorites  bool           `json:"onlyFavorites"`
	Category       FilterCategory `json:"category"`
}

// DefaultFilterSpec returns the spec with all clauses wide open, matching
// the dashboard's default filter state.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Search:         "",
		PriceRange:     [2]float64{0, 100000},
		MarketCapRange: [2]float64{1000000, 2000000000000},
		ChangeRange:    [2]float64{-50, 50},
		RankRange:      [2]int{1, 100},
		OnlyFavorites:  false,
		Category:       CategoryAll,
	}
}

// TopRankings holds the three fixed-size leaderboards derived from an asset
// snapshot.
type TopRankings struct {
	TopPrices  []Asset `json:"topPrices"`
	TopVolumes []Asset `json:"topVolumes"`
	TopChanges []Asset `json:"topChanges"`
}

// LiveStats is the aggregate view of one snapshot comparison. It is derived
// fresh on every cycle, never accumulated.
type LiveStats struct {
	TotalAssets   int      `json:"totalAssets"`
	Rising        int      `json:"rising"`
	Falling       int      `json:"falling"`
	Stable        int      `json:"stable"`
	LastUpdate    int64    `json:"lastUpdate"` // Unix milliseconds
	ChangedAssets []string `json:"changedAssets"`
}

// LiveUpdateConfig controls the polling loop for live market data.
type LiveUpdateConfig struct {
	Enabled           bool          `json:"enabled"`
	Interval          time.Duration `json:"interval"`
	BackgroundUpdates bool          `json:"backgroundUpdates"`
}
