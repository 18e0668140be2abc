package ranking

import (
	"math"
	"sort"

	"cryptodash/internal/models"
)

// TopListSize is the fixed length of each leaderboard.
const TopListSize = 5

// Generate derives the three leaderboards from an asset snapshot: top
// prices, top 24h volumes and top absolute 24h changes, each descending.
// Sorts are stable so equal keys keep their original relative order. Assets
// with malformed numeric fields sort with key 0.
func Generate(assets []models.Asset) models.TopRankings {
	return models.TopRankings{
		TopPrices: topBy(assets, func(n models.AssetNumbers) float64 {
			return n.Price
		}),
		TopVolumes: topBy(assets, func(n models.AssetNumbers) float64 {
			return n.Volume
		}),
		TopChanges: topBy(assets, func(n models.AssetNumbers) float64 {
			return math.Abs(n.Change)
		}),
	}
}

type keyed struct {
	asset models.Asset
	key   float64
}

func topBy(assets []models.Asset, key func(models.AssetNumbers) float64) []models.Asset {
	// Parse each asset once, then sort a copy so the snapshot stays intact.
	entries := make([]keyed, len(assets))
	for i, asset := range assets {
		entries[i] = keyed{asset: asset}
		if nums := asset.Numbers(); nums.OK {
			entries[i].key = key(nums)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key > entries[j].key
	})

	size := len(entries)
	if size > TopListSize {
		size = TopListSize
	}

	top := make([]models.Asset, size)
	for i := 0; i < size; i++ {
		top[i] = entries[i].asset
	}

	return top
}
