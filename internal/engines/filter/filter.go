package filter

import (
	"strings"

	"cryptodash/internal/models"
)

// Apply evaluates every asset against the filter spec and returns the
// passing subset in the original collection order. All clauses are ANDed.
// Assets whose numeric fields fail to parse fail every numeric range clause
// but never abort the computation.
func Apply(assets []models.Asset, spec models.FilterSpec, favorites map[string]bool) []models.Asset {
	result := make([]models.Asset, 0, len(assets))

	query := strings.ToLower(strings.TrimSpace(spec.Search))

	for _, asset := range assets {
		if query != "" && !matchesSearch(&asset, query) {
			continue
		}

		if spec.OnlyFavorites && !favorites[asset.ID] {
			continue
		}

		nums := asset.Numbers()
		if !passesNumericClauses(nums, spec) {
			continue
		}

		if !passesCategory(nums, spec.Category) {
			continue
		}

		result = append(result, asset)
	}

	return result
}

// matchesSearch is a case-insensitive substring match against name, symbol
// or id; any match passes.
func matchesSearch(asset *models.Asset, query string) bool {
	return strings.Contains(strings.ToLower(asset.Name), query) ||
		strings.Contains(strings.ToLower(asset.Symbol), query) ||
		strings.Contains(strings.ToLower(asset.ID), query)
}

func passesNumericClauses(nums models.AssetNumbers, spec models.FilterSpec) bool {
	// Malformed numeric strings fail the numeric clauses outright.
	if !nums.OK {
		return false
	}

	if nums.Price < spec.PriceRange[0] || nums.Price > spec.PriceRange[1] {
		return false
	}

	if nums.MarketCap < spec.MarketCapRange[0] || nums.MarketCap > spec.MarketCapRange[1] {
		return false
	}

	if nums.Change < spec.ChangeRange[0] || nums.Change > spec.ChangeRange[1] {
		return false
	}

	if nums.Rank < spec.RankRange[0] || nums.Rank > spec.RankRange[1] {
		return false
	}

	return true
}

func passesCategory(nums models.AssetNumbers, category models.FilterCategory) bool {
	switch category {
	case models.CategoryRising:
		return nums.Change > 0
	case models.CategoryFalling:
		return nums.Change < 0
	case models.CategoryStable:
		return models.IsStable(nums.Change)
	default:
		// "all" and unset are no-op clauses
		return true
	}
}
