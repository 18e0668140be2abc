package liveupdate

import (
	"sort"
	"sync"
	"time"

	"cryptodash/internal/models"
)

// Tracker maintains the rolling "asset id -> last changed" map and derives
// aggregate rising/falling/stable counts for every new snapshot. It shares
// the stable-band definition with the filter engine through
// models.StableChangeThreshold.
type Tracker struct {
	mu sync.RWMutex

	previous map[string]models.Asset // last snapshot, keyed by asset id
	changed  map[string]time.Time    // ids marked changed, pruned by window
	window   time.Duration
	stats    models.LiveStats
}

// NewTracker creates a tracker whose changed-marker window defaults to the
// polling interval when zero is supplied.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = 30 * time.Second
	}
	return &Tracker{
		previous: make(map[string]models.Asset),
		changed:  make(map[string]time.Time),
		window:   window,
	}
}

// ApplySnapshot compares the new snapshot against the previous one, marks
// every asset whose price or 24h change moved, prunes stale markers and
// recomputes aggregate counts from scratch. It returns the fresh stats.
func (t *Tracker) ApplySnapshot(assets []models.Asset, now time.Time) models.LiveStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Prune markers older than the window before recording new ones.
	for id, markedAt := range t.changed {
		if now.Sub(markedAt) > t.window {
			delete(t.changed, id)
		}
	}

	next := make(map[string]models.Asset, len(assets))
	stats := models.LiveStats{
		TotalAssets: len(assets),
		LastUpdate:  now.UnixMilli(),
	}

	for _, asset := range assets {
		next[asset.ID] = asset

		if prev, seen := t.previous[asset.ID]; seen {
			if prev.PriceUsd != asset.PriceUsd || prev.ChangePercent24Hr != asset.ChangePercent24Hr {
				t.changed[asset.ID] = now
			}
		}

		nums := asset.Numbers()
		if !nums.OK {
			continue
		}
		switch {
		case models.IsStable(nums.Change):
			stats.Stable++
		case nums.Change > 0:
			stats.Rising++
		case nums.Change < 0:
			stats.Falling++
		}
	}

	stats.ChangedAssets = t.changedIDsLocked()
	t.previous = next
	t.stats = stats

	return stats
}

// Stats returns the aggregates from the most recent snapshot.
func (t *Tracker) Stats() models.LiveStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := t.stats
	stats.ChangedAssets = t.changedIDsLocked()
	return stats
}

// ChangedAssets returns the ids currently marked as changed.
func (t *Tracker) ChangedAssets() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changedIDsLocked()
}

// Clear empties the changed-marker map without touching aggregate counts.
// Used once the consumer has acknowledged all change highlights.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.changed = make(map[string]time.Time)
}

func (t *Tracker) changedIDsLocked() []string {
	ids := make([]string, 0, len(t.changed))
	for id := range t.changed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
