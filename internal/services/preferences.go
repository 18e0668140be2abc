package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"cryptodash/internal/dao/preferences"
	"cryptodash/internal/models"
)

const (
	keyFavorites     = "favorites"
	keySearchHistory = "search_history"
	keyLiveConfig    = "live_config"
	keySelectedCoins = "selected_coins"
	keySimParams     = "simulation_params"

	searchHistoryLimit = 10
)

// PreferencesService manages the durable user state: favorites, search
// history and live-update config under the ui namespace, selected coins
// and simulation params under the simulation namespace. The current search
// text is deliberately never persisted.
type PreferencesService struct {
	dao preferences.PreferencesDAOInterface
}

// PreferencesServiceInterface defines the contract for preference access.
type PreferencesServiceInterface interface {
	Favorites() ([]string, error)
	FavoriteSet() (map[string]bool, error)
	AddFavorite(id string) error
	RemoveFavorite(id string) error
	ToggleFavorite(id string) (bool, error)

	SearchHistory() ([]string, error)
	AddSearchTerm(query string) error
	ClearSearchHistory() error

	LiveConfig() (models.LiveUpdateConfig, error)
	UpdateLiveConfig(config models.LiveUpdateConfig) error

	SelectedCoins() ([]models.Asset, error)
	SaveSelectedCoins(coins []models.Asset) error
	SimulationParams() (models.SimulationParams, error)
	SaveSimulationParams(params models.SimulationParams) error
}

// NewPreferencesService creates a new preferences service.
func NewPreferencesService(dao preferences.PreferencesDAOInterface) PreferencesServiceInterface {
	return &PreferencesService{
		dao: dao,
	}
}

// Favorites returns the favorite asset ids in insertion order.
func (s *PreferencesService) Favorites() ([]string, error) {
	var favorites []string
	if err := s.load(models.PreferenceNamespaceUI, keyFavorites, &favorites); err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []string{}
	}
	return favorites, nil
}

// FavoriteSet returns the favorites as a membership set for the filter
// engine's onlyFavorites clause.
func (s *PreferencesService) FavoriteSet() (map[string]bool, error) {
	favorites, err := s.Favorites()
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		set[id] = true
	}
	return set, nil
}

// AddFavorite appends an id unless already present.
func (s *PreferencesService) AddFavorite(id string) error {
	favorites, err := s.Favorites()
	if err != nil {
		return err
	}

	for _, existing := range favorites {
		if existing == id {
			return nil
		}
	}

	return s.store(models.PreferenceNamespaceUI, keyFavorites, append(favorites, id))
}

// RemoveFavorite drops an id. Missing ids are not an error.
func (s *PreferencesService) RemoveFavorite(id string) error {
	favorites, err := s.Favorites()
	if err != nil {
		return err
	}

	filtered := make([]string, 0, len(favorites))
	for _, existing := range favorites {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}

	return s.store(models.PreferenceNamespaceUI, keyFavorites, filtered)
}

// ToggleFavorite flips membership and reports the new state.
func (s *PreferencesService) ToggleFavorite(id string) (bool, error) {
	set, err := s.FavoriteSet()
	if err != nil {
		return false, err
	}

	if set[id] {
		return false, s.RemoveFavorite(id)
	}
	return true, s.AddFavorite(id)
}

// SearchHistory returns past search terms, most recent first.
func (s *PreferencesService) SearchHistory() ([]string, error) {
	var history []string
	if err := s.load(models.PreferenceNamespaceUI, keySearchHistory, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []string{}
	}
	return history, nil
}

// AddSearchTerm records a term: trimmed, lowercased, deduplicated, capped
// at the ten most recent entries. Empty terms are ignored.
func (s *PreferencesService) AddSearchTerm(query string) error {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}

	history, err := s.SearchHistory()
	if err != nil {
		return err
	}

	for _, existing := range history {
		if existing == term {
			return nil
		}
	}

	history = append([]string{term}, history...)
	if len(history) > searchHistoryLimit {
		history = history[:searchHistoryLimit]
	}

	return s.store(models.PreferenceNamespaceUI, keySearchHistory, history)
}

// ClearSearchHistory empties the search history.
func (s *PreferencesService) ClearSearchHistory() error {
	return s.store(models.PreferenceNamespaceUI, keySearchHistory, []string{})
}

// LiveConfig returns the persisted live-update configuration, defaulting
// to enabled at a 30 second interval with background updates on.
func (s *PreferencesService) LiveConfig() (models.LiveUpdateConfig, error) {
	config := models.LiveUpdateConfig{
		Enabled:           true,
		Interval:          30 * time.Second,
		BackgroundUpdates: true,
	}

	var stored struct {
		Enabled           bool  `json:"enabled"`
		IntervalMs        int64 `json:"intervalMs"`
		BackgroundUpdates bool  `json:"backgroundUpdates"`
	}

	raw, found, err := s.dao.Get(models.PreferenceNamespaceUI, keyLiveConfig)
	if err != nil {
		return config, err
	}
	if !found {
		return config, nil
	}

	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Printf("Warning: stored live config corrupt, using defaults: %v", err)
		return config, nil
	}

	config.Enabled = stored.Enabled
	config.BackgroundUpdates = stored.BackgroundUpdates
	if stored.IntervalMs > 0 {
		config.Interval = time.Duration(stored.IntervalMs) * time.Millisecond
	}
	return config, nil
}

// UpdateLiveConfig persists the live-update configuration.
func (s *PreferencesService) UpdateLiveConfig(config models.LiveUpdateConfig) error {
	stored := struct {
		Enabled           bool  `json:"enabled"`
		IntervalMs        int64 `json:"intervalMs"`
		BackgroundUpdates bool  `json:"backgroundUpdates"`
	}{
		Enabled:           config.Enabled,
		IntervalMs:        config.Interval.Milliseconds(),
		BackgroundUpdates: config.BackgroundUpdates,
	}

	return s.store(models.PreferenceNamespaceUI, keyLiveConfig, stored)
}

// SelectedCoins returns the persisted wizard coin selection.
func (s *PreferencesService) SelectedCoins() ([]models.Asset, error) {
	var coins []models.Asset
	if err := s.load(models.PreferenceNamespaceSimulation, keySelectedCoins, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// SaveSelectedCoins persists the wizard coin selection.
func (s *PreferencesService) SaveSelectedCoins(coins []models.Asset) error {
	return s.store(models.PreferenceNamespaceSimulation, keySelectedCoins, coins)
}

// SimulationParams returns the persisted wizard parameters, falling back
// to the defaults when nothing is stored.
func (s *PreferencesService) SimulationParams() (models.SimulationParams, error) {
	params := models.DefaultSimulationParams()
	raw, found, err := s.dao.Get(models.PreferenceNamespaceSimulation, keySimParams)
	if err != nil {
		return params, err
	}
	if !found {
		return params, nil
	}

	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		log.Printf("Warning: stored simulation params corrupt, using defaults: %v", err)
		return models.DefaultSimulationParams(), nil
	}
	return params, nil
}

// SaveSimulationParams persists the wizard parameters.
func (s *PreferencesService) SaveSimulationParams(params models.SimulationParams) error {
	return s.store(models.PreferenceNamespaceSimulation, keySimParams, params)
}

func (s *PreferencesService) load(namespace, key string, out interface{}) error {
	raw, found, err := s.dao.Get(namespace, key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("corrupt preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *PreferencesService) store(namespace, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s/%s: %w", namespace, key, err)
	}
	return s.dao.Set(namespace, key, string(raw))
}
