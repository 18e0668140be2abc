package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"cryptodash/internal/dao/history"
	"cryptodash/internal/engines/wizard"
	"cryptodash/internal/integrations/optimizer"
	"cryptodash/internal/models"
)

// SimulationService owns the wizard, the optimizer boundary and the
// persisted history write path. It implements wizard.ResultSink so every
// submission outcome lands in the history log.
type SimulationService struct {
	wiz             *wizard.Wizard
	optimizerClient *optimizer.Client
	historyDAO      history.HistoryDAOInterface
	prefs           PreferencesServiceInterface
}

// SimulationServiceInterface defines the contract for simulation flows.
type SimulationServiceInterface interface {
	Wizard() *wizard.Wizard
	RecordResult(response *models.SimulationResponse, request models.SimulationRequest, submitErr error)
	History() ([]models.HistoryItem, error)
	ClearHistory() error
	RemoteHistory(ctx context.Context, page, limit int, filters optimizer.HistoryFilters) (*models.HistoryPage, error)
	Rerun(ctx context.Context, historyID string) (*models.SimulationResponse, []string, error)
	SetCoins(coins []models.Asset) error
	UpdateParams(params models.SimulationParams) error
	RestoreWizardState() error
}

// NewSimulationService creates the simulation service and wires itself as
// the wizard's result sink.
func NewSimulationService(optimizerClient *optimizer.Client, historyDAO history.HistoryDAOInterface, prefs PreferencesServiceInterface) SimulationServiceInterface {
	s := &SimulationService{
		optimizerClient: optimizerClient,
		historyDAO:      historyDAO,
		prefs:           prefs,
	}
	s.wiz = wizard.New(optimizerClient, s)
	return s
}

// Wizard exposes the state machine to the handlers.
func (s *SimulationService) Wizard() *wizard.Wizard {
	return s.wiz
}

// SetCoins updates the wizard selection and persists it.
func (s *SimulationService) SetCoins(coins []models.Asset) error {
	if err := s.wiz.SetCoins(coins); err != nil {
		return err
	}
	if err := s.prefs.SaveSelectedCoins(coins); err != nil {
		log.Printf("Warning: failed to persist selected coins: %v", err)
	}
	return nil
}

// UpdateParams updates the wizard parameters and persists the merged set.
func (s *SimulationService) UpdateParams(params models.SimulationParams) error {
	if err := s.wiz.UpdateParams(params); err != nil {
		return err
	}
	if err := s.prefs.SaveSimulationParams(s.wiz.State().Params); err != nil {
		log.Printf("Warning: failed to persist simulation params: %v", err)
	}
	return nil
}

// RestoreWizardState loads the persisted selection and parameters into a
// freshly created wizard. Called once at startup.
func (s *SimulationService) RestoreWizardState() error {
	coins, err := s.prefs.SelectedCoins()
	if err != nil {
		return err
	}
	if len(coins) > 0 {
		if err := s.wiz.SetCoins(coins); err != nil {
			return err
		}
	}

	params, err := s.prefs.SimulationParams()
	if err != nil {
		return err
	}
	return s.wiz.UpdateParams(params)
}

// RecordResult converts a submission outcome into a history item and
// appends it. Failed submissions are recorded too, with a locally
// generated id when the optimizer never produced one.
func (s *SimulationService) RecordResult(response *models.SimulationResponse, request models.SimulationRequest, submitErr error) {
	item := buildHistoryItem(response, request, submitErr)

	if err := s.historyDAO.Append(item); err != nil {
		log.Printf("Failed to append history item: %v", err)
	}
}

func buildHistoryItem(response *models.SimulationResponse, request models.SimulationRequest, submitErr error) *models.HistoryItem {
	symbols := make([]string, len(request.Coins))
	for i, coin := range request.Coins {
		symbols[i] = coin.Symbol
	}

	requestJSON := "{}"
	if raw, err := json.Marshal(request); err == nil {
		requestJSON = string(raw)
	} else {
		log.Printf("Warning: failed to marshal request for history: %v", err)
	}

	item := &models.HistoryItem{
		Name:              strings.Join(symbols, ", "),
		OptimizationType:  request.OptimizationType,
		InitialInvestment: request.InitialInvestment,
		RequestJSON:       requestJSON,
	}

	if submitErr != nil || response == nil {
		item.ID = uuid.NewString()
		item.Timestamp = time.Now().UTC().Format(time.RFC3339)
		item.Status = models.SimulationStatusFailed
		return item
	}

	item.ID = response.ID
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.Timestamp = response.Timestamp
	if item.Timestamp == "" {
		item.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	item.Status = response.Status
	item.TotalReturn = response.Portfolio.Performance.TotalReturn
	return item
}

// History lists the persisted history, most recent first.
func (s *SimulationService) History() ([]models.HistoryItem, error) {
	return s.historyDAO.List()
}

// ClearHistory empties the persisted history.
func (s *SimulationService) ClearHistory() error {
	return s.historyDAO.Clear()
}

// RemoteHistory proxies the optimizer's paged history listing.
func (s *SimulationService) RemoteHistory(ctx context.Context, page, limit int, filters optimizer.HistoryFilters) (*models.HistoryPage, error) {
	return s.optimizerClient.GetHistory(ctx, page, limit, filters)
}

// Rerun re-validates and resubmits a saved request. Validation errors are
// returned as data so every violation can be rendered at once; only
// transport and optimizer failures surface as errors.
func (s *SimulationService) Rerun(ctx context.Context, historyID string) (*models.SimulationResponse, []string, error) {
	item, err := s.historyDAO.GetByID(historyID)
	if err != nil {
		return nil, nil, err
	}

	var request models.SimulationRequest
	if err := json.Unmarshal([]byte(item.RequestJSON), &request); err != nil {
		return nil, nil, fmt.Errorf("saved request %s is corrupt: %w", historyID, err)
	}

	if errs := wizard.ValidateRequest(request); len(errs) > 0 {
		return nil, errs, nil
	}

	response, err := s.optimizerClient.OptimizePortfolio(ctx, request)
	s.RecordResult(response, request, err)
	if err != nil {
		return nil, nil, err
	}
	return response, nil, nil
}
