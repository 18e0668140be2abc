package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"cryptodash/internal/models"
)

// Wizard steps, in order.
const (
	StepSelectCoins   = 0
	StepSetParameters = 1
	StepSetRisk       = 2
	StepPreview       = 3
	StepResults       = 4
)

// Optimizer is the external service that evaluates a simulation request.
type Optimizer interface {
	OptimizePortfolio(ctx context.Context, request models.SimulationRequest) (*models.SimulationResponse, error)
}

// ResultSink receives every submission outcome, successful or failed, for
// the history log.
type ResultSink interface {
	RecordResult(response *models.SimulationResponse, request models.SimulationRequest, submitErr error)
}

// ErrSubmitting is returned for any transition attempted while a
// submission is in flight.
var ErrSubmitting = errors.New("submission in progress")

// ValidationFailedError carries the accumulated rule violations that
// blocked a submission.
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// State is a snapshot of the wizard for external consumers.
type State struct {
	CurrentStep       int                        `json:"currentStep"`
	SelectedCoins     []models.Asset             `json:"selectedCoins"`
	Params            models.SimulationParams    `json:"params"`
	IsSubmitting      bool                       `json:"isSubmitting"`
	CurrentSimulation *models.SimulationResponse `json:"currentSimulation,omitempty"`
	LastError         string                     `json:"lastError,omitempty"`
}

// Wizard is the finite-state controller over the five simulation steps.
// Forward transitions are gated on the current step's validity; backward
// transitions and direct jumps are not. While a submission is in flight all
// transitions are refused.
type Wizard struct {
	mu sync.Mutex

	currentStep   int
	selectedCoins []models.Asset
	params        models.SimulationParams
	isSubmitting  bool

	currentSimulation *models.SimulationResponse
	lastError         string

	optimizer Optimizer
	sink      ResultSink
	now       func() time.Time
}

func New(optimizer Optimizer, sink ResultSink) *Wizard {
	return &Wizard{
		params:    models.DefaultSimulationParams(),
		optimizer: optimizer,
		sink:      sink,
		now:       time.Now,
	}
}

// State returns a copy of the current wizard state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Wizard) stateLocked() State {
	coins := make([]models.Asset, len(w.selectedCoins))
	copy(coins, w.selectedCoins)

	return State{
		CurrentStep:       w.currentStep,
		SelectedCoins:     coins,
		Params:            w.params,
		IsSubmitting:      w.isSubmitting,
		CurrentSimulation: w.currentSimulation,
		LastError:         w.lastError,
	}
}

// SetCoins replaces the coin selection.
func (w *Wizard) SetCoins(coins []models.Asset) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isSubmitting {
		return ErrSubmitting
	}

	w.selectedCoins = make([]models.Asset, len(coins))
	copy(w.selectedCoins, coins)
	return nil
}

// UpdateParams merges the non-zero fields of the given params into the
// accumulated parameters.
func (w *Wizard) UpdateParams(params models.SimulationParams) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isSubmitting {
		return ErrSubmitting
	}

	if params.Timeframe != "" {
		w.params.Timeframe = params.Timeframe
	}
	if params.OptimizationType != "" {
		w.params.OptimizationType = params.OptimizationType
	}
	if params.RiskTolerance != "" {
		w.params.RiskTolerance = params.RiskTolerance
	}
	if params.InitialInvestment != 0 {
		w.params.InitialInvestment = params.InitialInvestment
	}
	return nil
}

// IsStepValid reports the validity predicate of a single step.
func (w *Wizard) IsStepValid(step int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isStepValidLocked(step)
}

func (w *Wizard) isStepValidLocked(step int) bool {
	switch step {
	case StepSelectCoins:
		return len(w.selectedCoins) >= MinCoins && len(w.selectedCoins) <= MaxCoins
	case StepSetParameters:
		return w.params.Timeframe != "" && w.params.OptimizationType != ""
	case StepSetRisk:
		return w.params.InitialInvestment > 0
	case StepPreview:
		return true // review-only
	default:
		return false
	}
}

// Next advances to the following step when the current step's validity
// predicate holds. From the preview step it submits the accumulated request
// to the optimizer instead; on success the result becomes the current
// simulation and the wizard lands on the results step, on failure the step
// does not change and the error is surfaced in the state.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()

	if w.isSubmitting {
		w.mu.Unlock()
		return ErrSubmitting
	}

	if !w.isStepValidLocked(w.currentStep) {
		w.mu.Unlock()
		return fmt.Errorf("step %d is not complete", w.currentStep)
	}

	if w.currentStep == StepPreview {
		return w.submitLocked(ctx)
	}

	if w.currentStep < StepResults {
		w.currentStep++
	}
	w.mu.Unlock()
	return nil
}

// Previous steps back one step. Always allowed above step 0, regardless of
// validity, so earlier steps can be revisited and fixed.
func (w *Wizard) Previous() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isSubmitting {
		return ErrSubmitting
	}

	if w.currentStep <= StepSelectCoins {
		return fmt.Errorf("already at the first step")
	}

	w.currentStep--
	return nil
}

// GoToStep jumps directly to any step in range. Intermediate steps are not
// re-validated: a later step is only reachable once its gates passed
// through Next, and the step-index menu relies on free movement.
func (w *Wizard) GoToStep(step int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isSubmitting {
		return ErrSubmitting
	}

	if step < StepSelectCoins || step > StepResults {
		return fmt.Errorf("step %d out of range", step)
	}

	w.currentStep = step
	return nil
}

// Reset restores the initial state: step 0, empty selection, default
// parameters, no current simulation. Closing the wizard always resets.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentStep = StepSelectCoins
	w.selectedCoins = nil
	w.params = models.DefaultSimulationParams()
	w.currentSimulation = nil
	w.lastError = ""
	w.isSubmitting = false
}

// BuildRequest assembles the full simulation request from the accumulated
// selections and parameters, with a synthesized one-year trailing date
// range ending now.
func (w *Wizard) BuildRequest() models.SimulationRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buildRequestLocked()
}

func (w *Wizard) buildRequestLocked() models.SimulationRequest {
	coins := make([]models.CoinRef, len(w.selectedCoins))
	for i, asset := range w.selectedCoins {
		coins[i] = models.CoinRef{
			ID:     asset.ID,
			Symbol: asset.Symbol,
			Name:   asset.Name,
		}
	}

	now := w.now()
	return models.SimulationRequest{
		Coins: coins,
		DateRange: models.DateRange{
			StartDate: now.AddDate(-1, 0, 0).UTC().Format(time.RFC3339),
			EndDate:   now.UTC().Format(time.RFC3339),
		},
		Timeframe:         w.params.Timeframe,
		OptimizationType:  w.params.OptimizationType,
		RiskTolerance:     w.params.RiskTolerance,
		InitialInvestment: w.params.InitialInvestment,
	}
}

// submitLocked is entered holding the mutex and releases it around the
// optimizer call so State() stays readable while the submission is in
// flight. Transitions stay blocked through the isSubmitting flag.
func (w *Wizard) submitLocked(ctx context.Context) error {
	request := w.buildRequestLocked()

	if errs := ValidateRequest(request); len(errs) > 0 {
		err := &ValidationFailedError{Errors: errs}
		w.lastError = err.Error()
		w.mu.Unlock()
		return err
	}

	w.isSubmitting = true
	w.lastError = ""
	w.mu.Unlock()

	response, err := w.optimizer.OptimizePortfolio(ctx, request)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.isSubmitting = false

	if w.sink != nil {
		w.sink.RecordResult(response, request, err)
	}

	if err != nil {
		// The wizard stays on the preview step with selections intact.
		w.lastError = err.Error()
		log.Printf("Simulation submission failed: %v", err)
		return err
	}

	w.currentSimulation = response
	w.currentStep = StepResults
	log.Printf("Simulation %s completed with status %s", response.ID, response.Status)
	return nil
}
