package models

import (
	"time"
)

type SimulationStatus string

const (
	SimulationStatusCompleted  SimulationStatus = "completed"
	SimulationStatusProcessing SimulationStatus = "processing"
	SimulationStatusFailed     SimulationStatus = "failed"
)

type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return true
	}
	return false
}

type OptimizationType string

const (
	OptimizationSharpe           OptimizationType = "sharpe"
	OptimizationGeneticAlgorithm OptimizationType = "genetic_algorithm"
	OptimizationRiskParity       OptimizationType = "risk_parity"
	OptimizationMomentum         OptimizationType = "momentum"
	OptimizationCustomAI         OptimizationType = "custom_ai"
)

func (o OptimizationType) Valid() bool {
	switch o {
	case OptimizationSharpe, OptimizationGeneticAlgorithm, OptimizationRiskParity,
		OptimizationMomentum, OptimizationCustomAI:
		return true
	}
	return false
}

type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// CoinRef identifies one selected coin inside a simulation request.
type CoinRef struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// DateRange bounds the simulated period. Dates are ISO-8601 strings.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SimulationRequest is the payload submitted to the external optimizer.
type SimulationRequest struct {
	Coins             []CoinRef        `json:"coins"`
	DateRange         DateRange        `json:"dateRange"`
	Timeframe         Timeframe        `json:"timeframe"`
	OptimizationType  OptimizationType `json:"optimizationType"`
	RiskTolerance     RiskTolerance    `json:"riskTolerance,omitempty"`
	InitialInvestment float64          `json:"initialInvestment"`
}

// SimulationParams is the partially-filled request the wizard accumulates
// before submission.
type SimulationParams struct {
	Timeframe         Timeframe        `json:"timeframe"`
	OptimizationType  OptimizationType `json:"optimizationType"`
	RiskTolerance     RiskTolerance    `json:"riskTolerance"`
	InitialInvestment float64          `json:"initialInvestment"`
}

// DefaultSimulationParams are the wizard's initial parameters.
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		Timeframe:         TimeframeDaily,
		OptimizationType:  OptimizationSharpe,
		RiskTolerance:     RiskModerate,
		InitialInvestment: 10000,
	}
}

type Performance struct {
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
	WinRate          float64 `json:"winRate"`
}

type PortfolioAllocation struct {
	CoinID string  `json:"coinId"`
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"` // fraction of the portfolio
	Amount float64 `json:"amount"` // USD value
}

type PortfolioMetrics struct {
	StartValue       float64 `json:"startValue"`
	EndValue         float64 `json:"endValue"`
	TotalProfit      float64 `json:"totalProfit"`
	ProfitPercentage float64 `json:"profitPercentage"`
}

type DailyReturn struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Return float64 `json:"return"`
}

type Portfolio struct {
	Allocations  []PortfolioAllocation `json:"allocations"`
	Performance  Performance           `json:"performance"`
	Metrics      PortfolioMetrics      `json:"metrics"`
	DailyReturns []DailyReturn         `json:"dailyReturns"`
}

type RiskMetrics struct {
	Var95       float64 `json:"var95"`
	Cvar95      float64 `json:"cvar95"`
	Beta        float64 `json:"beta"`
	Correlation float64 `json:"correlation"`
}

// SimulationResponse is produced only by the external optimizer. The core
// treats it as opaque beyond the fields persisted into history.
type SimulationResponse struct {
	ID             string            `json:"id"`
	Timestamp      string            `json:"timestamp"`
	Request        SimulationRequest `json:"request"`
	Portfolio      Portfolio         `json:"portfolio"`
	RiskMetrics    RiskMetrics       `json:"riskMetrics"`
	Status         SimulationStatus  `json:"status"`
	ProcessingTime float64           `json:"processingTime,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// HistoryItem is a persisted summary record of one past simulation outcome.
type HistoryItem struct {
	ID                string           `json:"id" gorm:"primaryKey"`
	Name              string           `json:"name" gorm:"not null"`
	Timestamp         string           `json:"timestamp" gorm:"not null"`
	OptimizationType  OptimizationType `json:"optimizationType" gorm:"index"`
	InitialInvestment float64          `json:"initialInvestment"`
	TotalReturn       float64          `json:"totalReturn"`
	Status            SimulationStatus `json:"status" gorm:"index"`
	RequestJSON       string           `json:"-" gorm:"type:text"` // serialized SimulationRequest, kept for re-runs
	CreatedAt         time.Time        `json:"created_at"`
}

func (HistoryItem) TableName() string {
	return "simulation_history"
}

// HistoryPage is the paged history listing served by the optimizer's
// /simulation/history endpoint.
type HistoryPage struct {
	Items      []HistoryItem `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}
