package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/models"
)

func validRequest() models.SimulationRequest {
	end := time.Now().Add(-24 * time.Hour).UTC()
	start := end.AddDate(0, -6, 0)

	return models.SimulationRequest{
		Coins: []models.CoinRef{
			{ID: "bitcoin", Symbol: "BTC"},
			{ID: "ethereum", Symbol: "ETH"},
		},
		DateRange: models.DateRange{
			StartDate: start.Format(time.RFC3339),
			EndDate:   end.Format(time.RFC3339),
		},
		Timeframe:         models.TimeframeDaily,
		OptimizationType:  models.OptimizationSharpe,
		RiskTolerance:     models.RiskModerate,
		InitialInvestment: 10000,
	}
}

func TestValidateRequest_ValidRequestPasses(t *testing.T) {
	assert.Empty(t, ValidateRequest(validRequest()))
}

func TestValidateRequest_AccumulatesAllViolations(t *testing.T) {
	request := validRequest()
	request.Coins = request.Coins[:1]
	request.DateRange = models.DateRange{}
	request.OptimizationType = ""
	request.InitialInvestment = 0

	errs := ValidateRequest(request)

	require.GreaterOrEqual(t, len(errs), 4)
	assert.Contains(t, errs, "At least 2 cryptocurrencies must be selected")
	assert.Contains(t, errs, "Start and end dates are required")
	assert.Contains(t, errs, "Optimization type is required")
	assert.Contains(t, errs, "Initial investment must be greater than 0")
}

func TestValidateRequest_CoinBounds(t *testing.T) {
	t.Run("too few", func(t *testing.T) {
		request := validRequest()
		request.Coins = request.Coins[:1]

		assert.Contains(t, ValidateRequest(request), "At least 2 cryptocurrencies must be selected")
	})

	t.Run("too many", func(t *testing.T) {
		request := validRequest()
		for i := 0; i < 20; i++ {
			request.Coins = append(request.Coins, models.CoinRef{ID: "x"})
		}

		assert.Contains(t, ValidateRequest(request), "Maximum 20 cryptocurrencies allowed")
	})
}

func TestValidateRequest_DateRules(t *testing.T) {
	t.Run("non-ISO dates", func(t *testing.T) {
		request := validRequest()
		request.DateRange.StartDate = "01/02/2025"

		assert.Contains(t, ValidateRequest(request), "Dates must be in ISO format")
	})

	t.Run("start not before end", func(t *testing.T) {
		request := validRequest()
		request.DateRange.StartDate, request.DateRange.EndDate =
			request.DateRange.EndDate, request.DateRange.StartDate

		assert.Contains(t, ValidateRequest(request), "Start date must be before end date")
	})

	t.Run("end in the future", func(t *testing.T) {
		request := validRequest()
		request.DateRange.EndDate = time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

		assert.Contains(t, ValidateRequest(request), "End date cannot be in the future")
	})

	t.Run("period too short", func(t *testing.T) {
		request := validRequest()
		end, err := time.Parse(time.RFC3339, request.DateRange.EndDate)
		require.NoError(t, err)
		request.DateRange.StartDate = end.AddDate(0, 0, -10).Format(time.RFC3339)

		assert.Contains(t, ValidateRequest(request), "Simulation period must be at least 30 days")
	})

	t.Run("period too long", func(t *testing.T) {
		request := validRequest()
		end, err := time.Parse(time.RFC3339, request.DateRange.EndDate)
		require.NoError(t, err)
		request.DateRange.StartDate = end.AddDate(-6, 0, 0).Format(time.RFC3339)

		assert.Contains(t, ValidateRequest(request), "Simulation period cannot exceed 5 years")
	})

	t.Run("thirty days exactly is fine", func(t *testing.T) {
		request := validRequest()
		end, err := time.Parse(time.RFC3339, request.DateRange.EndDate)
		require.NoError(t, err)
		request.DateRange.StartDate = end.AddDate(0, 0, -30).Format(time.RFC3339)

		assert.Empty(t, ValidateRequest(request))
	})
}

func TestValidateRequest_EnumRules(t *testing.T) {
	t.Run("unknown optimization type", func(t *testing.T) {
		request := validRequest()
		request.OptimizationType = "alchemy"

		assert.Contains(t, ValidateRequest(request), "Optimization type is required")
	})

	t.Run("unknown timeframe", func(t *testing.T) {
		request := validRequest()
		request.Timeframe = "hourly"

		assert.Contains(t, ValidateRequest(request), "Timeframe is required")
	})

	t.Run("negative investment", func(t *testing.T) {
		request := validRequest()
		request.InitialInvestment = -100

		assert.Contains(t, ValidateRequest(request), "Initial investment must be greater than 0")
	})
}
