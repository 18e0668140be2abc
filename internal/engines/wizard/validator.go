package wizard

import (
	"time"

	"cryptodash/internal/models"
)

const (
	MinCoins = 2
	MaxCoins = 20

	MinPeriodDays = 30
	MaxPeriodDays = 1825 // 5 years
)

// ValidateRequest checks a simulation request for completeness and domain
// validity. Every rule is evaluated; violations accumulate so the caller
// can surface all of them at once. An empty result means valid.
func ValidateRequest(request models.SimulationRequest) []string {
	var errors []string

	if len(request.Coins) < MinCoins {
		errors = append(errors, "At least 2 cryptocurrencies must be selected")
	}

	if len(request.Coins) > MaxCoins {
		errors = append(errors, "Maximum 20 cryptocurrencies allowed")
	}

	if request.DateRange.StartDate == "" || request.DateRange.EndDate == "" {
		errors = append(errors, "Start and end dates are required")
	} else {
		startDate, err1 := time.Parse(time.RFC3339, request.DateRange.StartDate)
		endDate, err2 := time.Parse(time.RFC3339, request.DateRange.EndDate)

		if err1 != nil || err2 != nil {
			errors = append(errors, "Dates must be in ISO format")
		} else {
			now := time.Now()

			if !startDate.Before(endDate) {
				errors = append(errors, "Start date must be before end date")
			}

			if endDate.After(now) {
				errors = append(errors, "End date cannot be in the future")
			}

			daysDiff := endDate.Sub(startDate).Hours() / 24
			if daysDiff < MinPeriodDays {
				errors = append(errors, "Simulation period must be at least 30 days")
			}

			if daysDiff > MaxPeriodDays {
				errors = append(errors, "Simulation period cannot exceed 5 years")
			}
		}
	}

	if request.InitialInvestment <= 0 {
		errors = append(errors, "Initial investment must be greater than 0")
	}

	if !request.OptimizationType.Valid() {
		errors = append(errors, "Optimization type is required")
	}

	if !request.Timeframe.Valid() {
		errors = append(errors, "Timeframe is required")
	}

	return errors
}
