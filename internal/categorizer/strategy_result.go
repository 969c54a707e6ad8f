package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/models"
)

// StrategyResult represents the result of a categorization strategy attempt
type StrategyResult struct {
	Strategy   string
	Assignment models.Assignment
	Found      bool
	Error      error
}

// StrategyResults aggregates results from the strategies tried for one transaction.
type StrategyResults struct {
	Results []StrategyResult
}

// Add records the outcome of one strategy.
func (sr *StrategyResults) Add(strategy string, a models.Assignment, found bool, err error) {
	sr.Results = append(sr.Results, StrategyResult{
		Strategy:   strategy,
		Assignment: a,
		Found:      found,
		Error:      err,
	})
}

// GetBestResult returns the first successful result.
func (sr StrategyResults) GetBestResult() (models.Assignment, bool) {
	for i := range sr.Results {
		if sr.Results[i].Found && sr.Results[i].Error == nil {
			return sr.Results[i].Assignment, true
		}
	}
	return models.Assignment{}, false
}

// GetErrors returns all errors encountered during strategy execution
func (sr StrategyResults) GetErrors() []error {
	var errs []error
	for _, result := range sr.Results {
		if result.Error != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", result.Strategy, result.Error))
		}
	}
	return errs
}

// Summary returns a human-readable summary of all strategy attempts
func (sr StrategyResults) Summary() string {
	var parts []string
	for _, result := range sr.Results {
		status := "failed"
		if result.Found {
			status = "success"
		} else if result.Error == nil {
			status = "no_match"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", result.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
