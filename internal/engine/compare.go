package engine

import (
	"errors"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ComparisonScenario defines a named layout configuration to compare.
type ComparisonScenario struct {
	Name   string
	Config model.LayoutConfig
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario. Err is set when the scenario could not be packed.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.Result
	PagesUsed    int
	TotalArea    uint64
	WastePercent float64
	Err          error
}

// Failed returns true if the scenario ended in a packing failure.
func (cr ComparisonResult) Failed() bool {
	return errors.Is(cr.Err, ErrPackingFailure)
}

// CompareScenarios packs rects once per scenario and returns the results
// in scenario order. A failing scenario does not stop the comparison.
func CompareScenarios(scenarios []ComparisonScenario, rects []model.Rect) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Config)
		result, err := opt.Pack(rects)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			PagesUsed:    len(result.Pages),
			TotalArea:    result.TotalArea(),
			WastePercent: 100.0 - result.TotalEfficiency(),
		})
	}

	return results
}

// BuildDefaultScenarios generates one scenario per presort order, keeping
// the margins of the base configuration.
func BuildDefaultScenarios(base model.LayoutConfig) []ComparisonScenario {
	orders := Orders()
	scenarios := make([]ComparisonScenario, 0, len(orders))
	for _, o := range orders {
		cfg := base
		cfg.Order = o.String()
		scenarios = append(scenarios, ComparisonScenario{
			Name:   o.String(),
			Config: cfg,
		})
	}
	return scenarios
}

// BestScenario returns the index of the successful result with the fewest
// pages, then the smallest total page area. Earlier scenarios win ties.
// Returns -1 if every scenario failed.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 ||
			r.PagesUsed < results[best].PagesUsed ||
			(r.PagesUsed == results[best].PagesUsed && r.TotalArea < results[best].TotalArea) {
			best = i
		}
	}
	return best
}
