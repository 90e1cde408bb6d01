package analysis

import (
	"fmt"
	"sort"
	"sync"

	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/market"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// RunSource supplies the stored runs to analyze.
type RunSource interface {
	ListRuns() ([]models.RunRecord, error)
}

// IdentifierResolver maps item names to type IDs.
type IdentifierResolver interface {
	Resolve(names []string) map[string]int64
}

// PriceResolver fetches market aggregates for type IDs.
type PriceResolver interface {
	Fetch(typeIDs []int64) map[int64]market.PriceEntry
}

// Analyzer runs the full pipeline: load runs, resolve every item and filament
// name, price them, compute per-run metrics, and aggregate. Passes are
// serialized; a second Analyze call waits for the first.
type Analyzer struct {
	runs   RunSource
	ids    IdentifierResolver
	prices PriceResolver
	mu     sync.Mutex
}

// NewAnalyzer wires the pipeline stages together.
func NewAnalyzer(runs RunSource, ids IdentifierResolver, prices PriceResolver) *Analyzer {
	return &Analyzer{
		runs:   runs,
		ids:    ids,
		prices: prices,
	}
}

// Analyze performs one full pass. An empty store yields a result with no runs
// and no network traffic.
func (a *Analyzer) Analyze() (*models.AnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	runs, err := a.runs.ListRuns()
	if err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}
	result := &models.AnalysisResult{
		Daily:     make(map[string]*models.DailySummary),
		BuyPrices: make(map[string]float64),
	}
	if len(runs) == 0 {
		return result, nil
	}

	lootNames, filamentNames := collectNames(runs)
	allNames := append(append([]string{}, lootNames...), filamentNames...)
	resolved := a.ids.Resolve(allNames)

	typeIDs := make([]int64, 0, len(resolved))
	for _, id := range resolved {
		typeIDs = append(typeIDs, id)
	}
	priced := a.prices.Fetch(typeIDs)

	buyPrices := make(map[string]float64, len(lootNames))
	for _, name := range lootNames {
		buyPrices[name] = priceFor(name, resolved, priced).BuyMax
	}
	sellPrices := make(map[string]float64, len(filamentNames))
	for _, name := range filamentNames {
		sellPrices[name] = priceFor(name, resolved, priced).SellMin
	}

	calc := NewCalculator(buyPrices, sellPrices)
	result.Runs = make([]models.ComputedRun, len(runs))
	for i, run := range runs {
		result.Runs[i] = models.ComputedRun{
			Run:     run,
			Metrics: calc.Compute(run),
		}
	}

	result.Daily, result.Overall = Aggregate(result.Runs)
	result.BuyPrices = buyPrices

	logger.Info("analysis pass complete",
		"runs", len(result.Runs),
		"days", len(result.Daily),
		"items_priced", len(buyPrices))
	return result, nil
}

// collectNames gathers every distinct loot item name and filament name across
// the runs, each sorted for stable request ordering.
func collectNames(runs []models.RunRecord) (lootNames, filamentNames []string) {
	loot := make(map[string]bool)
	filaments := make(map[string]bool)
	for _, run := range runs {
		for _, item := range models.ParseItems(run.ItemText) {
			loot[item.Name] = true
		}
		if filament, ok := models.FilamentName(run.Category); ok {
			filaments[filament] = true
		}
	}
	for name := range loot {
		lootNames = append(lootNames, name)
	}
	for name := range filaments {
		filamentNames = append(filamentNames, name)
	}
	sort.Strings(lootNames)
	sort.Strings(filamentNames)
	return lootNames, filamentNames
}

// priceFor chases a name through the resolution and pricing maps, logging
// once when either hop is missing. Missing hops price as zero.
func priceFor(name string, resolved map[string]int64, priced map[int64]market.PriceEntry) market.PriceEntry {
	id, ok := resolved[name]
	if !ok {
		logger.Warn("item name did not resolve, priced as zero", "name", name)
		return market.PriceEntry{}
	}
	entry, ok := priced[id]
	if !ok {
		logger.Warn("no aggregate for item, priced as zero", "name", name, "type_id", id)
		return market.PriceEntry{}
	}
	return entry
}
