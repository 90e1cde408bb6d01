// Package analysis turns stored runs and a price snapshot into profit figures
// and summaries.
package analysis

import (
	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// Calculator derives the financial metrics of runs against one price
// snapshot. Loot is valued at the best buy order, filaments at the best sell
// order; anything unpriced counts as zero.
type Calculator struct {
	buyPrices  map[string]float64
	sellPrices map[string]float64
}

// NewCalculator creates a calculator over item-name keyed price maps.
func NewCalculator(buyPrices, sellPrices map[string]float64) *Calculator {
	return &Calculator{
		buyPrices:  buyPrices,
		sellPrices: sellPrices,
	}
}

// Compute derives the metrics of a single run.
func (c *Calculator) Compute(run models.RunRecord) models.RunMetrics {
	m := models.RunMetrics{
		DropValue: c.dropValue(run.ItemText),
		EntryCost: c.entryCost(run.Category),
	}
	m.NetProfit = m.DropValue - m.EntryCost

	if minutes := run.DurationMinutes(); minutes > 0 {
		m.RatePerHour = m.NetProfit / (minutes / 60)
	}
	return m
}

// dropValue prices the acquired-item list against buy orders.
func (c *Calculator) dropValue(itemText string) float64 {
	var total float64
	for _, item := range models.ParseItems(itemText) {
		total += c.buyPrices[item.Name] * float64(item.Quantity)
	}
	return total
}

// entryCost prices the filaments consumed to open the run. Categories that do
// not map to a filament cost nothing.
func (c *Calculator) entryCost(category string) float64 {
	filament, ok := models.FilamentName(category)
	if !ok {
		return 0
	}
	return c.sellPrices[filament] * config.FilamentCount
}
