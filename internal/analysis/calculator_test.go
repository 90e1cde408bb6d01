package analysis

import (
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

func runOver(minutes int, category, itemText string) models.RunRecord {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, models.ReportingZone)
	return models.RunRecord{
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Category: category,
		ItemText: itemText,
	}
}

func TestComputeDropValue(t *testing.T) {
	calc := NewCalculator(map[string]float64{
		"Large Crystal": 1000,
		"Small Gem":     50,
	}, nil)

	m := calc.Compute(runOver(20, "", "Large Crystal*3; Small Gem"))
	if m.DropValue != 3050 {
		t.Errorf("drop value = %v, want 3050", m.DropValue)
	}
	if m.EntryCost != 0 {
		t.Errorf("entry cost without category = %v, want 0", m.EntryCost)
	}
	if m.NetProfit != 3050 {
		t.Errorf("net profit = %v, want 3050", m.NetProfit)
	}
}

func TestComputeEntryCost(t *testing.T) {
	calc := NewCalculator(nil, map[string]float64{
		"Fierce Firestorm Filament": 100000,
	})

	m := calc.Compute(runOver(20, "T3 Firestorm", ""))
	if m.EntryCost != 300000 {
		t.Errorf("entry cost = %v, want 300000 (three filaments)", m.EntryCost)
	}
	if m.NetProfit != -300000 {
		t.Errorf("net profit = %v, want -300000", m.NetProfit)
	}
}

func TestComputeUnknownCategoryCostsNothing(t *testing.T) {
	calc := NewCalculator(nil, map[string]float64{
		"Fierce Firestorm Filament": 100000,
	})

	for _, category := range []string{"Unknown Foo", "T9 Firestorm", "T3", ""} {
		m := calc.Compute(runOver(20, category, ""))
		if m.EntryCost != 0 {
			t.Errorf("entry cost for %q = %v, want 0", category, m.EntryCost)
		}
	}
}

func TestComputeRatePerHour(t *testing.T) {
	calc := NewCalculator(map[string]float64{"Loot": 1000}, nil)

	m := calc.Compute(runOver(20, "", "Loot"))
	if m.RatePerHour != 3000 {
		t.Errorf("rate = %v, want 3000 (1000 in 20 minutes)", m.RatePerHour)
	}
}

func TestComputeZeroDuration(t *testing.T) {
	calc := NewCalculator(map[string]float64{"Loot": 1000}, nil)

	m := calc.Compute(runOver(0, "", "Loot"))
	if m.RatePerHour != 0 {
		t.Errorf("rate for zero-duration run = %v, want 0", m.RatePerHour)
	}
}

func TestComputeUnpricedItemsCountZero(t *testing.T) {
	calc := NewCalculator(map[string]float64{"Known": 100}, nil)

	m := calc.Compute(runOver(20, "", "Known; Never Heard Of It*5"))
	if m.DropValue != 100 {
		t.Errorf("drop value = %v, want 100", m.DropValue)
	}
}
