package analysis

import (
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

func computedRun(day int, category string, netProfit, minutes float64) models.ComputedRun {
	start := time.Date(2025, 6, day, 10, 0, 0, 0, models.ReportingZone)
	rate := 0.0
	if minutes > 0 {
		rate = netProfit / (minutes / 60)
	}
	return models.ComputedRun{
		Run: models.RunRecord{
			Start:    start,
			End:      start.Add(time.Duration(minutes) * time.Minute),
			Category: category,
		},
		Metrics: models.RunMetrics{NetProfit: netProfit, RatePerHour: rate},
	}
}

func TestAggregateDailyMeans(t *testing.T) {
	runs := []models.ComputedRun{
		computedRun(1, "T3 Firestorm", 100, 20),
		computedRun(1, "T3 Firestorm", 200, 20),
		computedRun(1, "T3 Firestorm", 300, 20),
		computedRun(2, "T3 Firestorm", 500, 10),
	}

	daily, overall := Aggregate(runs)
	if len(daily) != 2 {
		t.Fatalf("got %d days, want 2", len(daily))
	}

	first := daily["2025-06-01"]
	if first == nil || len(first.Runs) != 3 {
		t.Fatalf("2025-06-01 = %+v, want 3 runs", first)
	}
	if first.AvgNetProfit != 200 {
		t.Errorf("daily mean profit = %v, want 200", first.AvgNetProfit)
	}
	if first.AvgDurationMin != 20 {
		t.Errorf("daily mean duration = %v, want 20", first.AvgDurationMin)
	}

	if overall.RunCount != 4 {
		t.Errorf("overall run count = %d, want 4", overall.RunCount)
	}
	if overall.AvgNetProfit != 275 {
		t.Errorf("overall mean profit = %v, want 275", overall.AvgNetProfit)
	}
}

func TestAggregateCategoryBreakdown(t *testing.T) {
	runs := []models.ComputedRun{
		computedRun(1, "T3 Firestorm", 100, 20),
		computedRun(1, "T3 Firestorm", 300, 20),
		computedRun(1, "T4 Darkness", 1000, 25),
		computedRun(1, "freeform note", 50, 10),
		computedRun(1, "unclassified", 70, 10),
	}

	// Any two-token label groups, known tier or not; only labels that do not
	// split into two tokens are excluded from the breakdown.
	_, overall := Aggregate(runs)
	if len(overall.Categories) != 3 {
		t.Fatalf("got %d categories, want 3: %+v", len(overall.Categories), overall.Categories)
	}

	// Sorted by tier then weather.
	firestorm := overall.Categories[0]
	if firestorm.Tier != "T3" || firestorm.Weather != "Firestorm" {
		t.Fatalf("first category = %+v", firestorm)
	}
	if firestorm.RunCount != 2 || firestorm.AvgNetProfit != 200 {
		t.Errorf("firestorm summary = %+v", firestorm)
	}

	darkness := overall.Categories[1]
	if darkness.Tier != "T4" || darkness.RunCount != 1 {
		t.Errorf("darkness summary = %+v", darkness)
	}

	freeform := overall.Categories[2]
	if freeform.Tier != "freeform" || freeform.Weather != "note" || freeform.RunCount != 1 {
		t.Errorf("freeform summary = %+v", freeform)
	}

	// The non-decomposable run still counts overall.
	if overall.RunCount != 5 {
		t.Errorf("overall run count = %d, want 5", overall.RunCount)
	}
}

func TestAggregateEmpty(t *testing.T) {
	daily, overall := Aggregate(nil)
	if len(daily) != 0 {
		t.Errorf("daily = %v, want empty", daily)
	}
	if overall.RunCount != 0 || overall.AvgNetProfit != 0 {
		t.Errorf("overall = %+v, want zero value", overall)
	}
}
