package analysis

import (
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/market"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

type stubRunSource struct {
	runs []models.RunRecord
	err  error
}

func (s *stubRunSource) ListRuns() ([]models.RunRecord, error) {
	return s.runs, s.err
}

type stubIDResolver struct {
	ids   map[string]int64
	calls int
	asked []string
}

func (s *stubIDResolver) Resolve(names []string) map[string]int64 {
	s.calls++
	s.asked = append(s.asked, names...)
	out := make(map[string]int64)
	for _, name := range names {
		if id, ok := s.ids[name]; ok {
			out[name] = id
		}
	}
	return out
}

type stubPriceResolver struct {
	prices map[int64]market.PriceEntry
	calls  int
}

func (s *stubPriceResolver) Fetch(typeIDs []int64) map[int64]market.PriceEntry {
	s.calls++
	out := make(map[int64]market.PriceEntry)
	for _, id := range typeIDs {
		if entry, ok := s.prices[id]; ok {
			out[id] = entry
		}
	}
	return out
}

func storedRun(day int, category, itemText string) models.RunRecord {
	start := time.Date(2025, 6, day, 10, 0, 0, 0, models.ReportingZone)
	return models.RunRecord{
		Start:    start,
		End:      start.Add(20 * time.Minute),
		Category: category,
		ItemText: itemText,
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	runs := &stubRunSource{runs: []models.RunRecord{
		storedRun(1, "T3 Firestorm", "Large Crystal*3; Small Gem"),
	}}
	ids := &stubIDResolver{ids: map[string]int64{
		"Large Crystal":             100,
		"Small Gem":                 101,
		"Fierce Firestorm Filament": 102,
	}}
	prices := &stubPriceResolver{prices: map[int64]market.PriceEntry{
		100: {BuyMax: 1000},
		101: {BuyMax: 50},
		102: {SellMin: 200},
	}}

	result, err := NewAnalyzer(runs, ids, prices).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !result.HasData() {
		t.Fatal("expected data")
	}

	m := result.Runs[0].Metrics
	if m.DropValue != 3050 {
		t.Errorf("drop value = %v, want 3050", m.DropValue)
	}
	if m.EntryCost != 600 {
		t.Errorf("entry cost = %v, want 600 (three filaments at 200)", m.EntryCost)
	}
	if m.NetProfit != 2450 {
		t.Errorf("net profit = %v, want 2450", m.NetProfit)
	}

	// The filament name must have been derived and sent for resolution.
	found := false
	for _, name := range ids.asked {
		if name == "Fierce Firestorm Filament" {
			found = true
		}
	}
	if !found {
		t.Errorf("filament name never resolved; asked %v", ids.asked)
	}

	if result.BuyPrices["Large Crystal"] != 1000 {
		t.Errorf("buy price snapshot = %v", result.BuyPrices)
	}
	if result.Overall.RunCount != 1 {
		t.Errorf("overall = %+v", result.Overall)
	}
}

func TestAnalyzeEmptyStoreMakesNoCalls(t *testing.T) {
	ids := &stubIDResolver{}
	prices := &stubPriceResolver{}

	result, err := NewAnalyzer(&stubRunSource{}, ids, prices).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.HasData() {
		t.Error("empty store produced data")
	}
	if ids.calls != 0 || prices.calls != 0 {
		t.Errorf("empty store still resolved (%d) or priced (%d)", ids.calls, prices.calls)
	}
}

func TestAnalyzeUnresolvedNamesPriceZero(t *testing.T) {
	runs := &stubRunSource{runs: []models.RunRecord{
		storedRun(1, "Unknown Foo", "Mystery Loot*2"),
	}}
	ids := &stubIDResolver{} // nothing resolves
	prices := &stubPriceResolver{}

	result, err := NewAnalyzer(runs, ids, prices).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	m := result.Runs[0].Metrics
	if m.DropValue != 0 || m.EntryCost != 0 || m.NetProfit != 0 {
		t.Errorf("unresolved run metrics = %+v, want zeros", m)
	}
}
