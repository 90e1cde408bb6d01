package models

// DailySummary aggregates the runs of one calendar date.
type DailySummary struct {
	Date           string
	Runs           []ComputedRun
	AvgNetProfit   float64
	AvgDurationMin float64
	AvgRatePerHour float64
}

// CategorySummary aggregates the runs of one (tier, weather) pair.
type CategorySummary struct {
	Tier           string
	Weather        string
	RunCount       int
	AvgNetProfit   float64
	AvgDurationMin float64
	AvgRatePerHour float64
}

// OverallSummary is the whole-dataset aggregate plus its category breakdown.
type OverallSummary struct {
	RunCount       int
	AvgNetProfit   float64
	AvgDurationMin float64
	AvgRatePerHour float64
	Categories     []CategorySummary
}

// AnalysisResult is the output of one full analysis pass.
type AnalysisResult struct {
	Runs      []ComputedRun
	Daily     map[string]*DailySummary
	Overall   OverallSummary
	BuyPrices map[string]float64
}

// HasData reports whether the analysis produced any runs.
func (a *AnalysisResult) HasData() bool {
	return a != nil && len(a.Runs) > 0
}
