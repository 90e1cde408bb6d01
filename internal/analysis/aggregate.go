package analysis

import (
	"sort"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// Aggregate groups computed runs into daily and overall summaries. Runs whose
// category does not decompose into a (tier, weather) pair still count toward
// daily and overall figures but are excluded from the category breakdown.
func Aggregate(runs []models.ComputedRun) (map[string]*models.DailySummary, models.OverallSummary) {
	daily := make(map[string]*models.DailySummary)
	if len(runs) == 0 {
		return daily, models.OverallSummary{}
	}

	for _, run := range runs {
		date := run.Run.Date()
		summary, ok := daily[date]
		if !ok {
			summary = &models.DailySummary{Date: date}
			daily[date] = summary
		}
		summary.Runs = append(summary.Runs, run)
	}
	for _, summary := range daily {
		summary.AvgNetProfit, summary.AvgDurationMin, summary.AvgRatePerHour = means(summary.Runs)
	}

	overall := models.OverallSummary{RunCount: len(runs)}
	overall.AvgNetProfit, overall.AvgDurationMin, overall.AvgRatePerHour = means(runs)
	overall.Categories = categorySummaries(runs)
	return daily, overall
}

func means(runs []models.ComputedRun) (netProfit, durationMin, ratePerHour float64) {
	if len(runs) == 0 {
		return 0, 0, 0
	}
	for _, run := range runs {
		netProfit += run.Metrics.NetProfit
		durationMin += run.Run.DurationMinutes()
		ratePerHour += run.Metrics.RatePerHour
	}
	n := float64(len(runs))
	return netProfit / n, durationMin / n, ratePerHour / n
}

func categorySummaries(runs []models.ComputedRun) []models.CategorySummary {
	type key struct{ tier, weather string }
	groups := make(map[key][]models.ComputedRun)
	for _, run := range runs {
		tier, weather, ok := models.SplitCategory(run.Run.Category)
		if !ok {
			continue
		}
		k := key{tier, weather}
		groups[k] = append(groups[k], run)
	}

	summaries := make([]models.CategorySummary, 0, len(groups))
	for k, group := range groups {
		s := models.CategorySummary{
			Tier:     k.tier,
			Weather:  k.weather,
			RunCount: len(group),
		}
		s.AvgNetProfit, s.AvgDurationMin, s.AvgRatePerHour = means(group)
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Tier != summaries[j].Tier {
			return summaries[i].Tier < summaries[j].Tier
		}
		return summaries[i].Weather < summaries[j].Weather
	})
	return summaries
}
