package components

import (
	"fmt"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/styles"
)

// FormatInRunBadge renders the live in-deadspace indicator with elapsed time.
func FormatInRunBadge(start time.Time) string {
	elapsed := time.Since(start)
	if start.IsZero() || elapsed < 0 {
		return styles.InRunStyle.Render("◉ IN ABYSS")
	}
	return styles.InRunStyle.Render(fmt.Sprintf("◉ IN ABYSS %dm %02ds",
		int(elapsed.Minutes()), int(elapsed.Seconds())%60))
}

// FormatRunWindow renders a run's start and end as "15:04 - 15:24".
func FormatRunWindow(start, end time.Time) string {
	return fmt.Sprintf("%s - %s",
		start.In(models.ReportingZone).Format("15:04"),
		end.In(models.ReportingZone).Format("15:04"))
}
