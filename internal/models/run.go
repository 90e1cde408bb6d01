// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// ReportingZone is the fixed offset all run timestamps are reported in.
// Log timestamps are written in UTC; the reporting surface uses KST.
var ReportingZone = time.FixedZone("KST", 9*60*60)

// LocationEvent is a classified "location changed" log line. Ephemeral;
// produced by the classifier and consumed by the run boundary tracker.
type LocationEvent struct {
	Timestamp    time.Time
	LocationName string
	IsAnomalous  bool
}

// RunRecord is one completed excursion into abyssal deadspace. Start and end
// are in the reporting zone. ItemText is the free-form acquired-item list the
// user transcribed after the run ("name*qty; name; ...").
type RunRecord struct {
	ID       int64
	Start    time.Time
	End      time.Time
	Category string
	ItemText string
}

// DurationMinutes returns the run length in minutes.
func (r RunRecord) DurationMinutes() float64 {
	return r.End.Sub(r.Start).Minutes()
}

// Date returns the calendar date of the run start, used as the grouping key
// for daily summaries.
func (r RunRecord) Date() string {
	return r.Start.Format("2006-01-02")
}

// DurationString formats the run length as "3m 42s".
func (r RunRecord) DurationString() string {
	d := r.End.Sub(r.Start)
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}

// RunMetrics holds the financial figures derived from a run and a price
// snapshot. Recomputed on every analysis pass, never persisted.
type RunMetrics struct {
	DropValue   float64
	EntryCost   float64
	NetProfit   float64
	RatePerHour float64
}

// ComputedRun pairs a stored run with its derived metrics.
type ComputedRun struct {
	Run     RunRecord
	Metrics RunMetrics
}
