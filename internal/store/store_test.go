package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func reportingTime(day, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, models.ReportingZone)
}

func TestInsertAndListRuns(t *testing.T) {
	s := newTestStore(t)

	run := models.RunRecord{
		Start:    reportingTime(1, 10, 0),
		End:      reportingTime(1, 10, 18),
		Category: "T3 Firestorm",
		ItemText: "Large Crystal*3; Small Gem",
	}
	inserted, err := s.InsertRun(&run)
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if !inserted || run.ID == 0 {
		t.Fatalf("inserted=%v id=%d, want true with assigned id", inserted, run.ID)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if !got.Start.Equal(run.Start) || !got.End.Equal(run.End) {
		t.Errorf("boundaries = %v..%v, want %v..%v", got.Start, got.End, run.Start, run.End)
	}
	if got.Category != run.Category || got.ItemText != run.ItemText {
		t.Errorf("details = %q/%q, want %q/%q", got.Category, got.ItemText, run.Category, run.ItemText)
	}
	if got.DurationMinutes() != 18 {
		t.Errorf("duration = %v, want 18", got.DurationMinutes())
	}
}

func TestRunBoundariesRoundTripInReportingZone(t *testing.T) {
	s := newTestStore(t)

	run := models.RunRecord{Start: reportingTime(1, 10, 0), End: reportingTime(1, 10, 20)}
	if _, err := s.InsertRun(&run); err != nil {
		t.Fatal(err)
	}

	// The column must hold the formatted wall time, not a driver-converted
	// time.Time stringified as RFC3339 UTC.
	var raw string
	if err := s.QueryRow("SELECT start_time FROM runs WHERE id = ?", run.ID).Scan(&raw); err != nil {
		t.Fatalf("raw column read: %v", err)
	}
	if raw != "2025-06-01 10:00:00" {
		t.Fatalf("stored start_time = %q, want 2025-06-01 10:00:00", raw)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	got := runs[0].Start
	if !got.Equal(run.Start) {
		t.Errorf("start = %v, want %v", got, run.Start)
	}
	if _, offset := got.Zone(); offset != 9*60*60 {
		t.Errorf("start zone offset = %d, want +09:00", offset)
	}
	if got.Hour() != 10 {
		t.Errorf("start wall hour = %d, want 10", got.Hour())
	}
}

func TestInsertRunDeduplicates(t *testing.T) {
	s := newTestStore(t)

	run := models.RunRecord{Start: reportingTime(1, 10, 0), End: reportingTime(1, 10, 20)}
	if inserted, err := s.InsertRun(&run); err != nil || !inserted {
		t.Fatalf("first insert: %v/%v", inserted, err)
	}

	// Re-importing history replays identical boundaries.
	dup := models.RunRecord{Start: run.Start, End: run.End, Category: "T1 Calm"}
	inserted, err := s.InsertRun(&dup)
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if inserted {
		t.Error("duplicate boundaries were inserted again")
	}

	count, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestUpdateRunDetails(t *testing.T) {
	s := newTestStore(t)

	run := models.RunRecord{Start: reportingTime(1, 10, 0), End: reportingTime(1, 10, 20)}
	if _, err := s.InsertRun(&run); err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateRunDetails(run.ID, "T4 Raging Darkness", "Zero-Point Condensate*12"); err != nil {
		t.Fatalf("UpdateRunDetails: %v", err)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Category != "T4 Raging Darkness" || runs[0].ItemText != "Zero-Point Condensate*12" {
		t.Errorf("after update = %+v", runs[0])
	}

	if err := s.UpdateRunDetails(99999, "x", "y"); err == nil {
		t.Error("updating a missing run did not fail")
	}
}

func TestListRunsByDate(t *testing.T) {
	s := newTestStore(t)

	for day := 1; day <= 3; day++ {
		run := models.RunRecord{Start: reportingTime(day, 9, 0), End: reportingTime(day, 9, 20)}
		if _, err := s.InsertRun(&run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRunsByDate("2025-06-02")
	if err != nil {
		t.Fatalf("ListRunsByDate: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs for 2025-06-02, want 1", len(runs))
	}
	if runs[0].Date() != "2025-06-02" {
		t.Errorf("run date = %s", runs[0].Date())
	}
}

func TestLatestRun(t *testing.T) {
	s := newTestStore(t)

	latest, err := s.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun on empty store: %v", err)
	}
	if latest != nil {
		t.Fatalf("empty store returned %+v", latest)
	}

	for day := 1; day <= 3; day++ {
		run := models.RunRecord{Start: reportingTime(day, 9, 0), End: reportingTime(day, 9, 20)}
		if _, err := s.InsertRun(&run); err != nil {
			t.Fatal(err)
		}
	}

	latest, err = s.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil || latest.Date() != "2025-06-03" {
		t.Errorf("latest = %+v, want run on 2025-06-03", latest)
	}
}

func TestDeleteRun(t *testing.T) {
	s := newTestStore(t)

	run := models.RunRecord{Start: reportingTime(1, 10, 0), End: reportingTime(1, 10, 20)}
	if _, err := s.InsertRun(&run); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(run.ID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	count, err := s.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after delete = %d, want 0", count)
	}
}
