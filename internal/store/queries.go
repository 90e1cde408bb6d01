package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// InsertRun persists a completed run. Runs are identified by their exact
// boundaries, so re-importing the same history is a no-op; the returned bool
// reports whether a new row was written.
func (s *Store) InsertRun(run *models.RunRecord) (bool, error) {
	query := `
		INSERT OR IGNORE INTO runs (start_time, end_time, category, item_text)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.ExecContext(context.Background(), query,
		run.Start.Format(timeLayout),
		run.End.Format(timeLayout),
		run.Category,
		nullString(run.ItemText),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return true, nil
}

// UpdateRunDetails sets the category and loot text of an existing run.
func (s *Store) UpdateRunDetails(id int64, category, itemText string) error {
	query := `UPDATE runs SET category = ?, item_text = ? WHERE id = ?`
	result, err := s.ExecContext(context.Background(), query, category, nullString(itemText), id)
	if err != nil {
		return fmt.Errorf("failed to update run %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %d not found", id)
	}
	return nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(id int64) error {
	_, err := s.ExecContext(context.Background(), "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	return nil
}

// ListRuns returns every stored run in chronological order.
func (s *Store) ListRuns() ([]models.RunRecord, error) {
	query := `
		SELECT id, start_time, end_time, category, item_text
		FROM runs
		ORDER BY start_time ASC
	`
	rows, err := s.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRuns(rows)
}

// ListRunsByDate returns the runs whose start falls on the given reporting
// zone date, formatted "2006-01-02".
func (s *Store) ListRunsByDate(date string) ([]models.RunRecord, error) {
	query := `
		SELECT id, start_time, end_time, category, item_text
		FROM runs
		WHERE date(start_time) = ?
		ORDER BY start_time ASC
	`
	rows, err := s.QueryContext(context.Background(), query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for %s: %w", date, err)
	}
	defer func() { _ = rows.Close() }()

	return scanRuns(rows)
}

// LatestRun returns the most recent run, or nil when the store is empty.
func (s *Store) LatestRun() (*models.RunRecord, error) {
	query := `
		SELECT id, start_time, end_time, category, item_text
		FROM runs
		ORDER BY start_time DESC
		LIMIT 1
	`
	rows, err := s.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs, err := scanRuns(rows)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// CountRuns returns the number of stored runs.
func (s *Store) CountRuns() (int, error) {
	var count int
	err := s.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

func scanRuns(rows *sql.Rows) ([]models.RunRecord, error) {
	var runs []models.RunRecord
	for rows.Next() {
		var (
			run        models.RunRecord
			start, end string
			itemText   sql.NullString
		)
		if err := rows.Scan(&run.ID, &start, &end, &run.Category, &itemText); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var err error
		if run.Start, err = time.ParseInLocation(timeLayout, start, models.ReportingZone); err != nil {
			return nil, fmt.Errorf("failed to parse run start %q: %w", start, err)
		}
		if run.End, err = time.ParseInLocation(timeLayout, end, models.ReportingZone); err != nil {
			return nil, fmt.Errorf("failed to parse run end %q: %w", end, err)
		}
		run.ItemText = itemText.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
