package tracker

import (
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/gamelog"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// HistoryScanner replays existing log files front to back and extracts every
// completed run. Runs that a file ends inside of are discarded; only closed
// boundaries count.
type HistoryScanner struct {
	source    *gamelog.Source
	character string // "" means accept every file
	language  string // "" means detect per file
}

// NewHistoryScanner creates a scanner over logsPath, optionally restricted to
// one character's logs.
func NewHistoryScanner(logsPath, character, language string) *HistoryScanner {
	return &HistoryScanner{
		source:    gamelog.NewSource(logsPath),
		character: character,
		language:  language,
	}
}

// Scan walks all candidate files in ascending modification-time order and
// returns the completed runs grouped by start date in the reporting zone.
// Category and loot text are unknown for replayed runs and left empty.
func (h *HistoryScanner) Scan() (map[string][]models.RunRecord, error) {
	files := h.source.SortByModTime(h.source.FindCandidates())
	byDate := make(map[string][]models.RunRecord)
	total := 0

	for _, file := range files {
		runs := h.scanFile(file)
		for _, run := range runs {
			byDate[run.Date()] = append(byDate[run.Date()], run)
		}
		total += len(runs)
	}

	logger.Info("history scan complete",
		"files", len(files),
		"runs", total,
		"days", len(byDate))
	return byDate, nil
}

// scanFile extracts completed runs from a single file. Each file gets a fresh
// boundary machine; runs never span files.
func (h *HistoryScanner) scanFile(path string) []models.RunRecord {
	if h.character != "" && h.source.SniffCharacter(path) != h.character {
		return nil
	}

	lines, err := h.source.ReadLines(path)
	if err != nil {
		logger.Warn("skipping unreadable log", "file", path, "error", err)
		return nil
	}

	patterns := gamelog.Patterns(h.language)
	if h.language == "" {
		patterns = gamelog.Patterns(gamelog.DetectLanguage(lines))
	}

	var runs []models.RunRecord
	machine := NewRunBoundaryTracker(nil, func(start, end time.Time) {
		runs = append(runs, models.RunRecord{Start: start, End: end})
	})
	for _, line := range lines {
		if ev := gamelog.Classify(line, patterns); ev != nil {
			machine.Process(*ev)
		}
	}
	// An open run at end of file has no boundary and is dropped by never
	// having been emitted.
	return runs
}
