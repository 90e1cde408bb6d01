package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veyl/abyssal-tracker-tui/internal/gamelog"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
)

// EventType identifies what a tailer event describes.
type EventType int

const (
	// EventRunStarted fires when the subject enters abyssal deadspace.
	EventRunStarted EventType = iota
	// EventRunCompleted fires when a run finishes with known boundaries.
	EventRunCompleted
	// EventFileSwitched fires when the tailer attaches to a different log file.
	EventFileSwitched
	// EventLocationChanged fires on a normal-space system change.
	EventLocationChanged
)

// Event is a single notification from the live tailer. Start and End are in
// the reporting zone and only meaningful for run events.
type Event struct {
	Type      EventType
	Start     time.Time
	End       time.Time
	File      string
	Character string
	Location  LocationInfo
}

// watchDebounce coalesces bursts of filesystem events into one reselection.
const watchDebounce = 100 * time.Millisecond

// Tailer follows the most recent local chat log for a character, feeding new
// lines through the run boundary machine. It owns exactly one goroutine pair
// (poll loop and watch loop); all mutable tail state sits behind one mutex.
type Tailer struct {
	source       *gamelog.Source
	character    string // configured preference, "" means first sniffed
	language     string // configured language, "" means detect per file
	pollInterval time.Duration

	mu        sync.Mutex
	file      string
	patterns  gamelog.PatternSet
	lineCount int
	tracker   *RunBoundaryTracker
	sniffed   string // character of the attached file

	watcher  *fsnotify.Watcher
	events   chan Event
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTailer creates a tailer over logsPath. The character name and language
// may be empty; both are then detected from the log files themselves.
func NewTailer(logsPath, character, language string, pollInterval time.Duration) *Tailer {
	t := &Tailer{
		source:       gamelog.NewSource(logsPath),
		character:    character,
		language:     language,
		pollInterval: pollInterval,
		events:       make(chan Event, 16),
		stopChan:     make(chan struct{}),
	}
	t.tracker = NewRunBoundaryTracker(t.handleRunStarted, t.handleRunCompleted)
	return t
}

// Events returns the tailer's notification channel. The channel is never
// closed; consumers stop reading after Stop.
func (t *Tailer) Events() <-chan Event {
	return t.events
}

// Start attaches the directory watcher and launches the poll loop.
func (t *Tailer) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating log watcher: %w", err)
	}
	if err := watcher.Add(t.source.LogsPath); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", t.source.LogsPath, err)
	}
	t.watcher = watcher

	go t.pollLoop()
	go t.watchLoop()

	logger.Info("log tailer started",
		"path", t.source.LogsPath,
		"poll_interval", t.pollInterval.String())
	return nil
}

// Stop terminates the loops and releases the watcher. Safe to call twice.
func (t *Tailer) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
		if t.watcher != nil {
			t.watcher.Close()
		}
	})
}

// CurrentFile returns the path currently tailed, or "" before attachment.
func (t *Tailer) CurrentFile() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file
}

// Character returns the character whose log is being tailed.
func (t *Tailer) Character() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.character != "" {
		return t.character
	}
	return t.sniffed
}

// Location returns the last known position from the boundary machine.
func (t *Tailer) Location() LocationInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracker.Location()
}

// Inside reports whether a run is currently in progress.
func (t *Tailer) Inside() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracker.Inside()
}

// SessionRunCount returns runs completed since the tailer started.
func (t *Tailer) SessionRunCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracker.RunCount()
}

func (t *Tailer) pollLoop() {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	t.poll()
	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			t.poll()
		}
	}
}

func (t *Tailer) watchLoop() {
	var debounce *time.Timer
	for {
		select {
		case <-t.stopChan:
			return
		case ev, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// A new log file appearing usually means the client rolled over;
			// coalesce the burst and reselect once.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, t.poll)
		case err, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("log watcher error", "error", err)
		}
	}
}

// poll selects the freshest matching file and processes lines appended since
// the previous pass.
func (t *Tailer) poll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.selectFileLocked()
	if t.file == "" {
		return
	}

	lines, err := t.source.ReadLines(t.file)
	if err != nil {
		logger.Warn("tailed log unreadable, detaching", "file", t.file, "error", err)
		t.tracker.Reset()
		t.file = ""
		return
	}
	if len(lines) < t.lineCount {
		logger.Warn("tailed log truncated, rereading",
			"file", t.file,
			"had", t.lineCount,
			"now", len(lines))
		t.lineCount = 0
	}
	for _, line := range lines[t.lineCount:] {
		ev := gamelog.Classify(line, t.patterns)
		if ev == nil {
			continue
		}
		t.tracker.Process(*ev)
		if !ev.IsAnomalous {
			t.sendEvent(Event{
				Type:     EventLocationChanged,
				Location: t.tracker.Location(),
			})
		}
	}
	t.lineCount = len(lines)
}

// selectFileLocked attaches to the best candidate log if it differs from the
// current one. Callers hold t.mu.
func (t *Tailer) selectFileLocked() {
	candidates := t.source.FindCandidates()
	if len(candidates) == 0 {
		return
	}

	var chosen, character string
	if t.character != "" {
		// Newest file whose header names the configured character.
		sorted := t.source.SortByModTime(candidates)
		for i := len(sorted) - 1; i >= 0; i-- {
			if t.source.SniffCharacter(sorted[i]) == t.character {
				chosen = sorted[i]
				character = t.character
				break
			}
		}
	} else {
		chosen = t.source.SelectLatest(candidates)
		if chosen != "" {
			character = t.source.SniffCharacter(chosen)
		}
	}
	if chosen == "" || chosen == t.file {
		return
	}

	// A run cannot span log files; any in-progress run is abandoned.
	t.tracker.Reset()
	t.file = chosen
	t.sniffed = character

	if t.language != "" {
		t.patterns = gamelog.Patterns(t.language)
	} else {
		t.patterns = gamelog.Patterns(t.source.DetectFileLanguage(chosen))
	}

	// Attach at end of file. Historical content belongs to the history
	// scanner, not the live tail.
	lines, err := t.source.ReadLines(chosen)
	if err != nil {
		logger.Warn("selected log unreadable", "file", chosen, "error", err)
		t.file = ""
		return
	}
	t.lineCount = len(lines)

	logger.Info("attached to log file",
		"file", chosen,
		"character", character,
		"language", t.patterns.Language,
		"skipped_lines", t.lineCount)
	t.sendEvent(Event{
		Type:      EventFileSwitched,
		File:      chosen,
		Character: character,
	})
}

func (t *Tailer) handleRunStarted(start time.Time) {
	t.sendEvent(Event{Type: EventRunStarted, Start: start})
}

func (t *Tailer) handleRunCompleted(start, end time.Time) {
	t.sendEvent(Event{Type: EventRunCompleted, Start: start, End: end})
}

// sendEvent delivers without blocking; the oldest queued event is dropped
// when the consumer lags.
func (t *Tailer) sendEvent(ev Event) {
	select {
	case t.events <- ev:
	default:
		select {
		case <-t.events:
		default:
		}
		select {
		case t.events <- ev:
		default:
		}
	}
}
