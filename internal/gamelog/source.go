package gamelog

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/logger"
)

// listenerRe extracts the character name from the log header's
// "Listener: <name>" line.
var listenerRe = regexp.MustCompile(`Listener:\s*(.+)`)

// Source discovers local chat log files under a log directory. It is
// read-only; tailing and replay are built on top of it.
type Source struct {
	LogsPath string
}

// NewSource creates a log source rooted at logsPath.
func NewSource(logsPath string) *Source {
	return &Source{LogsPath: logsPath}
}

// FindCandidates returns every file in the log root matching any supported
// language's local chat log filename pattern.
func (s *Source) FindCandidates() []string {
	var files []string
	for _, ps := range AllPatterns() {
		matches, err := filepath.Glob(filepath.Join(s.LogsPath, ps.FileGlob))
		if err != nil {
			logger.Warn("bad log filename pattern", "glob", ps.FileGlob, "error", err)
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}

// SelectLatest returns the candidate with the most recent modification time.
// Ties are broken by lexical path order; the empty string means no candidate
// could be stat'ed.
func (s *Source) SelectLatest(paths []string) string {
	var (
		best      string
		bestMtime time.Time
	)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mtime := info.ModTime()
		if best == "" || mtime.After(bestMtime) || (mtime.Equal(bestMtime) && path < best) {
			best = path
			bestMtime = mtime
		}
	}
	return best
}

// SortByModTime returns the paths ordered by ascending modification time,
// dropping any that cannot be stat'ed. Used for historical replay.
func (s *Source) SortByModTime(paths []string) []string {
	type entry struct {
		path  string
		mtime time.Time
	}
	entries := make([]entry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path, info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].mtime.Equal(entries[j].mtime) {
			return entries[i].path < entries[j].path
		}
		return entries[i].mtime.Before(entries[j].mtime)
	})
	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.path
	}
	return sorted
}

// SniffCharacter reads the first lines of a log file and returns the value
// of its "Listener:" header, or "" when the header is absent or unreadable.
func (s *Source) SniffCharacter(path string) string {
	lines, err := readLogLines(path)
	if err != nil {
		return ""
	}
	for i, line := range lines {
		if i >= sniffLineLimit {
			break
		}
		if m := listenerRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// DetectFileLanguage detects the log language of a file from its content.
func (s *Source) DetectFileLanguage(path string) string {
	lines, err := readLogLines(path)
	if err != nil {
		return DefaultLanguage
	}
	return DetectLanguage(lines)
}

// ReadLines reads and decodes a whole log file into cleaned lines.
func (s *Source) ReadLines(path string) ([]string, error) {
	return readLogLines(path)
}
