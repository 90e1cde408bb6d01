package gamelog

import (
	"regexp"
	"strings"
	"time"

	"github.com/veyl/abyssal-tracker-tui/internal/models"
)

// timestampRe matches the bracketed timestamp the client writes on every
// line, tolerating padding spaces inside the brackets.
var timestampRe = regexp.MustCompile(`\[ *(\d{4}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2}) *\]`)

// timestampLayout is the in-log timestamp format. Log times are UTC.
const timestampLayout = "2006.01.02 15:04:05"

// Classify decides whether a cleaned log line is a location change and, if
// so, extracts the destination name and event time. Returns nil for lines
// that don't match or whose timestamp cannot be parsed.
func Classify(line string, ps PatternSet) *models.LocationEvent {
	if ps.Prefix == "" || !strings.Contains(line, ps.Prefix) {
		return nil
	}
	if ps.Suffix != "" && !strings.Contains(line, ps.Suffix) {
		return nil
	}

	_, rest, _ := strings.Cut(line, ps.Prefix)
	name := rest
	if ps.Suffix != "" {
		name, _, _ = strings.Cut(rest, ps.Suffix)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	m := timestampRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	ts, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(m[1]), time.UTC)
	if err != nil {
		return nil
	}

	return &models.LocationEvent{
		Timestamp:    ts,
		LocationName: name,
		IsAnomalous:  name == ps.Sentinel,
	}
}
