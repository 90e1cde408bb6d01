// Package gamelog locates EVE chat log files and classifies their lines.
package gamelog

import "strings"

// PatternSet holds the language-specific markers used to recognize a
// "location changed" line and the filename shape of that language's local
// chat logs. Pattern sets are immutable; the active one is chosen per file.
type PatternSet struct {
	Language string
	// Prefix must appear in a line for it to count as a location change.
	Prefix string
	// Suffix must also appear; empty means no suffix is required.
	Suffix string
	// Sentinel is the location name the client logs while inside abyssal
	// deadspace (exact match).
	Sentinel string
	// FileGlob matches this language's local chat log filenames.
	FileGlob string
}

// DefaultLanguage is used when detection finds no recognizable prefix.
const DefaultLanguage = "ko"

// patternSets are the supported log languages. The client writes chat logs in
// the UI language, so both the markers and the filenames differ per language.
var patternSets = map[string]PatternSet{
	"ko": {
		Language: "ko",
		Prefix:   "이브 시스템 > 지역 : ",
		Suffix:   "채널로 변경",
		Sentinel: "알 수 없음",
		FileGlob: "지역_*.txt",
	},
	"en": {
		Language: "en",
		Prefix:   "EVE System > Channel changed to Local : ",
		Suffix:   "",
		Sentinel: "Unknown",
		FileGlob: "Local_*.txt",
	},
}

// Patterns returns the pattern set for a language, falling back to the
// default language when the requested one is unknown.
func Patterns(language string) PatternSet {
	if ps, ok := patternSets[language]; ok {
		return ps
	}
	return patternSets[DefaultLanguage]
}

// AllPatterns returns every supported pattern set.
func AllPatterns() []PatternSet {
	sets := make([]PatternSet, 0, len(patternSets))
	for _, ps := range patternSets {
		sets = append(sets, ps)
	}
	return sets
}

// DetectLanguage scans the first lines of a decoded log for a recognizable
// location-change prefix and returns that language, or the default when none
// matches.
func DetectLanguage(lines []string) string {
	for i, line := range lines {
		if i >= sniffLineLimit {
			break
		}
		for lang, ps := range patternSets {
			if ps.Prefix != "" && strings.Contains(line, ps.Prefix) {
				return lang
			}
		}
	}
	return DefaultLanguage
}
