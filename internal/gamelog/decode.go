package gamelog

import (
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLineLimit bounds how many initial lines language detection and
// character sniffing look at.
const sniffLineLimit = 20

// decodeUTF16LE decodes raw log bytes. EVE chat logs are UTF-16LE with a BOM;
// malformed sequences decode to the replacement rune rather than failing.
func decodeUTF16LE(raw []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	// The UTF-16 decoder substitutes rather than errors on bad input; a
	// residual error means truncated trailing bytes, which we drop.
	decoded, _, _ := transform.Bytes(decoder, raw)
	return string(decoded)
}

// splitLines turns decoded log content into trimmed lines with the BOM and
// surrounding whitespace removed. The client terminates every line, so a
// trailing newline must not count as an extra empty line; tail cursors are
// line counts and would otherwise skip the next appended line.
func splitLines(content string) []string {
	rawLines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if n := len(rawLines); n > 0 && rawLines[n-1] == "" {
		rawLines = rawLines[:n-1]
	}
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, "\uFEFF")))
	}
	return lines
}

// readLogLines reads and decodes a whole log file into cleaned lines.
func readLogLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(decodeUTF16LE(raw)), nil
}
