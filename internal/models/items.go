package models

import (
	"regexp"
	"strconv"
	"strings"
)

// ItemQuantity is one parsed entry of an acquired-item list.
type ItemQuantity struct {
	Name     string
	Quantity int
}

var (
	itemEntryRe = regexp.MustCompile(`(.+?)\*\s*(\d+)?`)
	starTabRe   = regexp.MustCompile(`\*\t(\d+)`)
)

// ParseItems parses a free-form acquired-item string into (name, quantity)
// entries. The in-game inventory copies items as "name*\tqty" separated by
// tabs or semicolons; entries without a quantity default to 1. Repeated names
// are kept as separate entries; callers that need totals aggregate themselves.
func ParseItems(itemText string) []ItemQuantity {
	// "*<tab>qty" becomes "* qty" so the tab normalization below does not
	// split a quantity away from its item.
	normalized := starTabRe.ReplaceAllString(itemText, "* $1")
	normalized = strings.ReplaceAll(normalized, "\t", ";")
	normalized = strings.ReplaceAll(normalized, ";;", ";")
	normalized = strings.ReplaceAll(normalized, "; ;", ";")

	var items []ItemQuantity
	for _, entry := range strings.Split(normalized, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if m := itemEntryRe.FindStringSubmatch(entry); m != nil {
			name := cleanItemName(m[1])
			qty := 1
			if m[2] != "" {
				if n, err := strconv.Atoi(m[2]); err == nil {
					qty = n
				}
			}
			items = append(items, ItemQuantity{Name: name, Quantity: qty})
			continue
		}

		items = append(items, ItemQuantity{Name: cleanItemName(entry), Quantity: 1})
	}
	return items
}

// cleanItemName strips the copy artifacts ('*' markers, surrounding space)
// so the name matches the item catalog.
func cleanItemName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "*", ""))
}
