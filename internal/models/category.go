package models

import (
	"fmt"
	"strings"
)

// tierNames maps the short tier label of a run category to the filament name
// prefix of that tier.
var tierNames = map[string]string{
	"T1": "Calm",
	"T2": "Agitated",
	"T3": "Fierce",
	"T4": "Raging",
	"T5": "Chaotic",
	"T6": "Cataclysmic",
}

// SplitCategory decomposes a category label into its tier and weather tokens.
// Only labels of exactly the "TIER WEATHER" shape are decomposable; anything
// else returns ok=false and is excluded from category grouping.
func SplitCategory(category string) (tier, weather string, ok bool) {
	parts := strings.Fields(category)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FilamentName derives the toll item required to start a run of the given
// category, e.g. "T3 Firestorm" -> "Fierce Firestorm Filament". Unrecognized
// categories return ok=false; their entry cost is treated as zero.
func FilamentName(category string) (string, bool) {
	tier, weather, ok := SplitCategory(category)
	if !ok {
		return "", false
	}
	name, ok := tierNames[tier]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %s Filament", name, weather), true
}
