package engine

import (
	"fmt"
	"strings"
	"time"
)

// windowContains reports whether date falls within an effective window.
// The start date is inclusive; a nil end date means the window is
// open-ended; a non-nil end date is inclusive.
func windowContains(from time.Time, to *time.Time, date time.Time) bool {
	if date.Before(from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

// NormalizeCountry canonicalizes a country code for comparison.
// Matching is exact after normalization; no regional-grouping
// inference is performed.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// stagingPhaseYears maps a staging category letter to the number of
// years after a preferential rate's effective date at which the listed
// (final) rate is fully phased in. Category A rates apply immediately.
var stagingPhaseYears = map[string]int{
	"A": 0,
	"B": 3,
	"C": 5,
	"D": 7,
	"E": 10,
}

// resolveStaging decides whether a preferential record's listed rate is
// in force on the calculation date. The listed rate is the final,
// fully-phased value; before the phase-in completes the correct interim
// rate cannot be derived from the record alone, so rather than guessing
// an interpolated number the record is excluded with a warning.
// Unknown categories are likewise excluded.
func resolveStaging(category string, effectiveFrom, date time.Time, agreementCode string) (bool, string) {
	years, ok := stagingPhaseYears[strings.ToUpper(strings.TrimSpace(category))]
	if !ok {
		return false, fmt.Sprintf("preferential rate under %s excluded: unknown staging category %q", agreementCode, category)
	}
	phasedIn := effectiveFrom.AddDate(years, 0, 0)
	if date.Before(phasedIn) {
		return false, fmt.Sprintf("preferential rate under %s excluded: staging category %s not fully phased in until %s", agreementCode, category, phasedIn.Format("2006-01-02"))
	}
	return true, ""
}
