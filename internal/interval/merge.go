// Package interval computes total professional experience by merging
// overlapping employment periods. The reference time is an explicit
// parameter so the computation stays deterministic and unit-testable.
package interval

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-profiler/internal/normalize"
	"github.com/jonathan/resume-profiler/internal/types"
)

// month is a calendar month at month precision: year*12 + (month-1).
type month int

// span is a resolved employment period in month coordinates.
type span struct {
	start month
	end   month
}

// Exclusion reports an experience entry left out of the duration
// computation. Index points into the slice passed to TotalMonths; the entry
// itself stays in the record.
type Exclusion struct {
	Index  int
	Reason string
}

// TotalMonths returns the total non-overlapping elapsed months across the
// given experience entries, resolved against now, along with the entries
// excluded from the computation. Concurrent positions count once:
// overlapping intervals are merged before summing.
//
// Entries without a parseable start date, with a present but unparseable end
// date, or whose start is after the resolved end, are excluded and reported;
// callers decide whether to surface them.
func TotalMonths(entries []types.ExperienceEntry, now time.Time) (int, []Exclusion) {
	nowMonth := toMonth(int(now.Year()), int(now.Month()))

	var excluded []Exclusion
	spans := make([]span, 0, len(entries))
	for i, entry := range entries {
		start, ok := parseMonth(entry.StartDate)
		if !ok {
			excluded = append(excluded, Exclusion{Index: i, Reason: "no parseable start date"})
			continue
		}
		end, ok := resolveEnd(entry, nowMonth)
		if !ok {
			excluded = append(excluded, Exclusion{Index: i, Reason: "unparseable end date"})
			continue
		}
		if start > end {
			excluded = append(excluded, Exclusion{Index: i, Reason: "start date after end date"})
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}
	if len(spans) == 0 {
		return 0, excluded
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	total := 0
	merged := spans[0]
	for _, s := range spans[1:] {
		if s.start <= merged.end {
			if s.end > merged.end {
				merged.end = s.end
			}
			continue
		}
		total += int(merged.end - merged.start)
		merged = s
	}
	total += int(merged.end - merged.start)

	if total < 0 {
		return 0, excluded
	}
	return total, excluded
}

// YearsFromMonths converts merged months to whole years, rounding down.
func YearsFromMonths(months int) int {
	if months < 0 {
		return 0
	}
	return months / 12
}

// resolveEnd picks the end month for an entry: an explicitly current
// position, a "present" or missing end date, both resolve to now
// (default-open interval). A present but unparseable end date is not
// resolved; treating it as open-ended would silently stretch a closed
// historical interval to now.
func resolveEnd(entry types.ExperienceEntry, nowMonth month) (month, bool) {
	if entry.IsCurrent != nil && *entry.IsCurrent {
		return nowMonth, true
	}
	if entry.EndDate == nil || strings.EqualFold(*entry.EndDate, normalize.PresentLiteral) {
		return nowMonth, true
	}
	return parseMonth(entry.EndDate)
}

// parseMonth reads a normalized YYYY-MM date (or bare YYYY, taken as
// January) into month coordinates.
func parseMonth(date *string) (month, bool) {
	if date == nil {
		return 0, false
	}
	s := *date
	switch len(s) {
	case 7: // YYYY-MM
		if s[4] != '-' {
			return 0, false
		}
		year, ok1 := atoi(s[:4])
		mon, ok2 := atoi(s[5:])
		if !ok1 || !ok2 || mon < 1 || mon > 12 {
			return 0, false
		}
		return toMonth(year, mon), true
	case 4: // YYYY
		year, ok := atoi(s)
		if !ok {
			return 0, false
		}
		return toMonth(year, 1), true
	default:
		return 0, false
	}
}

func toMonth(year, mon int) month {
	return month(year*12 + mon - 1)
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
