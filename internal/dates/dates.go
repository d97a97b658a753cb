// Package dates provides parsing and ordering of free-text resume date ranges.
package dates

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Range holds the resolved bounds of a date-range string.
// Either bound may be nil when the text is malformed or missing.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange parses date-range strings of the form "MM/YYYY",
// "MM/YYYY - MM/YYYY" or "MM/YYYY - Present" (case-insensitive).
// "Present" resolves to the current date at call time so that ongoing
// entries sort first. A single "MM/YYYY" is treated as both start and
// end, with the end resolved to the last day of that month.
// Malformed input yields a Range with both bounds nil.
func ParseRange(dateStr string) Range {
	if strings.TrimSpace(dateStr) == "" {
		return Range{}
	}

	parts := strings.Split(dateStr, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var r Range
	if len(parts) > 0 && parts[0] != "" {
		if month, year, ok := parseMonthYear(parts[0]); ok {
			start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			r.Start = &start
		}
	}

	if len(parts) > 1 && parts[1] != "" {
		if strings.EqualFold(parts[1], "present") {
			now := time.Now()
			r.End = &now
		} else if month, year, ok := parseMonthYear(parts[1]); ok {
			// Day 0 of the next month is the last day of this month.
			end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
			r.End = &end
		}
	}

	if len(parts) == 1 && r.Start != nil && r.End == nil {
		end := time.Date(r.Start.Year(), r.Start.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		r.End = &end
	}

	return r
}

// parseMonthYear parses a "MM/YYYY" token.
func parseMonthYear(s string) (month, year int, ok bool) {
	fields := strings.Split(s, "/")
	if len(fields) != 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return month, year, true
}

// Dated is implemented by resume entities that carry a date-range string.
type Dated interface {
	DateString() string
}

// SortByEndDateDesc returns a new slice ordered reverse-chronologically.
// Items with a resolvable end date sort before items without one; among
// resolvable items the order is descending end date, tie-broken by
// descending start date. Items whose dates cannot be resolved keep their
// relative order (stable sort).
func SortByEndDateDesc[T any](items []T, dateOf func(T) string) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	ranges := make([]Range, len(sorted))
	for i := range sorted {
		ranges[i] = ParseRange(dateOf(sorted[i]))
	}
	idx := make([]int, len(sorted))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(x, y int) bool {
		a, b := ranges[idx[x]], ranges[idx[y]]
		return lessDesc(a, b)
	})

	out := make([]T, len(sorted))
	for i, j := range idx {
		out[i] = sorted[j]
	}
	return out
}

// lessDesc reports whether a should sort before b in reverse-chronological order.
func lessDesc(a, b Range) bool {
	if a.End == nil && b.End != nil {
		return false
	}
	if a.End != nil && b.End == nil {
		return true
	}
	if a.End == nil && b.End == nil {
		// Fall back to whatever partial start dates exist.
		if a.Start == nil && b.Start != nil {
			return false
		}
		if a.Start != nil && b.Start == nil {
			return true
		}
		if a.Start == nil && b.Start == nil {
			return false
		}
		return a.Start.After(*b.Start)
	}

	if !a.End.Equal(*b.End) {
		return a.End.After(*b.End)
	}

	if a.Start == nil && b.Start != nil {
		return false
	}
	if a.Start != nil && b.Start == nil {
		return true
	}
	if a.Start == nil && b.Start == nil {
		return false
	}
	return a.Start.After(*b.Start)
}
