package scheduling

import "sort"

// Interval is a half-open [Start, End) busy span within one day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Busy builds an interval from a start time and a duration in minutes.
func Busy(start TimeOfDay, durationMinutes int) Interval {
	return Interval{Start: start, End: start + TimeOfDay(durationMinutes)}
}

// normalize sorts intervals by start and merges any that overlap or abut, so
// gap computation only ever sees disjoint spans.
func normalize(busy []Interval) []Interval {
	if len(busy) == 0 {
		return nil
	}
	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// freeGaps returns the complement of the busy intervals within
// [dayStart, dayEnd]. Busy time outside the day bounds is clamped away;
// zero-width gaps are dropped.
func freeGaps(busy []Interval, dayStart, dayEnd TimeOfDay) []Interval {
	var gaps []Interval
	cursor := dayStart
	for _, iv := range normalize(busy) {
		if iv.End <= cursor {
			continue
		}
		if iv.Start >= dayEnd {
			break
		}
		if iv.Start > cursor {
			gaps = append(gaps, Interval{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < dayEnd {
		gaps = append(gaps, Interval{Start: cursor, End: dayEnd})
	}
	return gaps
}
