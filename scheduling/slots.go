package scheduling

// StartTimes returns every time a class of durationMinutes could start
// without touching a busy interval, quantized to stepMinutes boundaries.
// Each gap contributes its own lattice anchored at the gap's beginning; gaps
// shorter than the duration contribute nothing, so no partial overlap is
// ever offered. Results are chronological.
func StartTimes(busy []Interval, durationMinutes, stepMinutes int, dayStart, dayEnd TimeOfDay) []TimeOfDay {
	if durationMinutes <= 0 || stepMinutes <= 0 || dayStart >= dayEnd {
		return nil
	}
	var out []TimeOfDay
	for _, gap := range freeGaps(busy, dayStart, dayEnd) {
		if int(gap.End-gap.Start) < durationMinutes {
			continue
		}
		for start := gap.Start; start+TimeOfDay(durationMinutes) <= gap.End; start += TimeOfDay(stepMinutes) {
			out = append(out, start)
		}
	}
	return out
}

// StartRanges returns, for each gap large enough for durationMinutes, the
// inclusive range of valid start times [gapStart, gapEnd-duration]. Used for
// one-off occurrences that may start at arbitrary granularity. A busy
// interval starting after the nominal dayEnd pushes the day's end out to
// that interval's end, so a late-running occurrence does not truncate the
// day.
func StartRanges(busy []Interval, durationMinutes int, dayStart, dayEnd TimeOfDay) []Interval {
	if durationMinutes <= 0 || dayStart >= dayEnd {
		return nil
	}
	end := dayEnd
	for _, iv := range busy {
		if iv.Start > dayEnd && iv.End > end {
			end = iv.End
		}
	}
	var out []Interval
	for _, gap := range freeGaps(busy, dayStart, end) {
		if int(gap.End-gap.Start) < durationMinutes {
			continue
		}
		out = append(out, Interval{Start: gap.Start, End: gap.End - TimeOfDay(durationMinutes)})
	}
	return out
}

// FormatTimes renders a slot list as "HH:MM" strings for the wire.
func FormatTimes(times []TimeOfDay) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.String())
	}
	return out
}

// FormatRanges renders start ranges as ["HH:MM", "HH:MM"] pairs for the wire.
func FormatRanges(ranges []Interval) [][2]string {
	out := make([][2]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, [2]string{r.Start.String(), r.End.String()})
	}
	return out
}
