package types

import "sort"

// Span is a half-open [Start, End) range of minutes on a linear axis anchored at
// midnight of a calendar date. Values run from 0 to 2*MinutesPerDay so that a wrap
// interval can be represented without splitting it.
type Span struct {
	Start int
	End   int
}

// DaySpan covers the calendar date itself, from midnight to midnight
var DaySpan = Span{Start: 0, End: MinutesPerDay}

// Len returns the number of minutes covered by the span
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no minutes
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Overlaps reports whether two spans share at least one minute
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}

// Contains reports whether other lies completely inside s
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Widen extends the span by n minutes on both sides, clamped to the axis
func (s Span) Widen(n int) Span {
	if n <= 0 {
		return s
	}
	start := s.Start - n
	if start < 0 {
		start = 0
	}
	end := s.End + n
	if end > 2*MinutesPerDay {
		end = 2 * MinutesPerDay
	}
	return Span{Start: start, End: end}
}

// Clip returns the part of s that lies inside bounds; the result may be empty
func (s Span) Clip(bounds Span) Span {
	out := Span{Start: max(s.Start, bounds.Start), End: min(s.End, bounds.End)}
	if out.End < out.Start {
		return Span{Start: out.Start, End: out.Start}
	}
	return out
}

// SortSpans orders spans by Start, then End
func SortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

// MergeSpans returns a sorted copy of spans where overlapping or touching spans are
// coalesced and empty spans are dropped
func MergeSpans(spans []Span) []Span {
	sorted := make([]Span, 0, len(spans))
	for _, s := range spans {
		if !s.IsEmpty() {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return []Span{}
	}
	SortSpans(sorted)

	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// SubtractSpans removes every obstacle from every base span.
// Each obstacle splits a base span into zero, one or two remaining pieces.
// The result is sorted and coalesced.
func SubtractSpans(base, obstacles []Span) []Span {
	base = MergeSpans(base)
	obstacles = MergeSpans(obstacles)

	result := make([]Span, 0, len(base))
	for _, b := range base {
		current := b.Start
		for _, o := range obstacles {
			if o.End <= current {
				continue
			}
			if o.Start >= b.End {
				break
			}
			if o.Start > current {
				result = append(result, Span{Start: current, End: o.Start})
			}
			current = o.End
			if current >= b.End {
				break
			}
		}
		if current < b.End {
			result = append(result, Span{Start: current, End: b.End})
		}
	}
	return MergeSpans(result)
}
