package types

import "fmt"

// Interval is a time-of-day window on a single calendar date.
// When End < Start the interval wraps: it runs from Start to midnight and continues
// into the next calendar date up to End.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// WholeDay is the clock-face shape of a full calendar date, [00:00, 23:59].
// Its span covers all 1440 minutes.
var WholeDay = Interval{Start: 0, End: MinutesPerDay - 1}

// NewInterval validates both endpoints
func NewInterval(start, end int) (Interval, error) {
	s, err := NewTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := NewTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// InRange reports whether t lies within [start, end] (inclusive), honouring wrap intervals
func InRange(t, start, end TimeOfDay) bool {
	if end < start {
		return t >= start || t <= end
	}
	return t >= start && t <= end
}

// Duration returns the length in minutes between start and end, honouring wrap intervals
func Duration(start, end TimeOfDay) int {
	if end < start {
		return (MinutesPerDay - int(start)) + int(end)
	}
	return int(end) - int(start)
}

// Wraps reports whether the interval crosses midnight
func (i Interval) Wraps() bool {
	return i.End < i.Start
}

// IsWholeDay reports whether the interval is the full-day shape
func (i Interval) IsWholeDay() bool {
	return i == WholeDay
}

// Duration returns the interval length in minutes
func (i Interval) Duration() int {
	return i.Span().Len()
}

// Contains reports whether t lies inside the interval (inclusive bounds)
func (i Interval) Contains(t TimeOfDay) bool {
	return InRange(t, i.Start, i.End)
}

// Overlaps reports whether two possibly-wrapping half-open intervals share any minute
func (i Interval) Overlaps(other Interval) bool {
	switch {
	case i.Wraps() && other.Wraps():
		// both contain midnight
		return true
	case i.Wraps():
		return overlapsWrapped(i, other)
	case other.Wraps():
		return overlapsWrapped(other, i)
	default:
		return i.Start < other.End && i.End > other.Start
	}
}

// overlapsWrapped checks plain interval p against wrap interval w = [w.Start, 1440) ∪ [0, w.End)
func overlapsWrapped(w, p Interval) bool {
	if p.Duration() == 0 {
		return false
	}
	return p.End > w.Start || p.Start < w.End
}

// Span maps the interval onto a linear minute axis anchored at midnight of its own date.
// A wrap interval ends past 1440, an interval ending at 00:00 ends at 1440.
func (i Interval) Span() Span {
	if i.IsWholeDay() {
		return Span{Start: 0, End: MinutesPerDay}
	}
	if i.Wraps() {
		return Span{Start: int(i.Start), End: MinutesPerDay + int(i.End)}
	}
	return Span{Start: int(i.Start), End: int(i.End)}
}

// String formats the interval as "HH:MM-HH:MM"
func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// IntervalFromSpan converts a span no longer than one day back to an Interval.
// A span that ends exactly at midnight is expressed as a wrap ending at 00:00,
// a span lying completely after midnight is folded onto the clock face.
func IntervalFromSpan(s Span) (Interval, error) {
	if s.Start < 0 || s.End < s.Start || s.End > 2*MinutesPerDay {
		return Interval{}, fmt.Errorf("%w: span [%d,%d)", ErrTimeOutOfRange, s.Start, s.End)
	}
	if s.Start >= MinutesPerDay {
		s = Span{Start: s.Start - MinutesPerDay, End: s.End - MinutesPerDay}
	}
	switch {
	case s.Start == 0 && s.End == MinutesPerDay:
		return WholeDay, nil
	case s.Len() >= MinutesPerDay:
		return Interval{}, fmt.Errorf("%w: span [%d,%d) is longer than a clock face", ErrTimeOutOfRange, s.Start, s.End)
	}
	return NewInterval(s.Start, s.End%MinutesPerDay)
}

// ClockIntervals splits spans at midnight and converts every piece to an Interval.
// Pieces before midnight are returned in day, pieces after it in overnight, both
// folded onto the clock face and sorted by start. A piece ending at midnight ends
// at 00:00, a full-day piece is WholeDay.
func ClockIntervals(spans []Span) (day, overnight []Interval) {
	day = make([]Interval, 0, len(spans))
	overnight = make([]Interval, 0)
	for _, s := range MergeSpans(spans) {
		if head := s.Clip(DaySpan); !head.IsEmpty() {
			iv, _ := IntervalFromSpan(head)
			day = append(day, iv)
		}
		if tail := s.Clip(Span{Start: MinutesPerDay, End: 2 * MinutesPerDay}); !tail.IsEmpty() {
			iv, _ := IntervalFromSpan(tail)
			overnight = append(overnight, iv)
		}
	}
	return day, overnight
}
