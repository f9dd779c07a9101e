package availability

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Compose нарезает свободные отрезки даты на слоты длительностью duration.
// Первый кандидат - начало отрезка, округленное вверх до сетки granularity.
// Слоты не выходят за полночь: слот, заканчивающийся ровно в полночь, имеет end = 0.
func Compose(free []types.Span, duration, granularity int) []types.Interval {
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}

	slots := make([]types.Interval, 0)
	if duration <= 0 || duration >= types.MinutesPerDay {
		return slots
	}

	for _, s := range free {
		span := s.Clip(types.DaySpan)
		current := ceilToGrid(span.Start, granularity)
		for current+duration <= span.End {
			slot, err := types.IntervalFromSpan(types.Span{Start: current, End: current + duration})
			if err == nil {
				slots = append(slots, slot)
			}
			current += granularity
		}
	}

	return slots
}

// ComposeMultiple вызывает Compose для каждой длительности
func ComposeMultiple(free []types.Span, durations []int, granularity int) map[int][]types.Interval {
	result := make(map[int][]types.Interval, len(durations))
	for _, d := range durations {
		result[d] = Compose(free, d, granularity)
	}
	return result
}

func ceilToGrid(v, granularity int) int {
	if rem := v % granularity; rem != 0 {
		return v + granularity - rem
	}
	return v
}
