package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func starts(slots []types.Interval) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Minutes())
	}
	return out
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name        string
		free        []types.Span
		duration    int
		granularity int
		want        []int
	}{
		{
			name:        "monday scenario",
			free:        []types.Span{{Start: 540, End: 600}, {Start: 660, End: 1080}},
			duration:    60,
			granularity: 30,
			want:        []int{540, 660, 720, 780, 840, 900, 960, 1020},
		},
		{
			name:        "start rounded up to grid",
			free:        []types.Span{{Start: 545, End: 700}},
			duration:    60,
			granularity: 30,
			want:        []int{570, 600},
		},
		{
			name:        "interval shorter than duration",
			free:        []types.Span{{Start: 540, End: 580}},
			duration:    60,
			granularity: 30,
			want:        []int{},
		},
		{
			name:        "default granularity",
			free:        []types.Span{{Start: 600, End: 720}},
			duration:    60,
			granularity: 0,
			want:        []int{600, 630, 660},
		},
		{
			name:        "after-midnight tail is not offered",
			free:        []types.Span{{Start: 1380, End: 1500}},
			duration:    60,
			granularity: 30,
			want:        []int{1380},
		},
		{
			name:        "tail only",
			free:        []types.Span{{Start: 1470, End: 1560}},
			duration:    60,
			granularity: 30,
			want:        []int{},
		},
		{
			name:        "full day slot is not offered",
			free:        []types.Span{{Start: 0, End: 1440}},
			duration:    1440,
			granularity: 30,
			want:        []int{},
		},
		{
			name:     "no free time",
			free:     nil,
			duration: 60,
			want:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, starts(Compose(tt.free, tt.duration, tt.granularity)))
		})
	}
}

func TestCompose_MidnightSlotShape(t *testing.T) {
	slots := Compose([]types.Span{{Start: 1320, End: 1500}}, 60, 30)

	assert.Equal(t, []types.Interval{
		{Start: 1320, End: 1380},
		{Start: 1350, End: 1410},
		{Start: 1380, End: 0},
	}, slots)
	for _, slot := range slots {
		assert.LessOrEqual(t, slot.Span().End, types.MinutesPerDay)
	}
}

func TestCompose_MergedRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []types.Interval
	}{
		{
			name:  "day rule and wrap rule",
			rules: []types.Interval{{Start: 0, End: 1320}, {Start: 1320, End: 120}},
		},
		{
			name:  "two halves ending at midnight",
			rules: []types.Interval{{Start: 0, End: 720}, {Start: 720, End: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Compose(BaseSpans(tt.rules), 60, 30)

			// 00:00, 00:30 ... 23:00
			assert.Len(t, slots, 47)
			assert.Equal(t, types.Interval{Start: 0, End: 60}, slots[0])
			assert.Equal(t, types.Interval{Start: 1380, End: 0}, slots[len(slots)-1])
		})
	}
}

func TestComposeMultiple(t *testing.T) {
	free := []types.Span{{Start: 540, End: 660}}

	got := ComposeMultiple(free, []int{60, 90}, 30)

	assert.Equal(t, []int{540, 570, 600}, starts(got[60]))
	assert.Equal(t, []int{540, 570}, starts(got[90]))
}
