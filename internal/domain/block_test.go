package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBlock_Validate(t *testing.T) {
	start := ptr.Ptr(types.TimeOfDay(600))
	end := ptr.Ptr(types.TimeOfDay(660))
	date := ptr.Ptr(day(2025, 3, 10))

	tests := []struct {
		name    string
		block   Block
		wantErr bool
	}{
		{
			name:  "valid one_time",
			block: Block{Scope: BlockScopeFacility, Type: BlockTypeOneTime, Date: date, Start: start, End: end},
		},
		{
			name:  "valid recurring",
			block: Block{Scope: BlockScopeCourt, CourtID: ptr.Ptr(int64(1)), Type: BlockTypeRecurring, DayOfWeek: ptr.Ptr(1), Start: start, End: end},
		},
		{
			name:  "valid date_range",
			block: Block{Scope: BlockScopeFacility, Type: BlockTypeDateRange, DateFrom: date, DateTo: ptr.Ptr(day(2025, 3, 12))},
		},
		{
			name:    "one_time without window",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeOneTime, Date: date},
			wantErr: true,
		},
		{
			name:    "one_time with weekday",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeOneTime, Date: date, DayOfWeek: ptr.Ptr(1), Start: start, End: end},
			wantErr: true,
		},
		{
			name:    "recurring with bad weekday",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeRecurring, DayOfWeek: ptr.Ptr(7), Start: start, End: end},
			wantErr: true,
		},
		{
			name:    "date_range with window",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeDateRange, DateFrom: date, DateTo: date, Start: start, End: end},
			wantErr: true,
		},
		{
			name:    "date_range reversed",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeDateRange, DateFrom: ptr.Ptr(day(2025, 3, 12)), DateTo: date},
			wantErr: true,
		},
		{
			name:    "court scope without court",
			block:   Block{Scope: BlockScopeCourt, Type: BlockTypeOneTime, Date: date, Start: start, End: end},
			wantErr: true,
		},
		{
			name:    "empty window",
			block:   Block{Scope: BlockScopeFacility, Type: BlockTypeOneTime, Date: date, Start: start, End: start},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBlock)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlock_MatchesDate(t *testing.T) {
	monday := day(2025, 3, 10)

	oneTime := Block{Type: BlockTypeOneTime, Active: true, Date: ptr.Ptr(monday)}
	assert.True(t, oneTime.MatchesDate(monday))
	assert.False(t, oneTime.MatchesDate(day(2025, 3, 17)))

	recurring := Block{Type: BlockTypeRecurring, Active: true, DayOfWeek: ptr.Ptr(int(time.Monday))}
	assert.True(t, recurring.MatchesDate(monday))
	assert.True(t, recurring.MatchesDate(day(2025, 3, 17)))
	assert.False(t, recurring.MatchesDate(day(2025, 3, 11)))

	dateRange := Block{Type: BlockTypeDateRange, Active: true, DateFrom: ptr.Ptr(day(2025, 3, 9)), DateTo: ptr.Ptr(monday)}
	assert.True(t, dateRange.MatchesDate(day(2025, 3, 9)))
	assert.True(t, dateRange.MatchesDate(monday))
	assert.False(t, dateRange.MatchesDate(day(2025, 3, 11)))

	inactive := recurring
	inactive.Active = false
	assert.False(t, inactive.MatchesDate(monday))
}

func TestBlock_IntervalAndSpan(t *testing.T) {
	wholeDay := Block{Type: BlockTypeDateRange}
	assert.Equal(t, types.Interval{Start: 0, End: 1439}, wholeDay.Interval())
	assert.Equal(t, types.Span{Start: 0, End: 2880}, wholeDay.Span())

	late := Block{Type: BlockTypeOneTime, Start: ptr.Ptr(types.TimeOfDay(1380)), End: ptr.Ptr(types.TimeOfDay(60))}
	assert.Equal(t, types.Interval{Start: 1380, End: 60}, late.Interval())
	assert.Equal(t, types.Span{Start: 1380, End: 1500}, late.Span())
}
