package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BlockScope defines what a block applies to
type BlockScope string

const (
	BlockScopeFacility BlockScope = "facility" // every court of the facility
	BlockScopeCourt    BlockScope = "court"
)

// BlockType defines how a block is matched against a date
type BlockType string

const (
	BlockTypeOneTime   BlockType = "one_time"   // exact date + time window
	BlockTypeRecurring BlockType = "recurring"  // weekday + time window
	BlockTypeDateRange BlockType = "date_range" // [DateFrom, DateTo], whole day
)

// Block administrative closure. Which of the optional fields are set depends on Type.
type Block struct {
	ID         int64
	Scope      BlockScope
	FacilityID int64
	CourtID    *int64
	Type       BlockType

	Date      *time.Time // one_time
	DateFrom  *time.Time // date_range
	DateTo    *time.Time // date_range
	DayOfWeek *int       // recurring, 0 = Sunday

	Start *types.TimeOfDay // one_time, recurring
	End   *types.TimeOfDay // one_time, recurring

	Reason *string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces mutually exclusive field population per type
func (b *Block) Validate() error {
	switch b.Scope {
	case BlockScopeFacility:
		if b.CourtID != nil {
			return fmt.Errorf("%w: facility block must not reference a court", ErrInvalidBlock)
		}
	case BlockScopeCourt:
		if b.CourtID == nil {
			return fmt.Errorf("%w: court block requires courtId", ErrInvalidBlock)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidBlock, b.Scope)
	}

	switch b.Type {
	case BlockTypeOneTime:
		if b.Date == nil || b.DateFrom != nil || b.DateTo != nil || b.DayOfWeek != nil {
			return fmt.Errorf("%w: one_time block requires date only", ErrInvalidBlock)
		}
		return b.validateWindow()

	case BlockTypeRecurring:
		if b.DayOfWeek == nil || b.Date != nil || b.DateFrom != nil || b.DateTo != nil {
			return fmt.Errorf("%w: recurring block requires dayOfWeek only", ErrInvalidBlock)
		}
		if *b.DayOfWeek < 0 || *b.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be in 0..6, got %d", ErrInvalidBlock, *b.DayOfWeek)
		}
		return b.validateWindow()

	case BlockTypeDateRange:
		if b.DateFrom == nil || b.DateTo == nil || b.Date != nil || b.DayOfWeek != nil {
			return fmt.Errorf("%w: date_range block requires dateFrom and dateTo only", ErrInvalidBlock)
		}
		if b.Start != nil || b.End != nil {
			return fmt.Errorf("%w: date_range block blocks whole days and takes no time window", ErrInvalidBlock)
		}
		if dateOnly(*b.DateTo).Before(dateOnly(*b.DateFrom)) {
			return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidBlock)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidBlock, b.Type)
	}
}

func (b *Block) validateWindow() error {
	if b.Start == nil || b.End == nil {
		return fmt.Errorf("%w: %s block requires start and end", ErrInvalidBlock, b.Type)
	}
	if err := b.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidBlock, err)
	}
	if err := b.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidBlock, err)
	}
	if *b.Start == *b.End {
		return fmt.Errorf("%w: empty window", ErrInvalidBlock)
	}
	return nil
}

// MatchesDate returns true if the block obstructs the given calendar date
func (b *Block) MatchesDate(date time.Time) bool {
	if !b.Active {
		return false
	}

	switch b.Type {
	case BlockTypeOneTime:
		return b.Date != nil && SameDate(*b.Date, date)
	case BlockTypeRecurring:
		return b.DayOfWeek != nil && *b.DayOfWeek == int(date.Weekday())
	case BlockTypeDateRange:
		if b.DateFrom == nil || b.DateTo == nil {
			return false
		}
		d := dateOnly(date)
		return !d.Before(dateOnly(*b.DateFrom)) && !d.After(dateOnly(*b.DateTo))
	default:
		return false
	}
}

// IsWholeDay returns true for blocks without a time window
func (b *Block) IsWholeDay() bool {
	return b.Type == BlockTypeDateRange
}

// Interval returns the blocked window as reported to clients; whole-day blocks are [00:00, 23:59]
func (b *Block) Interval() types.Interval {
	if b.IsWholeDay() || b.Start == nil || b.End == nil {
		return types.WholeDay
	}
	return types.Interval{Start: *b.Start, End: *b.End}
}

// Span returns the obstruction on the linear axis of the matched date.
// A whole-day block also covers the after-midnight tail of wrap windows.
func (b *Block) Span() types.Span {
	if b.IsWholeDay() || b.Start == nil || b.End == nil {
		return types.Span{Start: 0, End: 2 * types.MinutesPerDay}
	}
	return types.Interval{Start: *b.Start, End: *b.End}.Span()
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	return dateOnly(t)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
