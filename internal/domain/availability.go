package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// FilterOptions options of the availability filter
type FilterOptions struct {
	IncludeReservations bool // return the active reservations that obstruct the date
}

// BlockedInterval a block matched against a concrete date
type BlockedInterval struct {
	BlockID  int64
	Scope    BlockScope
	Type     BlockType
	Interval types.Interval
	Reason   *string
}

// FreeAvailability result of filtering base availability for one court and date
type FreeAvailability struct {
	Free         []types.Interval // part of the date before midnight; sorted, non-overlapping, coalesced
	Overnight    []types.Interval // after-midnight tail of wrap windows, on the clock face of the next morning
	Spans        []types.Span     // Free and Overnight on the linear axis of the date
	Reservations []*Reservation   // only with FilterOptions.IncludeReservations
	Blocks       []BlockedInterval
}

// SlotsRequest request of candidate slots for one court and date
type SlotsRequest struct {
	CourtID   int64
	Date      time.Time
	Durations []int // minutes; one entry gives a flat list, several give a map
}
