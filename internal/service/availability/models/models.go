package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// IntervalResponse интервал в минутах от полуночи.
// end < start означает переход через полночь, end = 0 - окончание ровно в полночь, [0, 1439] - весь день.
type IntervalResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BlockResponse блокировка, действующая на дату
type BlockResponse struct {
	ID     int64   `json:"id"`
	Scope  string  `json:"scope"`
	Type   string  `json:"type"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Reason *string `json:"reason,omitempty"`
}

// ReservationResponse бронирование, занимающее окно
type ReservationResponse struct {
	ID          int64  `json:"id"`
	RequesterID int64  `json:"requesterId"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Status      string `json:"status"`
}

// BaseAvailabilityResponse базовая доступность корта на дату
type BaseAvailabilityResponse struct {
	CourtID   int64              `json:"courtId"`
	Date      string             `json:"date"`
	Intervals []IntervalResponse `json:"intervals"`
}

// FreeAvailabilityResponse свободные интервалы корта на дату
type FreeAvailabilityResponse struct {
	CourtID      int64                 `json:"courtId"`
	Date         string                `json:"date"`
	Free         []IntervalResponse    `json:"free"`
	Overnight    []IntervalResponse    `json:"overnight,omitempty"`
	Blocks       []BlockResponse       `json:"blocks"`
	Reservations []ReservationResponse `json:"reservations,omitempty"`
}

// SlotsResult слоты по каждой запрошенной длительности
type SlotsResult struct {
	CourtID    int64
	Date       time.Time
	Durations  []int
	ByDuration map[int][]IntervalResponse
}

// SlotsResponse ответ для одной длительности
type SlotsResponse struct {
	CourtID         int64              `json:"courtId"`
	Date            string             `json:"date"`
	DurationMinutes int                `json:"durationMinutes"`
	Slots           []IntervalResponse `json:"slots"`
}

// SlotsByDurationResponse ответ для нескольких длительностей, ключ - длительность в минутах
type SlotsByDurationResponse struct {
	CourtID int64                      `json:"courtId"`
	Date    string                     `json:"date"`
	Slots   map[int][]IntervalResponse `json:"slots"`
}

// Single ответ для первой длительности
func (r *SlotsResult) Single() *SlotsResponse {
	d := r.Durations[0]
	return &SlotsResponse{
		CourtID:         r.CourtID,
		Date:            r.Date.Format(domain.DateFormat),
		DurationMinutes: d,
		Slots:           r.ByDuration[d],
	}
}

// Multiple ответ со всеми длительностями
func (r *SlotsResult) Multiple() *SlotsByDurationResponse {
	return &SlotsByDurationResponse{
		CourtID: r.CourtID,
		Date:    r.Date.Format(domain.DateFormat),
		Slots:   r.ByDuration,
	}
}

// FromIntervals конвертирует интервалы в DTO
func FromIntervals(intervals []types.Interval) []IntervalResponse {
	out := make([]IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, IntervalResponse{Start: iv.Start.Minutes(), End: iv.End.Minutes()})
	}
	return out
}

// FromFreeAvailability конвертирует результат фильтра в DTO
func FromFreeAvailability(courtID int64, date time.Time, free *domain.FreeAvailability, now time.Time, loc *time.Location) *FreeAvailabilityResponse {
	resp := &FreeAvailabilityResponse{
		CourtID: courtID,
		Date:    date.Format(domain.DateFormat),
		Free:    FromIntervals(free.Free),
		Blocks:  make([]BlockResponse, 0, len(free.Blocks)),
	}
	if len(free.Overnight) > 0 {
		resp.Overnight = FromIntervals(free.Overnight)
	}

	for _, b := range free.Blocks {
		resp.Blocks = append(resp.Blocks, BlockResponse{
			ID:     b.BlockID,
			Scope:  string(b.Scope),
			Type:   string(b.Type),
			Start:  b.Interval.Start.Minutes(),
			End:    b.Interval.End.Minutes(),
			Reason: b.Reason,
		})
	}

	if free.Reservations != nil {
		resp.Reservations = make([]ReservationResponse, 0, len(free.Reservations))
		for _, r := range free.Reservations {
			resp.Reservations = append(resp.Reservations, ReservationResponse{
				ID:          r.ID,
				RequesterID: r.RequesterID,
				Start:       r.Start.Minutes(),
				End:         r.End.Minutes(),
				Status:      string(r.EffectiveStatus(now, loc)),
			})
		}
	}

	return resp
}
