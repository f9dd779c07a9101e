package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ListQuery общие параметры списков бронирований
type ListQuery struct {
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ParseListQuery разбирает status, date, dateFrom, dateTo.
// date задает период из одного дня и не сочетается с dateFrom/dateTo.
func ParseListQuery(r *http.Request) (ListQuery, error) {
	q := r.URL.Query()
	var params ListQuery

	if status := q.Get("status"); status != "" {
		params.Status = &status
	}

	if raw := q.Get("date"); raw != "" {
		if q.Get("dateFrom") != "" || q.Get("dateTo") != "" {
			return ListQuery{}, errors.New("date cannot be combined with dateFrom/dateTo")
		}
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return ListQuery{}, err
		}
		params.DateFrom = &date
		params.DateTo = &date
		return params, nil
	}

	var err error
	if params.DateFrom, err = optionalDate(q.Get("dateFrom")); err != nil {
		return ListQuery{}, err
	}
	if params.DateTo, err = optionalDate(q.Get("dateTo")); err != nil {
		return ListQuery{}, err
	}
	return params, nil
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
