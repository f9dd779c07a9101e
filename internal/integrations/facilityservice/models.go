package facilityservice

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// Court модель корта из FacilityService
type Court struct {
	ID         int64  `json:"id"`
	FacilityID int64  `json:"facility_id"`
	Name       string `json:"name"`
	Active     bool   `json:"active"`
}

// Facility модель площадки из FacilityService
type Facility struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	OwnerIDs []int64 `json:"owner_ids"`
}

// ErrorResponse модель ошибки от FacilityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Court) toDomain() *domain.Court {
	return &domain.Court{
		ID:         c.ID,
		FacilityID: c.FacilityID,
		Name:       c.Name,
		Active:     c.Active,
	}
}

func (f *Facility) toDomain() *domain.Facility {
	owners := f.OwnerIDs
	if owners == nil {
		owners = []int64{}
	}
	return &domain.Facility{
		ID:       f.ID,
		Name:     f.Name,
		OwnerIDs: owners,
	}
}
