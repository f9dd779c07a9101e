package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// UpsertOverrideRequest запрос на сохранение переопределения политики.
// Если CourtID задан - переопределение уровня корта, иначе уровня площадки.
// Незаданные поля наследуются со следующего уровня.
type UpsertOverrideRequest struct {
	UserID                 int64
	FacilityID             int64
	CourtID                *int64
	MaxAdvanceDays         *int
	MinDurationMinutes     *int
	MaxDurationMinutes     *int
	BufferMinutes          *int
	PendingExpirationHours *int
}

// PolicyResponse эффективная политика корта.
// MaxAdvanceDays и MaxDurationMinutes равные 0 означают отсутствие ограничения.
type PolicyResponse struct {
	CourtID                int64 `json:"courtId"`
	FacilityID             int64 `json:"facilityId"`
	MaxAdvanceDays         int   `json:"maxAdvanceDays"`
	MinDurationMinutes     int   `json:"minDurationMinutes"`
	MaxDurationMinutes     int   `json:"maxDurationMinutes"`
	BufferMinutes          int   `json:"bufferMinutes"`
	PendingExpirationHours int   `json:"pendingExpirationHours"`
}

// OverrideResponse сохраненное переопределение
type OverrideResponse struct {
	ID                     int64     `json:"id"`
	Scope                  string    `json:"scope"`
	FacilityID             int64     `json:"facilityId"`
	CourtID                *int64    `json:"courtId,omitempty"`
	MaxAdvanceDays         *int      `json:"maxAdvanceDays,omitempty"`
	MinDurationMinutes     *int      `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes     *int      `json:"maxDurationMinutes,omitempty"`
	BufferMinutes          *int      `json:"bufferMinutes,omitempty"`
	PendingExpirationHours *int      `json:"pendingExpirationHours,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// FromDomainPolicy конвертирует политику в DTO
func FromDomainPolicy(court *domain.Court, p domain.Policy) *PolicyResponse {
	return &PolicyResponse{
		CourtID:                court.ID,
		FacilityID:             court.FacilityID,
		MaxAdvanceDays:         p.MaxAdvanceDays,
		MinDurationMinutes:     p.MinDurationMinutes,
		MaxDurationMinutes:     p.MaxDurationMinutes,
		BufferMinutes:          p.BufferMinutes,
		PendingExpirationHours: p.PendingExpirationHours,
	}
}

// FromDomainOverride конвертирует переопределение в DTO
func FromDomainOverride(o *domain.PolicyOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:                     o.ID,
		Scope:                  string(o.Scope),
		FacilityID:             o.FacilityID,
		CourtID:                o.CourtID,
		MaxAdvanceDays:         o.MaxAdvanceDays,
		MinDurationMinutes:     o.MinDurationMinutes,
		MaxDurationMinutes:     o.MaxDurationMinutes,
		BufferMinutes:          o.BufferMinutes,
		PendingExpirationHours: o.PendingExpirationHours,
		UpdatedAt:              o.UpdatedAt,
	}
}

// ToDomainOverride конвертирует запрос в domain модель
func (r *UpsertOverrideRequest) ToDomainOverride() *domain.PolicyOverride {
	scope := domain.PolicyScopeFacility
	if r.CourtID != nil {
		scope = domain.PolicyScopeCourt
	}
	return &domain.PolicyOverride{
		Scope:                  scope,
		FacilityID:             r.FacilityID,
		CourtID:                r.CourtID,
		MaxAdvanceDays:         r.MaxAdvanceDays,
		MinDurationMinutes:     r.MinDurationMinutes,
		MaxDurationMinutes:     r.MaxDurationMinutes,
		BufferMinutes:          r.BufferMinutes,
		PendingExpirationHours: r.PendingExpirationHours,
	}
}
