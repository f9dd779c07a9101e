package update_policy

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model.
// Незаданные поля наследуются со следующего уровня, 0 в maxAdvanceDays и maxDurationMinutes снимает ограничение.
type UpdatePolicyRequest struct {
	MaxAdvanceDays         *int `json:"maxAdvanceDays,omitempty" validate:"omitempty,min=0"`
	MinDurationMinutes     *int `json:"minDurationMinutes,omitempty" validate:"omitempty,min=1"`
	MaxDurationMinutes     *int `json:"maxDurationMinutes,omitempty" validate:"omitempty,min=0"`
	BufferMinutes          *int `json:"bufferMinutes,omitempty" validate:"omitempty,min=0"`
	PendingExpirationHours *int `json:"pendingExpirationHours,omitempty" validate:"omitempty,min=1"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// courtID == nil означает переопределение уровня площадки.
func (r *UpdatePolicyRequest) ToServiceRequest(userID, facilityID int64, courtID *int64) *models.UpsertOverrideRequest {
	return &models.UpsertOverrideRequest{
		UserID:                 userID,
		FacilityID:             facilityID,
		CourtID:                courtID,
		MaxAdvanceDays:         r.MaxAdvanceDays,
		MinDurationMinutes:     r.MinDurationMinutes,
		MaxDurationMinutes:     r.MaxDurationMinutes,
		BufferMinutes:          r.BufferMinutes,
		PendingExpirationHours: r.PendingExpirationHours,
	}
}
