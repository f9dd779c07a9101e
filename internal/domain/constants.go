package domain

// Default policy values, applied when neither the court nor the facility override a field
const (
	DefaultMaxAdvanceDays         = 30
	DefaultMinDurationMinutes     = 30
	DefaultMaxDurationMinutes     = 0 // 0 = unlimited
	DefaultBufferMinutes          = 0
	DefaultPendingExpirationHours = 24
)

// DefaultGranularityMinutes шаг сетки слотов, если не задан в конфиге
const DefaultGranularityMinutes = 30

// Business validation constants
const (
	MaxReasonLength           = 500
	MaxPolicyAdvanceDays      = 365
	MaxPolicyBufferMinutes    = 240
	MaxPolicyExpirationHours  = 24 * 14
	MaxRequestedSlotDurations = 8
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ObstructingStatuses stored statuses that may still block a time window.
// Whether a row really obstructs is decided by Reservation.IsActive.
var ObstructingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
