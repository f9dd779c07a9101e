package domain

import (
	"fmt"
	"time"
)

// PolicyScope defines the level a policy override is stored at
type PolicyScope string

const (
	PolicyScopeFacility PolicyScope = "facility"
	PolicyScopeCourt    PolicyScope = "court"
)

// PolicyOverride stored policy row. Nil fields fall through to the next level.
type PolicyOverride struct {
	ID         int64
	Scope      PolicyScope
	FacilityID int64
	CourtID    *int64

	MaxAdvanceDays         *int
	MinDurationMinutes     *int
	MaxDurationMinutes     *int // 0 = unlimited
	BufferMinutes          *int
	PendingExpirationHours *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Policy effective booking constraints for a court
type Policy struct {
	MaxAdvanceDays         int // 0 = unlimited
	MinDurationMinutes     int
	MaxDurationMinutes     int // 0 = unlimited
	BufferMinutes          int
	PendingExpirationHours int
}

// DefaultPolicy system-wide defaults
func DefaultPolicy() Policy {
	return Policy{
		MaxAdvanceDays:         DefaultMaxAdvanceDays,
		MinDurationMinutes:     DefaultMinDurationMinutes,
		MaxDurationMinutes:     DefaultMaxDurationMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		PendingExpirationHours: DefaultPendingExpirationHours,
	}
}

// ResolvePolicy merges overrides field by field: court, then facility, then system default.
// Either override may be nil.
func ResolvePolicy(court, facility *PolicyOverride) Policy {
	def := DefaultPolicy()
	return Policy{
		MaxAdvanceDays:         pick(court, facility, def.MaxAdvanceDays, func(o *PolicyOverride) *int { return o.MaxAdvanceDays }),
		MinDurationMinutes:     pick(court, facility, def.MinDurationMinutes, func(o *PolicyOverride) *int { return o.MinDurationMinutes }),
		MaxDurationMinutes:     pick(court, facility, def.MaxDurationMinutes, func(o *PolicyOverride) *int { return o.MaxDurationMinutes }),
		BufferMinutes:          pick(court, facility, def.BufferMinutes, func(o *PolicyOverride) *int { return o.BufferMinutes }),
		PendingExpirationHours: pick(court, facility, def.PendingExpirationHours, func(o *PolicyOverride) *int { return o.PendingExpirationHours }),
	}
}

func pick(court, facility *PolicyOverride, def int, field func(*PolicyOverride) *int) int {
	for _, o := range []*PolicyOverride{court, facility} {
		if o == nil {
			continue
		}
		if v := field(o); v != nil {
			return *v
		}
	}
	return def
}

// HasAdvanceLimit returns true if there is a limit on how far ahead a reservation can be made
func (p Policy) HasAdvanceLimit() bool {
	return p.MaxAdvanceDays > 0
}

// HasMaxDuration returns true if reservations have an upper duration bound
func (p Policy) HasMaxDuration() bool {
	return p.MaxDurationMinutes > 0
}

// PendingExpiration how long an unconfirmed reservation holds its window
func (p Policy) PendingExpiration() time.Duration {
	return time.Duration(p.PendingExpirationHours) * time.Hour
}

// Validate checks that the resolved values are usable
func (p Policy) Validate() error {
	switch {
	case p.MaxAdvanceDays < 0 || p.MaxAdvanceDays > MaxPolicyAdvanceDays:
		return fmt.Errorf("%w: maxAdvanceDays must be in 0..%d", ErrInvalidPolicy, MaxPolicyAdvanceDays)
	case p.MinDurationMinutes <= 0:
		return fmt.Errorf("%w: minDurationMinutes must be positive", ErrInvalidPolicy)
	case p.MaxDurationMinutes < 0:
		return fmt.Errorf("%w: maxDurationMinutes must not be negative", ErrInvalidPolicy)
	case p.HasMaxDuration() && p.MaxDurationMinutes < p.MinDurationMinutes:
		return fmt.Errorf("%w: maxDurationMinutes is less than minDurationMinutes", ErrInvalidPolicy)
	case p.BufferMinutes < 0 || p.BufferMinutes > MaxPolicyBufferMinutes:
		return fmt.Errorf("%w: bufferMinutes must be in 0..%d", ErrInvalidPolicy, MaxPolicyBufferMinutes)
	case p.PendingExpirationHours <= 0 || p.PendingExpirationHours > MaxPolicyExpirationHours:
		return fmt.Errorf("%w: pendingExpirationHours must be in 1..%d", ErrInvalidPolicy, MaxPolicyExpirationHours)
	}
	return nil
}
