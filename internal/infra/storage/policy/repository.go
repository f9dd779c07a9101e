package policy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const table = "booking_policies"

var columns = []string{
	"id",
	"scope",
	"facility_id",
	"court_id",
	"max_advance_days",
	"min_duration_minutes",
	"max_duration_minutes",
	"buffer_minutes",
	"pending_expiration_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений политики бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOverrides получает переопределения уровня корта и уровня площадки одним запросом.
// Любое из значений может быть nil, если строка не найдена.
func (r *Repository) GetOverrides(ctx context.Context, facilityID, courtID int64) (court *domain.PolicyOverride, facility *domain.PolicyOverride, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildOverridesQuery(facilityID, courtID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetOverrides - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetOverrides - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: GetOverrides - scan row: %w", ErrScanRow, err)
		}
		switch override.Scope {
		case domain.PolicyScopeCourt:
			court = override
		case domain.PolicyScopeFacility:
			facility = override
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: GetOverrides - rows error: %w", ErrScanRow, err)
	}

	return court, facility, nil
}

// Upsert создает или заменяет переопределение на своем уровне (площадка или корт)
func (r *Repository) Upsert(ctx context.Context, override *domain.PolicyOverride) (*domain.PolicyOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(override)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	saved, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return saved, nil
}

func buildOverridesQuery(facilityID, courtID int64) (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"scope": string(domain.PolicyScopeCourt)},
				squirrel.Eq{"court_id": courtID},
			},
			squirrel.And{
				squirrel.Eq{"scope": string(domain.PolicyScopeFacility)},
				squirrel.Eq{"facility_id": facilityID},
				squirrel.Eq{"court_id": nil},
			},
		}).
		ToSql()
}

func buildUpsertQuery(o *domain.PolicyOverride) (string, []interface{}, error) {
	return psqlbuilder.Insert(table).
		Columns(
			"scope",
			"facility_id",
			"court_id",
			"max_advance_days",
			"min_duration_minutes",
			"max_duration_minutes",
			"buffer_minutes",
			"pending_expiration_hours",
		).
		Values(
			string(o.Scope),
			o.FacilityID,
			o.CourtID,
			o.MaxAdvanceDays,
			o.MinDurationMinutes,
			o.MaxDurationMinutes,
			o.BufferMinutes,
			o.PendingExpirationHours,
		).
		Suffix("ON CONFLICT (scope, facility_id, COALESCE(court_id, 0)) DO UPDATE SET " +
			"max_advance_days = EXCLUDED.max_advance_days, " +
			"min_duration_minutes = EXCLUDED.min_duration_minutes, " +
			"max_duration_minutes = EXCLUDED.max_duration_minutes, " +
			"buffer_minutes = EXCLUDED.buffer_minutes, " +
			"pending_expiration_hours = EXCLUDED.pending_expiration_hours, " +
			"updated_at = NOW() " +
			"RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOverride(row rowScanner) (*domain.PolicyOverride, error) {
	var (
		o                    domain.PolicyOverride
		scope                string
		courtID              sql.NullInt64
		maxAdvance, minDur   sql.NullInt64
		maxDur, buffer       sql.NullInt64
		expiration           sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(
		&o.ID,
		&scope,
		&o.FacilityID,
		&courtID,
		&maxAdvance,
		&minDur,
		&maxDur,
		&buffer,
		&expiration,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	o.Scope = domain.PolicyScope(scope)
	if courtID.Valid {
		id := courtID.Int64
		o.CourtID = &id
	}
	o.MaxAdvanceDays = nullableInt(maxAdvance)
	o.MinDurationMinutes = nullableInt(minDur)
	o.MaxDurationMinutes = nullableInt(maxDur)
	o.BufferMinutes = nullableInt(buffer)
	o.PendingExpirationHours = nullableInt(expiration)
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
