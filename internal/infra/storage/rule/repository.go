package rule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

// Repository чтение недельных правил доступности кортов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByCourtAndDay возвращает активные правила корта на день недели (0 = воскресенье)
func (r *Repository) GetActiveByCourtAndDay(ctx context.Context, courtID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildActiveByCourtAndDayQuery(courtID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var (
			rule                 domain.AvailabilityRule
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&rule.ID,
			&rule.CourtID,
			&rule.DayOfWeek,
			&rule.Start,
			&rule.End,
			&rule.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - scan row: %w", ErrScanRow, err)
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCourtAndDay - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

func buildActiveByCourtAndDayQuery(courtID int64, dayOfWeek int) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"id",
		"court_id",
		"day_of_week",
		"start_minute",
		"end_minute",
		"active",
		"created_at",
		"updated_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("start_minute ASC", "id ASC").
		ToSql()
}
