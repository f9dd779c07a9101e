package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Repository чтение административных блокировок
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForCourtOnDate возвращает активные блокировки площадки и конкретного корта,
// которые могут действовать в указанную дату.
// Предварительный отбор делается в SQL, окончательный через domain.Block.MatchesDate.
func (r *Repository) GetForCourtOnDate(ctx context.Context, facilityID, courtID int64, date time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildForCourtOnDateQuery(facilityID, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForCourtOnDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForCourtOnDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.Block, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForCourtOnDate - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForCourtOnDate - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

func buildForCourtOnDateQuery(facilityID, courtID int64, date time.Time) (string, []interface{}, error) {
	day := domain.DateOnly(date)

	return psqlbuilder.Select(
		"id",
		"scope",
		"facility_id",
		"court_id",
		"block_type",
		"block_date",
		"date_from",
		"date_to",
		"day_of_week",
		"start_minute",
		"end_minute",
		"reason",
		"active",
		"created_at",
		"updated_at",
	).
		From("blocks").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Or{
			squirrel.Eq{"scope": string(domain.BlockScopeFacility)},
			squirrel.And{
				squirrel.Eq{"scope": string(domain.BlockScopeCourt)},
				squirrel.Eq{"court_id": courtID},
			},
		}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"block_type": string(domain.BlockTypeOneTime)},
				squirrel.Eq{"block_date": day},
			},
			squirrel.And{
				squirrel.Eq{"block_type": string(domain.BlockTypeRecurring)},
				squirrel.Eq{"day_of_week": int(day.Weekday())},
			},
			squirrel.And{
				squirrel.Eq{"block_type": string(domain.BlockTypeDateRange)},
				squirrel.LtOrEq{"date_from": day},
				squirrel.GtOrEq{"date_to": day},
			},
		}).
		OrderBy("id ASC").
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.Block, error) {
	var (
		block                  domain.Block
		scope, blockType       string
		courtID                sql.NullInt64
		blockDate, from, to    sql.NullTime
		dayOfWeek              sql.NullInt64
		startMinute, endMinute sql.NullInt64
		reason                 sql.NullString
		createdAt, updatedAt   sql.NullTime
	)

	err := row.Scan(
		&block.ID,
		&scope,
		&block.FacilityID,
		&courtID,
		&blockType,
		&blockDate,
		&from,
		&to,
		&dayOfWeek,
		&startMinute,
		&endMinute,
		&reason,
		&block.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	block.Scope = domain.BlockScope(scope)
	block.Type = domain.BlockType(blockType)

	if courtID.Valid {
		block.CourtID = &courtID.Int64
	}
	if blockDate.Valid {
		block.Date = &blockDate.Time
	}
	if from.Valid {
		block.DateFrom = &from.Time
	}
	if to.Valid {
		block.DateTo = &to.Time
	}
	if dayOfWeek.Valid {
		d := int(dayOfWeek.Int64)
		block.DayOfWeek = &d
	}
	if startMinute.Valid {
		v, err := types.NewTimeOfDay(int(startMinute.Int64))
		if err != nil {
			return nil, err
		}
		block.Start = &v
	}
	if endMinute.Valid {
		v, err := types.NewTimeOfDay(int(endMinute.Int64))
		if err != nil {
			return nil, err
		}
		block.End = &v
	}
	if reason.Valid {
		block.Reason = &reason.String
	}
	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return &block, nil
}
