package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"court_id",
	"facility_id",
	"requester_id",
	"reservation_date",
	"start_minute",
	"end_minute",
	"status",
	"status_reason",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Вызывается внутри эксклюзивной секции по (court, date), сама проверку пересечений не делает.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"court_id",
			"facility_id",
			"requester_id",
			"reservation_date",
			"start_minute",
			"end_minute",
			"status",
			"expires_at",
		).
		Values(
			reservation.CourtID,
			reservation.FacilityID,
			reservation.RequesterID,
			reservation.Date,
			reservation.Start,
			reservation.End,
			reservation.Status,
			reservation.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByIDQuery(id, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// ListObstructing возвращает бронирования корта на дату, которые могут занимать время:
// confirmed, completed и pending с expires_at > now.
// Окончательное решение принимает domain.Reservation.IsActive.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListObstructing(ctx context.Context, courtID int64, date time.Time, now time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListObstructingQuery(courtID, date, now, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: ListObstructing - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListObstructing - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to и очищает expires_at.
// Обновление условное (WHERE status = from): если статус уже изменился, возвращается ErrStatusChanged.
// Для from = pending дополнительно требуется expires_at > now.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, reason *string, now time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpdateStatusQuery(id, from, to, reason, now)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// ExpirePending переписывает просроченные pending в expired. Идемпотентна.
// Возвращает количество обновленных строк.
func (r *Repository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusExpired).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// List возвращает бронирования по фильтру, новые даты первыми.
// Статус в выборке хранимый; эффективный статус считает вызывающий.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func buildGetByIDQuery(id int64, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildListObstructingQuery(courtID int64, date time.Time, now time.Time, forUpdate bool) (string, []interface{}, error) {
	statuses := make([]string, len(domain.ObstructingStatuses))
	for i, s := range domain.ObstructingStatuses {
		statuses[i] = string(s)
	}

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Eq{"reservation_date": domain.DateOnly(date)}).
		Where(squirrel.Eq{"status": statuses}).
		Where(squirrel.Or{
			squirrel.NotEq{"status": string(domain.StatusPending)},
			squirrel.Gt{"expires_at": now},
		}).
		OrderBy("start_minute ASC", "id ASC")

	// Блокируем найденные строки, чтобы параллельные переходы статусов ждали нашу транзакцию
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildListQuery(filter domain.ReservationFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(columns...).From(table)

	if filter.RequesterID != nil {
		builder = builder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.FacilityID != nil {
		builder = builder.Where(squirrel.Eq{"facility_id": *filter.FacilityID})
	}
	if filter.CourtID != nil {
		builder = builder.Where(squirrel.Eq{"court_id": *filter.CourtID})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"reservation_date": domain.DateOnly(*filter.DateTo)})
	}

	return builder.
		OrderBy("reservation_date DESC", "start_minute DESC", "id DESC").
		ToSql()
}

func buildUpdateStatusQuery(id int64, from, to domain.ReservationStatus, reason *string, now time.Time) (string, []interface{}, error) {
	builder := psqlbuilder.Update(table).
		Set("status", to).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()"))

	if reason != nil {
		builder = builder.Set("status_reason", *reason)
	}

	builder = builder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})

	// истекшая pending уже не занимает окно, переводить ее нельзя
	if from == domain.StatusPending {
		builder = builder.Where(squirrel.Gt{"expires_at": now})
	}

	return builder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		status               string
		statusReason         sql.NullString
		expiresAt            sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.CourtID,
		&reservation.FacilityID,
		&reservation.RequesterID,
		&reservation.Date,
		&reservation.Start,
		&reservation.End,
		&status,
		&statusReason,
		&expiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Status = domain.ReservationStatus(status)
	if statusReason.Valid {
		reservation.StatusReason = &statusReason.String
	}
	if expiresAt.Valid {
		reservation.ExpiresAt = &expiresAt.Time
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
