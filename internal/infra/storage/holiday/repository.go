package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimberService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var holidayColumns = []string{
	"id",
	"date",
	"name",
	"description",
	"is_recurring",
	"created_at",
}

// Repository репозиторий праздничных дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает праздник. Дата уникальна: повтор возвращает ErrHolidayAlreadyExists
func (r *Repository) Create(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("date", "name", "description", "is_recurring").
		Values(holiday.Date, holiday.Name, holiday.Description, holiday.IsRecurring).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&holiday.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrHolidayAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	holiday.CreatedAt = createdAt.Time

	return holiday, nil
}

// GetByID получает праздник по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	holiday, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan holiday: %w", ErrScanRow, err)
	}

	return holiday, nil
}

// List возвращает все праздники, отсортированные по дате
func (r *Repository) List(ctx context.Context) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		OrderBy("date ASC", "created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// GetMatching возвращает праздники, попадающие на дату: точное совпадение
// или ежегодный праздник с тем же месяцем и днём. Порядок: created_at, id
func (r *Repository) GetMatching(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holidayColumns...).
		From("holidays").
		Where(squirrel.Or{
			squirrel.Eq{"date": date},
			squirrel.And{
				squirrel.Eq{"is_recurring": true},
				squirrel.Expr("EXTRACT(MONTH FROM date) = ?", int(date.Month())),
				squirrel.Expr("EXTRACT(DAY FROM date) = ?", date.Day()),
			},
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMatching - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMatching - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolidays(rows)
}

// Delete удаляет праздник
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var holiday domain.Holiday
	var createdAt sql.NullTime

	err := row.Scan(
		&holiday.ID,
		&holiday.Date,
		&holiday.Name,
		&holiday.Description,
		&holiday.IsRecurring,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	holiday.CreatedAt = createdAt.Time
	return &holiday, nil
}

func scanHolidays(rows *sql.Rows) ([]domain.Holiday, error) {
	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		holiday, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan holiday: %w", ErrScanRow, err)
		}
		holidays = append(holidays, *holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return holidays, nil
}
