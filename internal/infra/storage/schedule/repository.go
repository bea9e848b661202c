package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimberService/pkg/psqlbuilder"
)

var blockColumns = []string{
	"id",
	"date",
	"start_time",
	"duration_minutes",
	"title",
	"status",
	"customer_name",
	"customer_phone",
	"service_type",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий блоков расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блок расписания. Пересечения с другими блоками не проверяются
func (r *Repository) Create(ctx context.Context, block *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_blocks").
		Columns(
			"date",
			"start_time",
			"duration_minutes",
			"title",
			"status",
			"customer_name",
			"customer_phone",
			"service_type",
			"notes",
		).
		Values(
			block.Date,
			block.StartTime,
			block.DurationMinutes,
			block.Title,
			block.Status,
			block.CustomerName,
			block.CustomerPhone,
			block.ServiceType,
			block.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// GetByID получает блок по ID. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}

	return block, nil
}

// GetByDate возвращает все блоки на дату (в любом статусе), отсортированные по времени начала
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	return r.List(ctx, domain.ScheduleBlockFilter{StartDate: &date, EndDate: &date})
}

// GetActiveByDate возвращает блоки, занимающие время на дату (blocked, booked)
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveBlockStatuses))
	for i, s := range domain.ActiveBlockStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": activeStatuses}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// List возвращает блоки с фильтрацией по периоду и статусу
// Для одной даты сортирует по времени начала, для периода по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.ScheduleBlockFilter) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("schedule_blocks")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC", "start_time ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Update сохраняет все изменяемые поля блока
func (r *Repository) Update(ctx context.Context, block *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_blocks").
		Set("date", block.Date).
		Set("start_time", block.StartTime).
		Set("duration_minutes", block.DurationMinutes).
		Set("title", block.Title).
		Set("status", block.Status).
		Set("customer_name", block.CustomerName).
		Set("customer_phone", block.CustomerPhone).
		Set("service_type", block.ServiceType).
		Set("notes", block.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": block.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	block.UpdatedAt = updatedAt.Time

	return block, nil
}

// Delete удаляет блок
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_blocks").
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
		return ErrBlockNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.ScheduleBlock, error) {
	var block domain.ScheduleBlock
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.Date,
		&block.StartTime,
		&block.DurationMinutes,
		&block.Title,
		&block.Status,
		&block.CustomerName,
		&block.CustomerPhone,
		&block.ServiceType,
		&block.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	block.CreatedAt = createdAt.Time
	block.UpdatedAt = updatedAt.Time
	return &block, nil
}

// scanBlocks сканирует результаты запроса в слайс блоков
func scanBlocks(rows *sql.Rows) ([]*domain.ScheduleBlock, error) {
	blocks := make([]*domain.ScheduleBlock, 0)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan block: %w", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}
