package enquiry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimberService/pkg/psqlbuilder"
)

var enquiryColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"phone",
	"work_type",
	"log_items",
	"cubic_feet",
	"number_of_logs",
	"processing_hours",
	"rate_per_hour",
	"requested_date",
	"requested_time",
	"notes",
	"status",
	"admin_notes",
	"accepted_date",
	"accepted_start",
	"accepted_end",
	"proposed_date",
	"proposed_start",
	"proposed_end",
	"scheduled_date",
	"scheduled_time",
	"estimated_cost",
	"actual_cost",
	"payment_status",
	"payment_method",
	"payment_reference",
	"offline_payment_note",
	"payment_date",
	"completed_at",
	"created_at",
	"updated_at",
}

// StatsRow агрегат по паре (статус, тип работ)
type StatsRow struct {
	Status         domain.EnquiryStatus
	WorkType       domain.WorkType
	Count          int
	CubicFeet      float64
	PendingPayment int
}

// Repository репозиторий заявок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку
func (r *Repository) Create(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	logItems, err := encodeLogItems(enquiry.LogItems)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeLogItems, err)
	}

	query, args, err := psqlbuilder.Insert("enquiries").
		Columns(
			"customer_name",
			"customer_email",
			"phone",
			"work_type",
			"log_items",
			"cubic_feet",
			"number_of_logs",
			"processing_hours",
			"rate_per_hour",
			"requested_date",
			"requested_time",
			"notes",
			"status",
			"estimated_cost",
			"payment_status",
			"payment_method",
		).
		Values(
			enquiry.CustomerName,
			enquiry.CustomerEmail,
			enquiry.Phone,
			enquiry.WorkType,
			logItems,
			enquiry.CubicFeet,
			enquiry.NumberOfLogs,
			enquiry.ProcessingHours,
			enquiry.RatePerHour,
			enquiry.RequestedDate,
			enquiry.RequestedTime,
			enquiry.Notes,
			enquiry.Status,
			enquiry.EstimatedCost,
			enquiry.PaymentStatus,
			enquiry.PaymentMethod,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&enquiry.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	enquiry.CreatedAt = createdAt.Time
	enquiry.UpdatedAt = updatedAt.Time

	return enquiry, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы переходы по одной заявке шли последовательно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(enquiryColumns...).
		From("enquiries").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	enquiry, err := scanEnquiry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan enquiry: %w", ErrScanRow, err)
	}

	return enquiry, nil
}

// List возвращает заявки с фильтрацией по статусу, типу работ и дате запроса
// Сортировка: сначала новые
func (r *Repository) List(ctx context.Context, filter domain.EnquiryFilter) ([]*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(enquiryColumns...).
		From("enquiries")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.WorkType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"work_type": *filter.WorkType})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"requested_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"requested_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEnquiries(rows)
}

// GetBlockingByDate возвращает заявки в блокирующих статусах, чьё принятое,
// назначенное или запрошенное окно может приходиться на дату.
// Окончательный выбор окна делает вызывающий код (domain.Enquiry.OccupiedWindow)
func (r *Repository) GetBlockingByDate(ctx context.Context, date time.Time) ([]*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blockingStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(enquiryColumns...).
		From("enquiries").
		Where(squirrel.Eq{"status": blockingStatuses}).
		Where(squirrel.Or{
			squirrel.Eq{"accepted_date": date},
			squirrel.Eq{"scheduled_date": date},
			squirrel.Eq{"requested_date": date},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEnquiries(rows)
}

// Update сохраняет все изменяемые поля заявки
func (r *Repository) Update(ctx context.Context, enquiry *domain.Enquiry) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	logItems, err := encodeLogItems(enquiry.LogItems)
	if err != nil {
		return nil, fmt.Errorf("%w: Update: %v", ErrEncodeLogItems, err)
	}

	query, args, err := psqlbuilder.Update("enquiries").
		Set("customer_name", enquiry.CustomerName).
		Set("customer_email", enquiry.CustomerEmail).
		Set("phone", enquiry.Phone).
		Set("work_type", enquiry.WorkType).
		Set("log_items", logItems).
		Set("cubic_feet", enquiry.CubicFeet).
		Set("number_of_logs", enquiry.NumberOfLogs).
		Set("processing_hours", enquiry.ProcessingHours).
		Set("rate_per_hour", enquiry.RatePerHour).
		Set("requested_date", enquiry.RequestedDate).
		Set("requested_time", enquiry.RequestedTime).
		Set("notes", enquiry.Notes).
		Set("status", enquiry.Status).
		Set("admin_notes", enquiry.AdminNotes).
		Set("accepted_date", enquiry.AcceptedDate).
		Set("accepted_start", enquiry.AcceptedStart).
		Set("accepted_end", enquiry.AcceptedEnd).
		Set("proposed_date", enquiry.ProposedDate).
		Set("proposed_start", enquiry.ProposedStart).
		Set("proposed_end", enquiry.ProposedEnd).
		Set("scheduled_date", enquiry.ScheduledDate).
		Set("scheduled_time", enquiry.ScheduledTime).
		Set("estimated_cost", enquiry.EstimatedCost).
		Set("actual_cost", enquiry.ActualCost).
		Set("payment_status", enquiry.PaymentStatus).
		Set("payment_method", enquiry.PaymentMethod).
		Set("payment_reference", enquiry.PaymentReference).
		Set("offline_payment_note", enquiry.OfflinePaymentNote).
		Set("payment_date", enquiry.PaymentDate).
		Set("completed_at", enquiry.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": enquiry.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	enquiry.UpdatedAt = updatedAt.Time

	return enquiry, nil
}

// Delete физически удаляет заявку (явное действие сотрудника, минуя жизненный цикл)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("enquiries").
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
		return ErrEnquiryNotFound
	}

	return nil
}

// Stats возвращает агрегаты по статусам и типам работ
func (r *Repository) Stats(ctx context.Context) ([]StatsRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"status",
		"work_type",
		"COUNT(*)",
		"COALESCE(SUM(cubic_feet), 0)",
		"COUNT(*) FILTER (WHERE payment_status <> 'PAID')",
	).
		From("enquiries").
		GroupBy("status", "work_type").
		OrderBy("status", "work_type").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]StatsRow, 0)
	for rows.Next() {
		var row StatsRow
		if err := rows.Scan(&row.Status, &row.WorkType, &row.Count, &row.CubicFeet, &row.PendingPayment); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan row: %w", ErrScanRow, err)
		}
		stats = append(stats, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %w", ErrScanRow, err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEnquiry(row rowScanner) (*domain.Enquiry, error) {
	var e domain.Enquiry
	var logItems []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.CustomerName,
		&e.CustomerEmail,
		&e.Phone,
		&e.WorkType,
		&logItems,
		&e.CubicFeet,
		&e.NumberOfLogs,
		&e.ProcessingHours,
		&e.RatePerHour,
		&e.RequestedDate,
		&e.RequestedTime,
		&e.Notes,
		&e.Status,
		&e.AdminNotes,
		&e.AcceptedDate,
		&e.AcceptedStart,
		&e.AcceptedEnd,
		&e.ProposedDate,
		&e.ProposedStart,
		&e.ProposedEnd,
		&e.ScheduledDate,
		&e.ScheduledTime,
		&e.EstimatedCost,
		&e.ActualCost,
		&e.PaymentStatus,
		&e.PaymentMethod,
		&e.PaymentReference,
		&e.OfflinePaymentNote,
		&e.PaymentDate,
		&e.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(logItems) > 0 {
		if err := json.Unmarshal(logItems, &e.LogItems); err != nil {
			return nil, fmt.Errorf("decode log items: %w", err)
		}
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}

// scanEnquiries сканирует результаты запроса в слайс заявок
func scanEnquiries(rows *sql.Rows) ([]*domain.Enquiry, error) {
	enquiries := make([]*domain.Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan enquiry: %w", ErrScanRow, err)
		}
		enquiries = append(enquiries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return enquiries, nil
}

func encodeLogItems(items []domain.LogItem) (string, error) {
	if items == nil {
		items = []domain.LogItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
