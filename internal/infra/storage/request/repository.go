package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

const table = "appointment_requests"

var columns = []string{
	"id",
	"client_name",
	"client_phone",
	"client_email",
	"professional_username",
	"services",
	"date_time",
	"end_time",
	"observations",
	"created_at",
}

// Repository очередь публичных заявок (статус pending)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет заявку в очередь
func (r *Repository) Create(ctx context.Context, a domain.Appointment) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	services, err := json.Marshal(a.Services)
	if err != nil {
		return fmt.Errorf("%w: Create - request id=%d: %v", ErrEncode, a.ID, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			a.ID,
			a.ClientName,
			a.ClientPhone,
			a.ClientEmail,
			a.ProfessionalUsername,
			services,
			a.DateTime,
			a.EndTime,
			a.Observations,
			a.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrRequestNotFound
	}
	return &items[0], nil
}

// List возвращает все заявки в порядке поступления
func (r *Repository) List(ctx context.Context) ([]domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// Delete удаляет заявку из очереди (после одобрения или отклонения)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// scanRequests сканирует заявки; статус всегда pending
func scanRequests(rows *sql.Rows) ([]domain.Appointment, error) {
	items := make([]domain.Appointment, 0)

	for rows.Next() {
		var (
			a         domain.Appointment
			services  []byte
			createdAt sql.NullTime
		)

		err := rows.Scan(
			&a.ID,
			&a.ClientName,
			&a.ClientPhone,
			&a.ClientEmail,
			&a.ProfessionalUsername,
			&services,
			&a.DateTime,
			&a.EndTime,
			&a.Observations,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(services, &a.Services); err != nil {
			return nil, fmt.Errorf("%w: scanRequests - decode services of id=%d: %v", ErrScanRow, a.ID, err)
		}
		a.Status = domain.StatusPending
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = createdAt.Time

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
