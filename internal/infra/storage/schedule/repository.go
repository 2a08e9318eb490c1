package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

var professionalColumns = []string{"username", "name", "work_schedule", "created_at", "updated_at"}

var blockedColumns = []string{"id", "date", "is_full_day", "start_time", "end_time", "reason", "created_at"}

// Repository профессионалы и их расписания, блокировки салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProfessional получает профессионала по username
func (r *Repository) GetProfessional(ctx context.Context, username string) (*domain.Professional, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanProfessionals(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrProfessionalNotFound
	}
	return &items[0], nil
}

// ListProfessionals возвращает всех профессионалов по имени
func (r *Repository) ListProfessionals(ctx context.Context) ([]domain.Professional, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanProfessionals(rows)
}

// UpdateWorkSchedule заменяет расписание профессионала целиком
func (r *Repository) UpdateWorkSchedule(ctx context.Context, username string, schedule domain.WorkSchedule) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	if schedule == nil {
		schedule = domain.WorkSchedule{}
	}
	encoded, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkSchedule - %s: %v", ErrEncode, username, err)
	}

	query, args, err := psqlbuilder.Update("professionals").
		Set("work_schedule", encoded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateWorkSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

// ListBlockedByDate блокировки на дату
func (r *Repository) ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error) {
	return r.ListBlocked(ctx, &day, &day)
}

// ListBlocked блокировки за период (границы включительно, nil - без ограничения)
func (r *Repository) ListBlocked(ctx context.Context, from, to *time.Time) ([]domain.BlockedSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockedColumns...).From("blocked_slots")
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.OrderBy("date ASC", "start_time ASC NULLS FIRST").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BlockedSlot, 0)
	for rows.Next() {
		var (
			b         domain.BlockedSlot
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Date, &b.IsFullDay, &b.StartTime, &b.EndTime, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlocked - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocked - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// CreateBlocked создает блокировку
func (r *Repository) CreateBlocked(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_slots").
		Columns("date", "is_full_day", "start_time", "end_time", "reason").
		Values(b.Date.Format(domain.DateFormat), b.IsFullDay, b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlocked - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlocked - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// DeleteBlocked удаляет блокировку
func (r *Repository) DeleteBlocked(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}
	return nil
}

func scanProfessionals(rows *sql.Rows) ([]domain.Professional, error) {
	items := make([]domain.Professional, 0)

	for rows.Next() {
		var (
			p         domain.Professional
			schedule  []byte
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&p.Username, &p.Name, &schedule, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanProfessionals - scan row: %v", ErrScanRow, err)
		}

		p.WorkSchedule = domain.WorkSchedule{}
		if len(schedule) > 0 {
			if err := json.Unmarshal(schedule, &p.WorkSchedule); err != nil {
				return nil, fmt.Errorf("%w: scanProfessionals - decode schedule of %s: %v", ErrScanRow, p.Username, err)
			}
		}
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanProfessionals - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
