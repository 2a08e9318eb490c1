package appointment

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

const table = "appointments"

var columns = []string{
	"id",
	"client_name",
	"client_phone",
	"client_email",
	"professional_username",
	"services",
	"date_time",
	"end_time",
	"status",
	"payment_status",
	"observations",
	"is_package_appointment",
	"package_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save сохраняет записи целиком (upsert по id)
// Вызывающий передает полный результат перехода; частичных обновлений нет
func (r *Repository) Save(ctx context.Context, items ...domain.Appointment) error {
	if len(items) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(table).Columns(columns...)
	for _, a := range items {
		services, err := json.Marshal(a.Services)
		if err != nil {
			return fmt.Errorf("%w: Save - appointment id=%d: %v", ErrEncode, a.ID, err)
		}
		builder = builder.Values(
			a.ID,
			a.ClientName,
			a.ClientPhone,
			a.ClientEmail,
			a.ProfessionalUsername,
			services,
			a.DateTime,
			a.EndTime,
			a.Status,
			a.PaymentStatus,
			a.Observations,
			a.IsPackageAppointment,
			a.PackageID,
			a.CreatedAt,
			a.UpdatedAt,
		)
	}

	query, args, err := builder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			client_phone = EXCLUDED.client_phone,
			client_email = EXCLUDED.client_email,
			professional_username = EXCLUDED.professional_username,
			services = EXCLUDED.services,
			date_time = EXCLUDED.date_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			payment_status = EXCLUDED.payment_status,
			observations = EXCLUDED.observations,
			is_package_appointment = EXCLUDED.is_package_appointment,
			package_id = EXCLUDED.package_id,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrAppointmentNotFound
	}
	return &items[0], nil
}

// List получает записи по фильтру, отсортированные по времени начала
// Внутри транзакции выборка на один день блокируется (FOR UPDATE), чтобы проверка занятости и запись шли атомарно
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) (domain.Appointments, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date_time": domain.StartOfDay(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date_time": domain.StartOfDay(*filter.EndDate).AddDate(0, 0, 1)})
	}
	if filter.ProfessionalUsername != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_username": *filter.ProfessionalUsername})
	}
	if filter.ClientPhone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_phone": *filter.ClientPhone})
	}
	if filter.PackageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"package_id": *filter.PackageID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("date_time ASC", "id ASC")

	if txmanager.IsInTransaction(ctx) && isSingleDay(filter) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByDate записи на дату (без отмененных); professional = nil - всех профессионалов
func (r *Repository) ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error) {
	return r.List(ctx, domain.AppointmentsFilter{
		StartDate:            &day,
		EndDate:              &day,
		ProfessionalUsername: professional,
	})
}

// ListByPackage все записи пакета, включая отмененные
func (r *Repository) ListByPackage(ctx context.Context, packageID string) (domain.Appointments, error) {
	return r.List(ctx, domain.AppointmentsFilter{PackageID: &packageID, IncludeCancelled: true})
}

// ListByClientPhone история клиента по нормализованному телефону, включая отмененные
func (r *Repository) ListByClientPhone(ctx context.Context, phone string) (domain.Appointments, error) {
	normalized := domain.NormalizePhone(phone)
	return r.List(ctx, domain.AppointmentsFilter{ClientPhone: &normalized, IncludeCancelled: true})
}

func isSingleDay(filter domain.AppointmentsFilter) bool {
	return filter.StartDate != nil && filter.EndDate != nil && domain.SameDay(*filter.StartDate, *filter.EndDate)
}

// scanAppointments сканирует результаты запроса в снимок записей
func scanAppointments(rows *sql.Rows) (domain.Appointments, error) {
	items := make(domain.Appointments, 0)

	for rows.Next() {
		var (
			a             domain.Appointment
			services      []byte
			paymentStatus sql.NullString
			createdAt     sql.NullTime
			updatedAt     sql.NullTime
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
			&a.Status,
			&paymentStatus,
			&a.Observations,
			&a.IsPackageAppointment,
			&a.PackageID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(services, &a.Services); err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - decode services of id=%d: %v", ErrScanRow, a.ID, err)
		}
		if paymentStatus.Valid {
			ps := domain.PaymentStatus(paymentStatus.String)
			a.PaymentStatus = &ps
		}
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
