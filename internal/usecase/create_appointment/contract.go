package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
)

// ScheduleRepository интерфейс репозитория профессионалов и блокировок
type ScheduleRepository interface {
	GetProfessional(ctx context.Context, username string) (*domain.Professional, error)
	ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByDate в транзакции блокирует записи дня (FOR UPDATE)
	ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error)
	Save(ctx context.Context, items ...domain.Appointment) error
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Calculator интерфейс проверки занятости интервала
type Calculator interface {
	CheckSpan(q availability.Query, start time.Time) error
}

// Lifecycle интерфейс автомата статусов записи
type Lifecycle interface {
	Create(draft domain.Appointment) (domain.Appointment, domain.Event, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий записей
type Notifier interface {
	Notify(ctx context.Context, events ...domain.Event)
}

// Metrics интерфейс метрик планирования
type Metrics interface {
	AppointmentCreated(status, source string)
	AppointmentEvent(kind string)
	SchedulingConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
