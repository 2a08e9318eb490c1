package requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
)

// RequestRepository интерфейс очереди публичных заявок
type RequestRepository interface {
	Create(ctx context.Context, a domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error)
	Save(ctx context.Context, items ...domain.Appointment) error
}

// ScheduleRepository интерфейс репозитория профессионалов и блокировок
type ScheduleRepository interface {
	GetProfessional(ctx context.Context, username string) (*domain.Professional, error)
	ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error)
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
	Now() time.Time
	Submit(draft domain.Appointment) (domain.Appointment, error)
	Approve(request domain.Appointment) (domain.Appointment, domain.Event, error)
	Reject(request domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
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
