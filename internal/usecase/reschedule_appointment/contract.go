package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/reschedule"
)

// ScheduleRepository интерфейс репозитория профессионалов и блокировок
type ScheduleRepository interface {
	GetProfessional(ctx context.Context, username string) (*domain.Professional, error)
	ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error)
	Save(ctx context.Context, items ...domain.Appointment) error
}

// Resolver интерфейс разрешения drop-операции в интервал
type Resolver interface {
	ResolveDrop(a domain.Appointment, pointerOffsetMinutes int, targetDay time.Time) (reschedule.Candidate, error)
	Validate(c reschedule.Candidate, q availability.Query) error
}

// Lifecycle интерфейс автомата статусов записи
type Lifecycle interface {
	CheckMovable(a domain.Appointment) error
	Move(a domain.Appointment, start, end time.Time) (domain.Appointment, domain.Event, error)
	CompleteMove(a domain.Appointment, start, end time.Time, payment domain.PaymentStatus) (domain.Appointment, domain.Event, error)
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
	AppointmentEvent(kind string)
	SchedulingConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
