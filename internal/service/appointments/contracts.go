package appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) (domain.Appointments, error)
	ListByPackage(ctx context.Context, packageID string) (domain.Appointments, error)
	ListByClientPhone(ctx context.Context, phone string) (domain.Appointments, error)
	Save(ctx context.Context, items ...domain.Appointment) error
}

// Lifecycle интерфейс автомата статусов записи
type Lifecycle interface {
	Confirm(a domain.Appointment) (domain.Appointment, domain.Event, error)
	Delay(a domain.Appointment) (domain.Appointment, domain.Event, error)
	Complete(a domain.Appointment, payment domain.PaymentStatus) (domain.Appointment, domain.Event, error)
	Cancel(a domain.Appointment) (domain.Appointment, domain.Event, error)
	SettlePayment(a domain.Appointment) (domain.Appointment, domain.Event, error)
}

// InferenceClient интерфейс клиента распознавания чеков
type InferenceClient interface {
	ExtractPaymentValue(ctx context.Context, image []byte, contentType string) (*inference.PaymentValue, error)
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
	AppointmentEvent(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
