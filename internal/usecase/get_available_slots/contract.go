package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// ScheduleRepository интерфейс репозитория профессионалов и блокировок
type ScheduleRepository interface {
	GetProfessional(ctx context.Context, username string) (*domain.Professional, error)
	ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByDate получает записи на дату (без отмененных), опционально по профессионалу
	ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Calculator интерфейс калькулятора доступности
type Calculator interface {
	FindAvailableStarts(q availability.Query) ([]types.TimeString, error)
}

// Metrics интерфейс метрик планирования
type Metrics interface {
	EmptyAvailability()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
