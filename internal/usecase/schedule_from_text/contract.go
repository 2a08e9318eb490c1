package schedule_from_text

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
)

// InferenceClient интерфейс клиента сервиса распознавания
type InferenceClient interface {
	ParseAppointment(ctx context.Context, text string) (*inference.ParsedAppointment, error)
}

// ScheduleRepository интерфейс репозитория профессионалов
type ScheduleRepository interface {
	ListProfessionals(ctx context.Context) ([]domain.Professional, error)
}

// AppointmentCreator интерфейс use case создания записи
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
