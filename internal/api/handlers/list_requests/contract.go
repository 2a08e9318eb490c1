package list_requests

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
)

type RequestService interface {
	List(ctx context.Context) (*appointmentModels.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
