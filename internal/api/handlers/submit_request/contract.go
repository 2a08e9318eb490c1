package submit_request

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
)

type RequestService interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (*appointmentModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
