package approve_request

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
)

type RequestService interface {
	Approve(ctx context.Context, id int64, req *models.ApproveRequest) (*appointmentModels.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
