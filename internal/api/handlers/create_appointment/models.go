package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName   string   `json:"clientName"`
	ClientPhone  string   `json:"clientPhone"`
	ClientEmail  *string  `json:"clientEmail,omitempty"`
	Professional string   `json:"professional"`
	Services     []string `json:"services"`
	Date         string   `json:"date"`      // "2026-05-04"
	StartTime    string   `json:"startTime"` // "10:00"
	Observations *string  `json:"observations,omitempty"`
	Force        bool     `json:"force,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	*appointmentModels.AppointmentResponse
	Overridden bool `json:"overridden"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientName:           r.ClientName,
		ClientPhone:          r.ClientPhone,
		ClientEmail:          r.ClientEmail,
		ProfessionalUsername: r.Professional,
		ServiceNames:         r.Services,
		Date:                 date,
		StartTime:            startTime,
		Observations:         r.Observations,
		Force:                r.Force,
		Source:               createAppointment.SourceManual,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentResponse: appointmentModels.FromDomainAppointment(&resp.Appointment, loc),
		Overridden:          resp.Overridden,
	}
}
