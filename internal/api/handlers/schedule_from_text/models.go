package schedule_from_text

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	scheduleFromText "github.com/m04kA/SMC-SalonScheduler/internal/usecase/schedule_from_text"
)

// ScheduleFromTextRequest HTTP request model
type ScheduleFromTextRequest struct {
	Text        string  `json:"text"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Force       bool    `json:"force,omitempty"`
}

// ScheduleFromTextResponse HTTP response model
type ScheduleFromTextResponse struct {
	Appointment *appointmentModels.AppointmentResponse `json:"appointment"`
	Parsed      inference.ParsedAppointment            `json:"parsed"`
	Overridden  bool                                   `json:"overridden"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScheduleFromTextRequest) ToUseCaseRequest() *scheduleFromText.Request {
	return &scheduleFromText.Request{
		Text:        r.Text,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Force:       r.Force,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scheduleFromText.Response, loc *time.Location) *ScheduleFromTextResponse {
	return &ScheduleFromTextResponse{
		Appointment: appointmentModels.FromDomainAppointment(&resp.Appointment, loc),
		Parsed:      resp.Parsed,
		Overridden:  resp.Overridden,
	}
}
