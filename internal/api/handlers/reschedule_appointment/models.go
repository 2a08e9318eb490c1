package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	TargetDate string `json:"targetDate"`
	// Ровно одно из полей: смещение указателя от полуночи или время начала
	OffsetMinutes *int    `json:"offsetMinutes,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
	Force         bool    `json:"force,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	*appointmentModels.AppointmentResponse
	Completed  bool `json:"completed"`
	Overridden bool `json:"overridden"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(id int64, loc *time.Location) (*rescheduleAppointment.Request, error) {
	targetDate, err := handlers.ParseDate(r.TargetDate, loc)
	if err != nil {
		return nil, err
	}

	req := &rescheduleAppointment.Request{
		AppointmentID: id,
		TargetDate:    targetDate,
		OffsetMinutes: r.OffsetMinutes,
		Force:         r.Force,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.PaymentStatus != nil {
		payment, err := appointmentModels.ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return nil, err
		}
		req.PaymentStatus = &payment
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response, loc *time.Location) *RescheduleResponse {
	a := resp.Appointment
	return &RescheduleResponse{
		AppointmentResponse: appointmentModels.FromDomainAppointment(&a, loc),
		Completed:           resp.Completed,
		Overridden:          resp.Overridden,
	}
}

