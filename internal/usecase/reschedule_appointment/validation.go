package reschedule_appointment

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", ErrInvalidInput)
	}

	if (req.OffsetMinutes == nil) == (req.StartTime == nil) {
		return fmt.Errorf("%w: exactly one of offset or start time is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.PaymentStatus != nil && !req.PaymentStatus.IsValid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *req.PaymentStatus)
	}

	return nil
}

// offsetMinutes смещение указателя от полуночи
func offsetMinutes(req *Request) int {
	if req.OffsetMinutes != nil {
		return *req.OffsetMinutes
	}
	return req.StartTime.Minutes()
}
