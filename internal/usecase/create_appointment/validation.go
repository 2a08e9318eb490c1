package create_appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ProfessionalUsername) == "" {
		return fmt.Errorf("%w: professional is required", ErrInvalidInput)
	}

	if len(req.ServiceNames) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// mapAvailabilityError переводит ошибку проверки интервала в ошибку usecase
func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotBusy):
		return ErrSlotNotAvailable
	case errors.Is(err, availability.ErrDayOff):
		return ErrProfessionalDayOff
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return ErrOutsideWorkingHours
	case errors.Is(err, availability.ErrOffGrid):
		return ErrInvalidTime
	case errors.Is(err, availability.ErrInvalidQuery):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
}
