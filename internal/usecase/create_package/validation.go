package create_package

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/packages"
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

	if len(req.Rotation) == 0 {
		return fmt.Errorf("%w: rotation is required", ErrInvalidInput)
	}

	if req.FirstDate.IsZero() {
		return fmt.Errorf("%w: first date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if (req.TotalPrice == nil) == (req.PricePerSession == nil) {
		return fmt.Errorf("%w: exactly one of total price or price per session is required", ErrInvalidInput)
	}

	return nil
}

// sessionPrice цена одной сессии
func sessionPrice(req *Request) (float64, error) {
	var price float64
	if req.TotalPrice != nil {
		price = packages.SessionPrice(*req.TotalPrice)
	} else {
		price = *req.PricePerSession
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return price, nil
}

// mapAvailabilityError переводит ошибку проверки сессии в ошибку usecase
func mapAvailabilityError(session int, err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotBusy):
		return fmt.Errorf("%w: session %d: %v", ErrSlotNotAvailable, session, err)
	case errors.Is(err, availability.ErrDayOff):
		return fmt.Errorf("%w: session %d", ErrProfessionalDayOff, session)
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return fmt.Errorf("%w: session %d: %v", ErrOutsideWorkingHours, session, err)
	case errors.Is(err, availability.ErrOffGrid):
		return fmt.Errorf("%w: session %d: %v", ErrInvalidTime, session, err)
	case errors.Is(err, availability.ErrInvalidQuery):
		return fmt.Errorf("%w: session %d: %v", ErrInvalidInput, session, err)
	default:
		return fmt.Errorf("%w: failed to check session %d: %v", ErrInternal, session, err)
	}
}
