package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ProfessionalUsername) == "" {
		return fmt.Errorf("%w: professional is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes == 0 && len(req.ServiceNames) == 0 {
		return fmt.Errorf("%w: duration or services are required", ErrInvalidInput)
	}

	return nil
}

// totalDuration суммирует длительность услуг каталога по именам (без учета регистра)
func totalDuration(catalog []domain.Service, names []string) (int, error) {
	total := 0
	for _, name := range names {
		found := false
		for _, s := range catalog {
			if strings.EqualFold(strings.TrimSpace(name), s.Name) {
				total += s.DurationMinutes
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
		}
	}
	return total, nil
}
