package schedule_from_text

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	return nil
}

// resolveProfessional ищет профессионала по имени или username без учета регистра
// Отсутствующее имя не угадывается
func resolveProfessional(professionals []domain.Professional, name *string) (*domain.Professional, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: professional is not mentioned", ErrProfessionalNotResolved)
	}

	wanted := strings.TrimSpace(*name)
	for i := range professionals {
		if strings.EqualFold(professionals[i].Name, wanted) || strings.EqualFold(professionals[i].Username, wanted) {
			return &professionals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfessionalNotResolved, wanted)
}

// parseWhen разбирает дату и время из ответа сервиса распознавания
func parseWhen(parsed *inference.ParsedAppointment) (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, parsed.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid date %q", ErrNotRecognized, parsed.Date)
	}

	start, err := types.NewTimeStringFromString(parsed.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid time %q", ErrNotRecognized, parsed.Time)
	}

	return date, start, nil
}
