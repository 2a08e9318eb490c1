package requests

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("professional not found: %w", domain.ErrUnresolvedReference)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("service not found: %w", domain.ErrUnresolvedReference)

	// ErrSlotNotAvailable возвращается, когда запрошенный интервал занят
	ErrSlotNotAvailable = fmt.Errorf("requested slot is not available: %w", domain.ErrStaleConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
