package schedule_from_text

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrNotRecognized возвращается, когда текст не удалось разобрать в запись
	ErrNotRecognized = errors.New("text was not recognized as an appointment")

	// ErrProfessionalNotResolved возвращается, когда профессионал не указан или не найден
	ErrProfessionalNotResolved = fmt.Errorf("professional could not be resolved: %w", domain.ErrUnresolvedReference)

	// ErrInferenceUnavailable возвращается, когда сервис распознавания недоступен
	ErrInferenceUnavailable = errors.New("inference service is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
