package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotConflict возвращается, когда целевой интервал занят; можно повторить с force
	ErrSlotConflict = fmt.Errorf("target slot is not available: %w", domain.ErrStaleConflict)

	// ErrCompletionRequired возвращается при переносе в прошлое без решения об оплате
	ErrCompletionRequired = errors.New("moving to the past requires completion with payment status")

	// ErrInvalidTransition возвращается, когда запись в терминальном статусе
	ErrInvalidTransition = errors.New("appointment cannot be moved in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
