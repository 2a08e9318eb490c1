package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("professional not found: %w", domain.ErrUnresolvedReference)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("service not found: %w", domain.ErrUnresolvedReference)

	// ErrSlotNotAvailable возвращается, когда интервал занят записью или блокировкой
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrProfessionalDayOff возвращается, когда у профессионала выходной
	ErrProfessionalDayOff = errors.New("professional does not work on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочее время
	ErrOutsideWorkingHours = errors.New("outside working hours")

	// ErrInvalidTime возвращается, когда время начала не попадает на сетку
	ErrInvalidTime = fmt.Errorf("start time is not on the grid: %w", ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
