package create_package

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = fmt.Errorf("professional not found: %w", domain.ErrUnresolvedReference)

	// ErrServiceNotFound возвращается, когда услуга ротации не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("service not found: %w", domain.ErrUnresolvedReference)

	// ErrSlotNotAvailable возвращается, когда интервал первой сессии недоступен
	ErrSlotNotAvailable = errors.New("first session slot is not available")

	// ErrProfessionalDayOff возвращается, когда сессия выпадает на выходной профессионала
	ErrProfessionalDayOff = errors.New("professional does not work on the session date")

	// ErrOutsideWorkingHours возвращается, когда сессия выходит за рабочее время
	ErrOutsideWorkingHours = errors.New("session is outside working hours")

	// ErrInvalidTime возвращается, когда время начала не попадает на сетку
	ErrInvalidTime = fmt.Errorf("start time is not on the grid: %w", ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
