package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidQuery возвращается при некорректных параметрах запроса (длительность <= 0 и т.п.)
	ErrInvalidQuery = fmt.Errorf("availability: %w", domain.ErrValidation)

	// ErrDayOff возвращается, когда у профессионала выходной в этот день
	ErrDayOff = errors.New("availability: professional is off on this day")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочее окно или сетку
	ErrOutsideWorkingHours = errors.New("availability: span is outside working hours")

	// ErrOffGrid возвращается, когда время начала не совпадает с шагом сетки
	ErrOffGrid = errors.New("availability: start is not aligned to the time grid")

	// ErrSlotBusy возвращается, когда хотя бы один слот интервала занят
	ErrSlotBusy = errors.New("availability: span overlaps a busy slot")
)
