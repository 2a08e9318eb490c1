package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request запрос на получение свободного времени начала
type Request struct {
	ProfessionalUsername string
	Date                 time.Time // календарная дата, время игнорируется
	// DurationMinutes длительность в минутах; если 0, берется сумма длительностей ServiceNames
	DurationMinutes int
	ServiceNames    []string
	// ExcludeAppointmentID запись, которая не считается занятой (перенос самой себя)
	ExcludeAppointmentID int64
}

// Response свободные времена начала на дату
type Response struct {
	ProfessionalUsername string
	Date                 time.Time
	DurationMinutes      int
	Slots                []types.TimeString
}
