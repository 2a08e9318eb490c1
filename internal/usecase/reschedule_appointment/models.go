package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request запрос на перенос записи (drag-and-drop в календаре)
type Request struct {
	AppointmentID int64
	TargetDate    time.Time
	// Ровно одно из полей: смещение указателя от полуночи в минутах или время начала
	OffsetMinutes *int
	StartTime     *types.TimeString
	// Force сохраняет перенос, даже если интервал занят
	Force bool
	// PaymentStatus решение об оплате при переносе в прошлое
	PaymentStatus *domain.PaymentStatus
}

// Response перенесенная запись
type Response struct {
	Appointment domain.Appointment
	// Completed true, если перенос в прошлое завершил запись
	Completed  bool
	Overridden bool
}
