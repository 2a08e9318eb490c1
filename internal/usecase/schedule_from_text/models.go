package schedule_from_text

import (
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
)

// Request запрос на создание записи из текста на естественном языке
type Request struct {
	Text        string
	ClientPhone string
	ClientEmail *string
	Force       bool
}

// Response созданная запись и результат разбора
type Response struct {
	Appointment domain.Appointment
	Parsed      inference.ParsedAppointment
	Overridden  bool
}
