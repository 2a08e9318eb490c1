package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Источники создания записи (метка метрик)
const (
	SourceManual = "manual"
	SourceText   = "text"
)

// Request запрос на создание записи
type Request struct {
	ClientName           string
	ClientPhone          string
	ClientEmail          *string
	ProfessionalUsername string
	ServiceNames         []string
	Date                 time.Time // календарная дата в часовом поясе салона
	StartTime            types.TimeString
	Observations         *string
	// Force сохраняет запись, даже если интервал занят
	Force bool
	// Source источник создания: manual или text
	Source string
}

// Response созданная запись
type Response struct {
	Appointment domain.Appointment
	// Overridden true, если конфликт был проигнорирован через Force
	Overridden bool
}
