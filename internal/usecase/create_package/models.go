package create_package

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Request запрос на создание пакета из четырех еженедельных сессий
type Request struct {
	ClientName           string
	ClientPhone          string
	ClientEmail          *string
	ProfessionalUsername string
	// Rotation имена услуг по сессиям; сессия i использует Rotation[i % len(Rotation)]
	Rotation     [][]string
	FirstDate    time.Time
	StartTime    types.TimeString
	Observations *string
	// Ровно одно из полей: общая цена пакета или цена одной сессии
	TotalPrice      *float64
	PricePerSession *float64
	// Force создает пакет, даже если интервал первой сессии занят
	Force bool
}

// SessionConflict конфликт одной из сессий пакета (не блокирует создание)
type SessionConflict struct {
	Session  int
	DateTime time.Time
	Reason   string
}

// Response созданные сессии пакета
type Response struct {
	PackageID       string
	PricePerSession float64
	Appointments    []domain.Appointment
	Conflicts       []SessionConflict
}
