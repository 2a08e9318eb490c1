package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// SubmitRequest публичная заявка на запись
type SubmitRequest struct {
	ClientName           string
	ClientPhone          string
	ClientEmail          *string
	ProfessionalUsername string
	ServiceNames         []string
	Date                 time.Time
	StartTime            types.TimeString
	Observations         *string
}

// ApproveRequest запрос на одобрение заявки
type ApproveRequest struct {
	// Force одобряет заявку, даже если интервал уже занят
	Force bool `json:"force"`
}
