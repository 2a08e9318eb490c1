package notifier

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// EventMessage сообщение, публикуемое в канал событий записей
type EventMessage struct {
	Kind        string             `json:"kind"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Appointment AppointmentPayload `json:"appointment"`
}

// AppointmentPayload данные записи, достаточные для составления уведомления клиенту
type AppointmentPayload struct {
	ID                   int64            `json:"id"`
	ClientName           string           `json:"clientName"`
	ClientPhone          string           `json:"clientPhone"`
	ClientEmail          *string          `json:"clientEmail,omitempty"`
	ProfessionalUsername string           `json:"professionalUsername"`
	Services             []domain.Service `json:"services"`
	DateTime             time.Time        `json:"dateTime"`
	EndTime              time.Time        `json:"endTime"`
	Status               string           `json:"status"`
	PaymentStatus        *string          `json:"paymentStatus,omitempty"`
	PackageID            *string          `json:"packageId,omitempty"`
}

func toMessage(ev domain.Event, at time.Time) EventMessage {
	a := ev.Appointment
	payload := AppointmentPayload{
		ID:                   a.ID,
		ClientName:           a.ClientName,
		ClientPhone:          a.ClientPhone,
		ClientEmail:          a.ClientEmail,
		ProfessionalUsername: a.ProfessionalUsername,
		Services:             a.Services,
		DateTime:             a.DateTime,
		EndTime:              a.EndTime,
		Status:               string(a.Status),
		PackageID:            a.PackageID,
	}
	if a.PaymentStatus != nil {
		ps := string(*a.PaymentStatus)
		payload.PaymentStatus = &ps
	}
	return EventMessage{Kind: string(ev.Kind), OccurredAt: at, Appointment: payload}
}
