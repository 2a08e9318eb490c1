package models

import (
	"errors"
	"math"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Действия над записью
const (
	ActionConfirm  = "confirm"
	ActionDelay    = "delay"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// Request модели

// ListRequest запрос на получение записей
type ListRequest struct {
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	ProfessionalUsername *string    `json:"professional,omitempty"`
	Status               *string    `json:"status,omitempty"`
	IncludeCancelled     bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		ProfessionalUsername: r.ProfessionalUsername,
		IncludeCancelled:     r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// TransitionRequest запрос на смену статуса записи
type TransitionRequest struct {
	Action        string  `json:"action"`
	PaymentStatus *string `json:"paymentStatus,omitempty"` // обязателен для complete
}

// Response модели

// ServiceResponse услуга в составе записи
type ServiceResponse struct {
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                   int64             `json:"id"`
	ClientName           string            `json:"clientName"`
	ClientPhone          string            `json:"clientPhone"`
	ClientEmail          *string           `json:"clientEmail,omitempty"`
	ProfessionalUsername string            `json:"professional"`
	Services             []ServiceResponse `json:"services"`
	Date                 string            `json:"date"`      // "2026-05-04"
	StartTime            string            `json:"startTime"` // "10:00"
	EndTime              string            `json:"endTime"`   // "11:00"
	DateTime             time.Time         `json:"dateTime"`
	EndDateTime          time.Time         `json:"endDateTime"`
	DurationMinutes      int               `json:"durationMinutes"`
	TotalValue           float64           `json:"totalValue"`
	Status               string            `json:"status"`
	PaymentStatus        *string           `json:"paymentStatus,omitempty"`
	Observations         *string           `json:"observations,omitempty"`
	IsPackageAppointment bool              `json:"isPackageAppointment"`
	PackageID            *string           `json:"packageId,omitempty"`
	CreatedAt            *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt            *time.Time        `json:"updatedAt,omitempty"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// PaymentProofResponse результат распознавания подтверждения оплаты
type PaymentProofResponse struct {
	ExtractedValue float64              `json:"extractedValue"`
	TotalValue     float64              `json:"totalValue"`
	Covered        bool                 `json:"covered"`
	Appointment    *AppointmentResponse `json:"appointment"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO, время приводится к часовому поясу loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	if loc == nil {
		loc = a.DateTime.Location()
	}

	start := a.DateTime.In(loc)
	end := a.EndTime.In(loc)

	resp := &AppointmentResponse{
		ID:                   a.ID,
		ClientName:           a.ClientName,
		ClientPhone:          a.ClientPhone,
		ClientEmail:          a.ClientEmail,
		ProfessionalUsername: a.ProfessionalUsername,
		Services:             make([]ServiceResponse, 0, len(a.Services)),
		Date:                 start.Format(domain.DateFormat),
		StartTime:            start.Format(domain.TimeFormat),
		EndTime:              end.Format(domain.TimeFormat),
		DateTime:             start,
		EndDateTime:          end,
		DurationMinutes:      a.TotalDurationMinutes(),
		TotalValue:           math.Round(a.TotalValue()*100) / 100,
		Status:               string(a.Status),
		Observations:         a.Observations,
		IsPackageAppointment: a.IsPackageAppointment,
		PackageID:            a.PackageID,
	}

	for _, s := range a.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			Name:            s.Name,
			Value:           s.Value,
			DurationMinutes: s.DurationMinutes,
			Category:        s.Category,
		})
	}

	if a.PaymentStatus != nil {
		payment := string(*a.PaymentStatus)
		resp.PaymentStatus = &payment
	}
	if !a.CreatedAt.IsZero() {
		created := a.CreatedAt
		resp.CreatedAt = &created
	}
	if !a.UpdatedAt.IsZero() {
		updated := a.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(items []domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(items)),
	}

	for i := range items {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(&items[i], loc))
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	p := domain.PaymentStatus(status)
	if !p.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return p, nil
}
