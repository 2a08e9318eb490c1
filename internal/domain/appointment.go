package domain

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusDelayed   AppointmentStatus = "delayed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true if the status is one of the known lifecycle states
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusConfirmed, StatusDelayed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no transition may leave the status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus is the payment outcome recorded on completion
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

// IsValid returns true for the two accepted payment outcomes
func (p PaymentStatus) IsValid() bool {
	return p == PaymentPaid || p == PaymentPending
}

// Service is a catalog entry. Appointments keep their own copy.
type Service struct {
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category,omitempty"`
}

// Appointment represents a booked (or requested) visit of a client to a professional
type Appointment struct {
	ID                   int64
	ClientName           string
	ClientPhone          string
	ClientEmail          *string
	ProfessionalUsername string
	Services             []Service
	DateTime             time.Time
	EndTime              time.Time
	Status               AppointmentStatus
	PaymentStatus        *PaymentStatus
	Observations         *string

	IsPackageAppointment bool
	PackageID            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDurationMinutes returns the sum of the snapshot services durations
func (a *Appointment) TotalDurationMinutes() int {
	total := 0
	for _, s := range a.Services {
		total += s.DurationMinutes
	}
	return total
}

// TotalValue returns the sum of the snapshot services values
func (a *Appointment) TotalValue() float64 {
	total := 0.0
	for _, s := range a.Services {
		total += s.Value
	}
	return total
}

// Duration returns EndTime - DateTime
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.DateTime)
}

// OccupiesCalendar returns true if the appointment blocks its time span
// Pending requests are not on the calendar and cancelled ones are soft-deleted
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status != StatusCancelled && a.Status != StatusPending
}

// Overlaps returns true if [DateTime, EndTime) intersects [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.DateTime.Before(end) && a.EndTime.After(start)
}

// Clone returns a deep copy so callers never share slices or pointers with a snapshot
func (a Appointment) Clone() Appointment {
	out := a
	if a.Services != nil {
		out.Services = make([]Service, len(a.Services))
		copy(out.Services, a.Services)
	}
	if a.ClientEmail != nil {
		v := *a.ClientEmail
		out.ClientEmail = &v
	}
	if a.PaymentStatus != nil {
		v := *a.PaymentStatus
		out.PaymentStatus = &v
	}
	if a.Observations != nil {
		v := *a.Observations
		out.Observations = &v
	}
	if a.PackageID != nil {
		v := *a.PackageID
		out.PackageID = &v
	}
	return out
}

// EventKind describes what a lifecycle transition did to an appointment
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventUpdated   EventKind = "updated"
	EventCancelled EventKind = "cancelled"
)

// Event is emitted by every successful transition; the caller decides whether to notify
type Event struct {
	Appointment Appointment
	Kind        EventKind
}

// AppointmentsFilter filter for listing appointments
type AppointmentsFilter struct {
	StartDate            *time.Time // inclusive, by local date of DateTime
	EndDate              *time.Time // inclusive
	ProfessionalUsername *string
	ClientPhone          *string // normalized digits
	PackageID            *string
	Status               *AppointmentStatus
	IncludeCancelled     bool
}
