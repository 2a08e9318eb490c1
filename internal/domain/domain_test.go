package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointments_WithIsCopyOnWrite(t *testing.T) {
	day := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	original := Appointments{
		{ID: 1, ProfessionalUsername: "ana", DateTime: day, EndTime: day.Add(time.Hour), Status: StatusScheduled},
	}

	moved := original[0]
	moved.Status = StatusConfirmed
	next := original.With(moved)

	require.Len(t, next, 1)
	assert.Equal(t, StatusConfirmed, next[0].Status)
	assert.Equal(t, StatusScheduled, original[0].Status, "snapshot must not change")

	appended := next.With(Appointment{ID: 2, ProfessionalUsername: "bia", DateTime: day, EndTime: day.Add(time.Hour)})
	assert.Len(t, appended, 2)
	assert.Len(t, next, 1)
}

func TestAppointments_ForProfessionalOn(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	items := Appointments{
		{ID: 1, ProfessionalUsername: "ana", DateTime: day.Add(9 * time.Hour)},
		{ID: 2, ProfessionalUsername: "ana", DateTime: day.AddDate(0, 0, 1).Add(9 * time.Hour)},
		{ID: 3, ProfessionalUsername: "bia", DateTime: day.Add(10 * time.Hour)},
	}

	got := items.ForProfessionalOn("ana", day)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestAppointment_CloneDoesNotShareServices(t *testing.T) {
	a := Appointment{Services: []Service{{Name: "Corte", Value: 50, DurationMinutes: 30}}}
	c := a.Clone()
	c.Services[0].Value = 10

	assert.Equal(t, 50.0, a.Services[0].Value)
}

func TestAppointment_Totals(t *testing.T) {
	a := Appointment{Services: []Service{
		{Name: "Corte", Value: 50, DurationMinutes: 30},
		{Name: "Escova", Value: 40.5, DurationMinutes: 45},
	}}

	assert.Equal(t, 75, a.TotalDurationMinutes())
	assert.InDelta(t, 90.5, a.TotalValue(), 0.001)
}

func TestAppointment_OccupiesCalendar(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusCompleted}).OccupiesCalendar())
	assert.False(t, (&Appointment{Status: StatusCancelled}).OccupiesCalendar())
	assert.False(t, (&Appointment{Status: StatusPending}).OccupiesCalendar())
}

func TestWorkSchedule(t *testing.T) {
	var empty WorkSchedule
	assert.False(t, empty.IsConfigured())
	assert.Nil(t, empty.For(time.Monday))

	s := WorkSchedule{time.Monday: {Start: "09:00", End: "18:00"}, time.Sunday: nil}
	assert.True(t, s.IsConfigured())
	assert.NotNil(t, s.For(time.Monday))
	assert.Nil(t, s.For(time.Sunday))
	assert.Nil(t, s.For(time.Tuesday))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "5511987654321", NormalizePhone("+55 11 98765 4321"))
	assert.Equal(t, "", NormalizePhone("n/a"))
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusDelayed.IsValid())
	assert.False(t, AppointmentStatus("no_show").IsValid())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, PaymentPending.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}
