package reschedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
)

var monday = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func newResolver() *Resolver {
	return NewResolver(availability.NewCalculator(timegrid.Default(), clock.Fixed(monday.AddDate(0, 0, -7))))
}

func appointment(id int64, username string, start time.Time, minutes int) domain.Appointment {
	return domain.Appointment{
		ID:                   id,
		ClientName:           "Maria",
		ClientPhone:          "11987654321",
		ProfessionalUsername: username,
		Services:             []domain.Service{{Name: "Corte", Value: 50, DurationMinutes: minutes}},
		DateTime:             start,
		EndTime:              start.Add(time.Duration(minutes) * time.Minute),
		Status:               domain.StatusScheduled,
	}
}

func TestResolveDrop_SnapsToNearestStep(t *testing.T) {
	r := newResolver()
	a := appointment(1, "ana", monday.Add(9*time.Hour), 90)
	tuesday := monday.AddDate(0, 0, 1).Add(15 * time.Hour)

	tests := []struct {
		offset int
		want   time.Time
	}{
		{offset: 600, want: monday.AddDate(0, 0, 1).Add(10 * time.Hour)},
		{offset: 614, want: monday.AddDate(0, 0, 1).Add(10 * time.Hour)},
		{offset: 615, want: monday.AddDate(0, 0, 1).Add(10*time.Hour + 30*time.Minute)},
		{offset: 841, want: monday.AddDate(0, 0, 1).Add(14 * time.Hour)},
	}

	for _, tt := range tests {
		c, err := r.ResolveDrop(a, tt.offset, tuesday)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.Start, "offset %d", tt.offset)
		assert.Equal(t, 90*time.Minute, c.End.Sub(c.Start))
		assert.Equal(t, int64(1), c.AppointmentID)
	}
}

func TestResolveDrop_Invalid(t *testing.T) {
	r := newResolver()

	_, err := r.ResolveDrop(domain.Appointment{ID: 1}, 600, monday)
	assert.ErrorIs(t, err, ErrInvalidDrop)

	a := appointment(1, "ana", monday.Add(9*time.Hour), 60)
	_, err = r.ResolveDrop(a, -60, monday)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = r.ResolveDrop(a, 24*60, monday)
	assert.ErrorIs(t, err, ErrInvalidDrop)
}

func TestResolveDrop_IsPermissive(t *testing.T) {
	r := newResolver()
	a := appointment(1, "ana", monday.Add(9*time.Hour), 60)

	// 03:00 вне сетки, но ResolveDrop не проверяет доступность
	c, err := r.ResolveDrop(a, 180, monday)
	require.NoError(t, err)
	assert.Equal(t, monday.Add(3*time.Hour), c.Start)
}

func TestValidate(t *testing.T) {
	r := newResolver()
	moving := appointment(1, "ana", monday.Add(9*time.Hour), 60)
	other := appointment(2, "ana", monday.Add(11*time.Hour), 60)
	q := availability.Query{
		Professional: domain.Professional{Username: "ana"},
		Appointments: []domain.Appointment{moving, other},
	}

	// Сдвиг на полчаса пересекается только с самой собой
	c, err := r.ResolveDrop(moving, 9*60+30, monday)
	require.NoError(t, err)
	assert.NoError(t, r.Validate(c, q))

	// 10:30-11:30 пересекается с другой записью
	c, err = r.ResolveDrop(moving, 10*60+30, monday)
	require.NoError(t, err)
	err = r.Validate(c, q)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, domain.ErrStaleConflict)
	assert.ErrorIs(t, err, availability.ErrSlotBusy)

	// Вне сетки
	c, err = r.ResolveDrop(moving, 180, monday)
	require.NoError(t, err)
	err = r.Validate(c, q)
	assert.ErrorIs(t, err, domain.ErrStaleConflict)
	assert.ErrorIs(t, err, availability.ErrOutsideWorkingHours)
}
