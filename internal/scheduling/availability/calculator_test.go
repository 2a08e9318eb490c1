package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// 2026-05-04 - понедельник
var monday = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

func newCalculator(now time.Time) *Calculator {
	return NewCalculator(timegrid.Default(), clock.Fixed(now))
}

func weekdayPro() domain.Professional {
	return domain.Professional{
		Username: "ana",
		Name:     "Ana",
		WorkSchedule: domain.WorkSchedule{
			time.Monday:  {Start: "09:00", End: "18:00"},
			time.Tuesday: {Start: "09:00", End: "18:00"},
			time.Sunday:  nil,
		},
	}
}

func appointmentAt(id int64, username string, start time.Time, minutes int, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:                   id,
		ClientName:           "Maria",
		ClientPhone:          "11987654321",
		ProfessionalUsername: username,
		Services:             []domain.Service{{Name: "Corte", Value: 50, DurationMinutes: minutes}},
		DateTime:             start,
		EndTime:              start.Add(time.Duration(minutes) * time.Minute),
		Status:               status,
	}
}

func at(day time.Time, hhmm string) time.Time {
	return types.TimeString(hhmm).On(day)
}

func TestFindAvailableStarts_ExistingAppointmentExcludesOverlappingStarts(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 60,
		Appointments: []domain.Appointment{
			appointmentAt(1, "ana", at(monday, "10:00"), 60, domain.StatusScheduled),
		},
	})
	require.NoError(t, err)

	expected := []types.TimeString{
		"09:00",
		"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00",
		"14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
	}
	assert.Equal(t, expected, got)
	assert.NotContains(t, got, types.TimeString("09:30"))
	assert.NotContains(t, got, types.TimeString("10:00"))
	assert.NotContains(t, got, types.TimeString("10:30"))
}

func TestFindAvailableStarts_FullDayBlock(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	blocked := []domain.BlockedSlot{{ID: 1, Date: monday, IsFullDay: true}}

	for _, duration := range []int{15, 30, 60, 90, 240} {
		got, err := calc.FindAvailableStarts(Query{
			Day:             monday,
			Professional:    weekdayPro(),
			DurationMinutes: duration,
			Blocked:         blocked,
		})
		require.NoError(t, err)
		assert.Empty(t, got, "duration %d", duration)
		assert.NotNil(t, got)
	}

	// Блокировка другого дня не влияет
	got, err := calc.FindAvailableStarts(Query{
		Day:             monday.AddDate(0, 0, 1),
		Professional:    weekdayPro(),
		DurationMinutes: 30,
		Blocked:         blocked,
	})
	require.NoError(t, err)
	assert.Len(t, got, 18)
}

func TestFindAvailableStarts_DayOff(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	sunday := monday.AddDate(0, 0, -1)
	wednesday := monday.AddDate(0, 0, 2)

	for _, day := range []time.Time{sunday, wednesday} {
		got, err := calc.FindAvailableStarts(Query{
			Day:             day,
			Professional:    weekdayPro(),
			DurationMinutes: 30,
		})
		require.NoError(t, err)
		assert.Empty(t, got, day.Weekday().String())
	}
}

func TestFindAvailableStarts_UnconfiguredScheduleUsesWholeGrid(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday.AddDate(0, 0, -1),
		Professional:    domain.Professional{Username: "bia"},
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.Len(t, got, 26)
	assert.Equal(t, types.TimeString("07:00"), got[0])
	assert.Equal(t, types.TimeString("19:30"), got[len(got)-1])
}

func TestFindAvailableStarts_DurationRoundsUp(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 45,
		Appointments: []domain.Appointment{
			appointmentAt(1, "ana", at(monday, "10:00"), 60, domain.StatusConfirmed),
		},
	})
	require.NoError(t, err)

	assert.Contains(t, got, types.TimeString("09:00"))
	assert.NotContains(t, got, types.TimeString("09:30"), "45 minutes need two slots")
	assert.Contains(t, got, types.TimeString("17:00"))
	assert.NotContains(t, got, types.TimeString("17:30"))
}

func TestFindAvailableStarts_PartialBlockWithoutEndTakesOneStep(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 30,
		Blocked: []domain.BlockedSlot{
			{ID: 1, Date: monday, StartTime: ptr.Ptr(types.TimeString("12:00"))},
			{ID: 2, Date: monday, StartTime: ptr.Ptr(types.TimeString("15:00")), EndTime: ptr.Ptr(types.TimeString("16:00"))},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, got, types.TimeString("11:30"))
	assert.NotContains(t, got, types.TimeString("12:00"))
	assert.Contains(t, got, types.TimeString("12:30"))
	assert.NotContains(t, got, types.TimeString("15:00"))
	assert.NotContains(t, got, types.TimeString("15:30"))
	assert.Contains(t, got, types.TimeString("16:00"))
}

func TestFindAvailableStarts_IgnoresIrrelevantAppointments(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 60,
		Appointments: []domain.Appointment{
			appointmentAt(1, "ana", at(monday, "10:00"), 60, domain.StatusCancelled),
			appointmentAt(2, "ana", at(monday, "12:00"), 60, domain.StatusPending),
			appointmentAt(3, "bia", at(monday, "14:00"), 60, domain.StatusScheduled),
			appointmentAt(4, "ana", at(monday.AddDate(0, 0, 1), "09:00"), 60, domain.StatusScheduled),
		},
	})
	require.NoError(t, err)

	for _, ts := range []types.TimeString{"09:00", "10:00", "12:00", "14:00"} {
		assert.Contains(t, got, ts)
	}
}

func TestFindAvailableStarts_ExcludeAppointmentID(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	q := Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 60,
		Appointments: []domain.Appointment{
			appointmentAt(7, "ana", at(monday, "10:00"), 60, domain.StatusScheduled),
		},
	}

	without, err := calc.FindAvailableStarts(q)
	require.NoError(t, err)
	assert.NotContains(t, without, types.TimeString("10:00"))

	q.ExcludeAppointmentID = 7
	with, err := calc.FindAvailableStarts(q)
	require.NoError(t, err)
	assert.Contains(t, with, types.TimeString("10:00"))
}

func TestFindAvailableStarts_TodayDiscardsPassedStarts(t *testing.T) {
	calc := newCalculator(at(monday, "10:10"))

	got, err := calc.FindAvailableStarts(Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("10:30"), got[0])

	// Будущий день не фильтруется по текущему времени
	got, err = calc.FindAvailableStarts(Query{
		Day:             monday.AddDate(0, 0, 1),
		Professional:    weekdayPro(),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), got[0])
}

func TestFindAvailableStarts_Idempotent(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	appointments := []domain.Appointment{
		appointmentAt(1, "ana", at(monday, "10:00"), 60, domain.StatusScheduled),
		appointmentAt(2, "ana", at(monday, "14:30"), 90, domain.StatusDelayed),
	}
	q := Query{Day: monday, Professional: weekdayPro(), DurationMinutes: 75, Appointments: appointments}

	first, err := calc.FindAvailableStarts(q)
	require.NoError(t, err)
	second, err := calc.FindAvailableStarts(q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, at(monday, "10:00"), appointments[0].DateTime, "input must not be modified")
}

func TestFindAvailableStarts_EveryStartFitsAndIsFree(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	appointments := []domain.Appointment{
		appointmentAt(1, "ana", at(monday, "10:00"), 60, domain.StatusScheduled),
		appointmentAt(2, "ana", at(monday, "13:15"), 50, domain.StatusConfirmed),
	}
	blocked := []domain.BlockedSlot{
		{ID: 1, Date: monday, StartTime: ptr.Ptr(types.TimeString("16:00")), EndTime: ptr.Ptr(types.TimeString("16:30"))},
	}
	windowStart, windowEnd := at(monday, "09:00"), at(monday, "18:00")

	for duration := 15; duration <= 240; duration += 15 {
		got, err := calc.FindAvailableStarts(Query{
			Day:             monday,
			Professional:    weekdayPro(),
			DurationMinutes: duration,
			Blocked:         blocked,
			Appointments:    appointments,
		})
		require.NoError(t, err)

		for _, ts := range got {
			start := ts.On(monday)
			end := start.Add(time.Duration(duration) * time.Minute)

			assert.False(t, start.Before(windowStart), "%s/%d starts before window", ts, duration)
			assert.False(t, end.After(windowEnd), "%s/%d ends after window", ts, duration)
			for _, a := range appointments {
				assert.False(t, a.Overlaps(start, end), "%s/%d overlaps appointment %d", ts, duration, a.ID)
			}
			assert.False(t, start.Before(at(monday, "16:30")) && end.After(at(monday, "16:00")),
				"%s/%d overlaps block", ts, duration)
		}
	}
}

func TestFindAvailableStarts_InvalidQuery(t *testing.T) {
	calc := newCalculator(monday)

	_, err := calc.FindAvailableStarts(Query{Day: monday, Professional: weekdayPro(), DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = calc.FindAvailableStarts(Query{Day: monday, DurationMinutes: 30})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckSpan(t *testing.T) {
	calc := newCalculator(monday.AddDate(0, 0, -3))
	q := Query{
		Day:             monday,
		Professional:    weekdayPro(),
		DurationMinutes: 60,
		Appointments: []domain.Appointment{
			appointmentAt(7, "ana", at(monday, "10:00"), 60, domain.StatusScheduled),
		},
	}

	tests := []struct {
		name  string
		day   time.Time
		start time.Time
		want  error
	}{
		{name: "free", day: monday, start: at(monday, "11:00"), want: nil},
		{name: "busy", day: monday, start: at(monday, "10:30"), want: ErrSlotBusy},
		{name: "off grid", day: monday, start: at(monday, "11:15"), want: ErrOffGrid},
		{name: "before window", day: monday, start: at(monday, "08:00"), want: ErrOutsideWorkingHours},
		{name: "ends after window", day: monday, start: at(monday, "17:30"), want: ErrOutsideWorkingHours},
		{name: "outside grid", day: monday, start: at(monday, "06:00"), want: ErrOutsideWorkingHours},
		{name: "other day", day: monday, start: at(monday.AddDate(0, 0, 1), "11:00"), want: ErrOutsideWorkingHours},
		{name: "day off", day: monday.AddDate(0, 0, 2), start: at(monday.AddDate(0, 0, 2), "11:00"), want: ErrDayOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := q
			query.Day = tt.day
			err := calc.CheckSpan(query, tt.start)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	q.ExcludeAppointmentID = 7
	assert.NoError(t, calc.CheckSpan(q, at(monday, "10:30")))
}
