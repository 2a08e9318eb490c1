package create_package

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/lifecycle"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/packages"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

var firstDay = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) // понедельник

type fixture struct {
	schedule     *usecasetest.ScheduleRepository
	appointments *usecasetest.AppointmentRepository
	notifier     *usecasetest.Notifier
	uc           *UseCase
}

func newFixture(now time.Time, existing domain.Appointments) *fixture {
	f := &fixture{
		schedule:     new(usecasetest.ScheduleRepository),
		appointments: new(usecasetest.AppointmentRepository),
		notifier:     &usecasetest.Notifier{},
	}
	catalog := new(usecasetest.CatalogRepository)

	f.schedule.On("GetProfessional", mock.Anything, "ana").Return(&domain.Professional{Username: "ana"}, nil).Maybe()
	f.schedule.On("ListBlockedByDate", mock.Anything, mock.Anything).Return([]domain.BlockedSlot{}, nil).Maybe()
	f.appointments.On("ListByDate", mock.Anything, mock.Anything, mock.Anything).
		Return(func(_ context.Context, day time.Time, _ *string) domain.Appointments {
			return existing.ForProfessionalOn("ana", day)
		}, nil).Maybe()
	catalog.On("ListServices", mock.Anything).Return([]domain.Service{
		{Name: "Corte", Value: 50, DurationMinutes: 30},
		{Name: "Hidratação", Value: 80, DurationMinutes: 30},
	}, nil).Maybe()

	clk := clock.Fixed(now)
	var m *metrics.Metrics
	f.uc = NewUseCase(
		f.schedule,
		f.appointments,
		catalog,
		availability.NewCalculator(timegrid.Default(), clk),
		packages.NewGenerator(lifecycle.NewMachine(clk)),
		&usecasetest.TxManager{},
		f.notifier,
		time.UTC,
		m,
		logger.Nop(),
	)
	return f
}

func request() *Request {
	return &Request{
		ClientName:           "Maria",
		ClientPhone:          "11987654321",
		ProfessionalUsername: "ana",
		Rotation:             [][]string{{"corte"}, {"hidratação"}},
		FirstDate:            firstDay,
		StartTime:            "10:00",
		TotalPrice:           ptr.Ptr(180.0),
	}
}

func TestUseCase_Execute_FourWeeklySessions(t *testing.T) {
	f := newFixture(firstDay.AddDate(0, 0, -1), domain.Appointments{})
	f.appointments.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Appointments, domain.PackageSessions)
	assert.Equal(t, 45.0, resp.PricePerSession)
	assert.NotEmpty(t, resp.PackageID)
	assert.Empty(t, resp.Conflicts)

	for i, a := range resp.Appointments {
		assert.Equal(t, firstDay.AddDate(0, 0, 7*i).Add(10*time.Hour), a.DateTime)
		assert.Equal(t, domain.StatusScheduled, a.Status)
		assert.True(t, a.IsPackageAppointment)
		assert.Equal(t, resp.PackageID, *a.PackageID)
		assert.Equal(t, 45.0, a.TotalValue())
	}
	assert.Equal(t, "Corte", resp.Appointments[0].Services[0].Name)
	assert.Equal(t, "Hidratação", resp.Appointments[1].Services[0].Name)
	assert.Len(t, f.notifier.Events, domain.PackageSessions)

	f.appointments.AssertNumberOfCalls(t, "Save", 1)
}

func TestUseCase_Execute_FirstSessionConflict(t *testing.T) {
	busy := domain.Appointments{{
		ID:                   1,
		ProfessionalUsername: "ana",
		DateTime:             firstDay.Add(10 * time.Hour),
		EndTime:              firstDay.Add(11 * time.Hour),
		Status:               domain.StatusScheduled,
	}}

	f := newFixture(firstDay.AddDate(0, 0, -1), busy)
	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.appointments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.Events)
}

func TestUseCase_Execute_LaterSessionConflictIsReported(t *testing.T) {
	thirdWeek := firstDay.AddDate(0, 0, 14)
	busy := domain.Appointments{{
		ID:                   1,
		ProfessionalUsername: "ana",
		DateTime:             thirdWeek.Add(10 * time.Hour),
		EndTime:              thirdWeek.Add(11 * time.Hour),
		Status:               domain.StatusScheduled,
	}}

	f := newFixture(firstDay.AddDate(0, 0, -1), busy)
	f.appointments.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, 3, resp.Conflicts[0].Session)
	assert.Equal(t, thirdWeek.Add(10*time.Hour), resp.Conflicts[0].DateTime)
}

func TestUseCase_Execute_ForceKeepsGridAndSchedule(t *testing.T) {
	tests := []struct {
		name         string
		professional string
		startTime    types.TimeString
		wantErr      error
	}{
		{name: "off grid start", professional: "ana", startTime: "10:15", wantErr: ErrInvalidTime},
		{name: "start after closing", professional: "ana", startTime: "21:00", wantErr: ErrOutsideWorkingHours},
		{name: "day off", professional: "bia", startTime: "10:00", wantErr: ErrProfessionalDayOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(firstDay.AddDate(0, 0, -1), domain.Appointments{})
			f.schedule.On("GetProfessional", mock.Anything, "bia").Return(&domain.Professional{
				Username: "bia",
				WorkSchedule: domain.WorkSchedule{
					time.Tuesday: {Start: types.MustTimeString("09:00"), End: types.MustTimeString("18:00")},
				},
			}, nil).Maybe()

			req := request()
			req.ProfessionalUsername = tt.professional
			req.StartTime = tt.startTime
			req.Force = true

			resp, err := f.uc.Execute(context.Background(), req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			f.appointments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			assert.Empty(t, f.notifier.Events)
		})
	}
}

func TestUseCase_Execute_ForcedFirstSessionConflict(t *testing.T) {
	busy := domain.Appointments{{
		ID:                   1,
		ProfessionalUsername: "ana",
		DateTime:             firstDay.Add(10 * time.Hour),
		EndTime:              firstDay.Add(11 * time.Hour),
		Status:               domain.StatusScheduled,
	}}

	f := newFixture(firstDay.AddDate(0, 0, -1), busy)
	f.appointments.On("Save", mock.Anything, mock.Anything).Return(nil)

	req := request()
	req.Force = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, 1, resp.Conflicts[0].Session)
}

func TestUseCase_Execute_RetroactiveSessions(t *testing.T) {
	// две первые сессии уже прошли
	f := newFixture(firstDay.AddDate(0, 0, 10), domain.Appointments{})
	f.appointments.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	statuses := make([]domain.AppointmentStatus, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		statuses = append(statuses, a.Status)
	}
	assert.Equal(t, []domain.AppointmentStatus{
		domain.StatusCompleted, domain.StatusCompleted, domain.StatusScheduled, domain.StatusScheduled,
	}, statuses)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("both prices", func(t *testing.T) {
		f := newFixture(firstDay, nil)
		req := request()
		req.PricePerSession = ptr.Ptr(45.0)
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		f := newFixture(firstDay, nil)
		req := request()
		req.TotalPrice = ptr.Ptr(-10.0)
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service aborts everything", func(t *testing.T) {
		f := newFixture(firstDay, nil)
		req := request()
		req.Rotation = [][]string{{"Corte"}, {"Luzes"}}
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
		f.appointments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
