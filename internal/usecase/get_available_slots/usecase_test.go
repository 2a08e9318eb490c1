package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetProfessional(ctx context.Context, username string) (*domain.Professional, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Professional), args.Error(1)
}

func (m *MockScheduleRepository) ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error) {
	args := m.Called(ctx, day, professional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Appointments), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

type countingMetrics struct {
	empty int
}

func (m *countingMetrics) EmptyAvailability() { m.empty++ }

var day = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) // понедельник

func ana() *domain.Professional {
	return &domain.Professional{
		Username: "ana",
		Name:     "Ana",
		WorkSchedule: domain.WorkSchedule{
			time.Monday: {Start: "09:00", End: "12:00"},
		},
	}
}

func newUseCase(s *MockScheduleRepository, a *MockAppointmentRepository, c *MockCatalogRepository, m *countingMetrics) *UseCase {
	calc := availability.NewCalculator(timegrid.Default(), clock.Fixed(day.AddDate(0, 0, -1)))
	return NewUseCase(s, a, c, calc, time.UTC, m, logger.Nop())
}

func TestUseCase_Execute_Success(t *testing.T) {
	s := new(MockScheduleRepository)
	a := new(MockAppointmentRepository)
	c := new(MockCatalogRepository)
	m := &countingMetrics{}

	s.On("GetProfessional", mock.Anything, "ana").Return(ana(), nil)
	s.On("ListBlockedByDate", mock.Anything, day).Return([]domain.BlockedSlot{}, nil)
	a.On("ListByDate", mock.Anything, day, mock.MatchedBy(func(p *string) bool { return p != nil && *p == "ana" })).
		Return(domain.Appointments{{
			ID:                   1,
			ProfessionalUsername: "ana",
			DateTime:             day.Add(10 * time.Hour),
			EndTime:              day.Add(11 * time.Hour),
			Status:               domain.StatusScheduled,
		}}, nil)

	resp, err := newUseCase(s, a, c, m).Execute(context.Background(), &Request{
		ProfessionalUsername: "ana",
		Date:                 day.Add(15 * time.Hour),
		DurationMinutes:      60,
	})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, resp.Slots)
	assert.Equal(t, day, resp.Date)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Zero(t, m.empty)
	c.AssertNotCalled(t, "ListServices", mock.Anything)
}

func TestUseCase_Execute_DurationFromServices(t *testing.T) {
	s := new(MockScheduleRepository)
	a := new(MockAppointmentRepository)
	c := new(MockCatalogRepository)
	m := &countingMetrics{}

	s.On("GetProfessional", mock.Anything, "ana").Return(ana(), nil)
	s.On("ListBlockedByDate", mock.Anything, day).Return([]domain.BlockedSlot{{Date: day, IsFullDay: true}}, nil)
	a.On("ListByDate", mock.Anything, day, mock.Anything).Return(domain.Appointments{}, nil)
	c.On("ListServices", mock.Anything).Return([]domain.Service{
		{Name: "Corte", DurationMinutes: 30},
		{Name: "Escova", DurationMinutes: 45},
	}, nil)

	resp, err := newUseCase(s, a, c, m).Execute(context.Background(), &Request{
		ProfessionalUsername: "ana",
		Date:                 day,
		ServiceNames:         []string{"corte", " ESCOVA "},
	})
	require.NoError(t, err)

	assert.Equal(t, 75, resp.DurationMinutes)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 1, m.empty)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		uc := newUseCase(new(MockScheduleRepository), new(MockAppointmentRepository), new(MockCatalogRepository), &countingMetrics{})
		_, err := uc.Execute(context.Background(), &Request{ProfessionalUsername: "ana", Date: day})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("professional not found", func(t *testing.T) {
		s := new(MockScheduleRepository)
		s.On("GetProfessional", mock.Anything, "zoe").Return(nil, scheduleRepo.ErrProfessionalNotFound)

		uc := newUseCase(s, new(MockAppointmentRepository), new(MockCatalogRepository), &countingMetrics{})
		_, err := uc.Execute(context.Background(), &Request{ProfessionalUsername: "zoe", Date: day, DurationMinutes: 30})
		assert.ErrorIs(t, err, ErrProfessionalNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		s := new(MockScheduleRepository)
		c := new(MockCatalogRepository)
		s.On("GetProfessional", mock.Anything, "ana").Return(ana(), nil)
		c.On("ListServices", mock.Anything).Return([]domain.Service{{Name: "Corte", DurationMinutes: 30}}, nil)

		uc := newUseCase(s, new(MockAppointmentRepository), c, &countingMetrics{})
		_, err := uc.Execute(context.Background(), &Request{ProfessionalUsername: "ana", Date: day, ServiceNames: []string{"Luzes"}})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		s := new(MockScheduleRepository)
		s.On("GetProfessional", mock.Anything, "ana").Return(ana(), nil)
		s.On("ListBlockedByDate", mock.Anything, day).Return(nil, assert.AnError)

		uc := newUseCase(s, new(MockAppointmentRepository), new(MockCatalogRepository), &countingMetrics{})
		_, err := uc.Execute(context.Background(), &Request{ProfessionalUsername: "ana", Date: day, DurationMinutes: 30})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
