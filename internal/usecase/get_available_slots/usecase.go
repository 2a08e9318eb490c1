package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// UseCase use case для получения свободного времени начала услуги
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	calculator      Calculator
	location        *time.Location
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	calculator Calculator,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		calculator:      calculator,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%s, date=%s, duration=%d, services=%v",
		req.ProfessionalUsername, req.Date.Format(domain.DateFormat), req.DurationMinutes, req.ServiceNames)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := domain.DayIn(req.Date, uc.location)

	// 2. Получаем профессионала
	professional, err := uc.scheduleRepo.GetProfessional(ctx, req.ProfessionalUsername)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional %s not found", req.ProfessionalUsername)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional %s: %v", req.ProfessionalUsername, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Определяем длительность
	duration := req.DurationMinutes
	if duration == 0 {
		catalog, err := uc.catalogRepo.ListServices(ctx)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list services: %v", err)
			return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}
		duration, err = totalDuration(catalog, req.ServiceNames)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: %v", err)
			return nil, err
		}
	}

	// 4. Получаем блокировки и записи на день
	blocked, err := uc.scheduleRepo.ListBlockedByDate(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByDate(ctx, day, ptr.Ptr(professional.Username))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 5. Считаем свободное время
	slots, err := uc.calculator.FindAvailableStarts(availability.Query{
		Day:                  day,
		Professional:         *professional,
		DurationMinutes:      duration,
		Blocked:              blocked,
		Appointments:         appointments,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: calculation failed: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate availability: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.metrics.EmptyAvailability()
	}

	uc.logger.Info("GetAvailableSlots: found %d starts for professional=%s on %s",
		len(slots), professional.Username, day.Format(domain.DateFormat))

	return &Response{
		ProfessionalUsername: professional.Username,
		Date:                 day,
		DurationMinutes:      duration,
		Slots:                slots,
	}, nil
}
