package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/packages"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// UseCase use case для создания записи администратором
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	calculator      Calculator
	lifecycle       Lifecycle
	txManager       TransactionManager
	notifier        Notifier
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
	lifecycle Lifecycle,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		calculator:      calculator,
		lifecycle:       lifecycle,
		txManager:       txManager,
		notifier:        notifier,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и сохранение выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: professional=%s, date=%s, time=%s, services=%v, force=%t",
		req.ProfessionalUsername, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceNames, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	day := domain.DayIn(req.Date, uc.location)
	start := req.StartTime.On(day)
	source := req.Source
	if source == "" {
		source = SourceManual
	}

	// 2. Получаем профессионала
	professional, err := uc.scheduleRepo.GetProfessional(ctx, req.ProfessionalUsername)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional %s not found", req.ProfessionalUsername)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional %s: %v", req.ProfessionalUsername, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Разрешаем услуги по актуальному каталогу
	catalog, err := uc.catalogRepo.ListServices(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	resolved, err := packages.ResolveRotation(catalog, [][]string{req.ServiceNames})
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		if errors.Is(err, packages.ErrUnresolvedService) {
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Вводим запись в автомат статусов
	created, event, err := uc.lifecycle.Create(domain.Appointment{
		ClientName:           req.ClientName,
		ClientPhone:          req.ClientPhone,
		ClientEmail:          req.ClientEmail,
		ProfessionalUsername: professional.Username,
		Services:             resolved[0],
		DateTime:             start,
		Observations:         req.Observations,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: appointment rejected: %v", err)
		if errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	overridden := false

	// 5. Проверяем интервал и сохраняем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем блокировки и записи дня с блокировкой строк
		blocked, err := uc.scheduleRepo.ListBlockedByDate(txCtx, day)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list blocked slots: %v", err)
			return fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
		}

		appointments, err := uc.appointmentRepo.ListByDate(txCtx, day, ptr.Ptr(professional.Username))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 5.2. Проверяем, что интервал свободен
		err = uc.calculator.CheckSpan(availability.Query{
			Day:             day,
			Professional:    *professional,
			DurationMinutes: created.TotalDurationMinutes(),
			Blocked:         blocked,
			Appointments:    appointments,
		}, start)
		if err != nil {
			mapped := mapAvailabilityError(err)
			if errors.Is(mapped, ErrInvalidInput) {
				uc.logger.Warn("CreateAppointment: invalid slot %s: %v", start.Format(domain.DateTimeFormat), err)
				return mapped
			}
			if errors.Is(mapped, ErrInternal) {
				uc.logger.Error("CreateAppointment: slot check failed: %v", err)
				return mapped
			}
			uc.metrics.SchedulingConflict("create")
			// force переопределяет только занятость, выходной и рабочее время не переопределяются
			if !req.Force || !errors.Is(mapped, ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: slot %s is not available: %v", start.Format(domain.DateTimeFormat), err)
				return mapped
			}
			uc.logger.Warn("CreateAppointment: conflict overridden by force: %v", err)
			overridden = true
		}

		// 5.3. Сохраняем запись
		if err := uc.appointmentRepo.Save(txCtx, created); err != nil {
			uc.logger.Error("CreateAppointment: failed to save appointment: %v", err)
			return fmt.Errorf("%w: failed to save appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Публикуем событие после фиксации транзакции
	uc.metrics.AppointmentCreated(string(created.Status), source)
	uc.metrics.AppointmentEvent(string(event.Kind))
	uc.notifier.Notify(ctx, event)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, status=%s", created.ID, created.Status)

	return &Response{
		Appointment: created,
		Overridden:  overridden,
	}, nil
}
