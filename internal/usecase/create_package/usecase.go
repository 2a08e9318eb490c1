package create_package

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

const sourcePackage = "package"

// UseCase use case для создания пакета из четырех еженедельных сессий
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	calculator      Calculator
	generator       Generator
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
	generator Generator,
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
		generator:       generator,
		txManager:       txManager,
		notifier:        notifier,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания пакета
// Занятость строго проверяется только для первой сессии, конфликты остальных возвращаются в ответе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePackage: professional=%s, first date=%s, time=%s, rotation=%v",
		req.ProfessionalUsername, req.FirstDate.Format(domain.DateFormat), req.StartTime, req.Rotation)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePackage: validation failed: %v", err)
		return nil, err
	}

	price, err := sessionPrice(req)
	if err != nil {
		uc.logger.Warn("CreatePackage: validation failed: %v", err)
		return nil, err
	}

	firstStart := req.StartTime.On(domain.DayIn(req.FirstDate, uc.location))

	// 2. Получаем профессионала
	professional, err := uc.scheduleRepo.GetProfessional(ctx, req.ProfessionalUsername)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreatePackage: professional %s not found", req.ProfessionalUsername)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreatePackage: failed to get professional %s: %v", req.ProfessionalUsername, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Разрешаем ротацию услуг по каталогу
	catalog, err := uc.catalogRepo.ListServices(ctx)
	if err != nil {
		uc.logger.Error("CreatePackage: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	rotation, err := packages.ResolveRotation(catalog, req.Rotation)
	if err != nil {
		uc.logger.Warn("CreatePackage: %v", err)
		if errors.Is(err, packages.ErrUnresolvedService) {
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Генерируем сессии пакета
	appointments, events, err := uc.generator.Generate(packages.Core{
		ClientName:           req.ClientName,
		ClientPhone:          req.ClientPhone,
		ClientEmail:          req.ClientEmail,
		ProfessionalUsername: professional.Username,
		Observations:         req.Observations,
	}, firstStart, price, rotation)
	if err != nil {
		uc.logger.Warn("CreatePackage: generation failed: %v", err)
		if errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: failed to generate package: %v", ErrInternal, err)
	}

	var conflicts []SessionConflict

	// 5. Проверяем сессии и сохраняем пакет целиком в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts = conflicts[:0]

		for i, a := range appointments {
			day := domain.StartOfDay(a.DateTime)

			// 5.1. Получаем блокировки и записи дня сессии
			blocked, err := uc.scheduleRepo.ListBlockedByDate(txCtx, day)
			if err != nil {
				uc.logger.Error("CreatePackage: failed to list blocked slots: %v", err)
				return fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
			}

			existing, err := uc.appointmentRepo.ListByDate(txCtx, day, ptr.Ptr(professional.Username))
			if err != nil {
				uc.logger.Error("CreatePackage: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}

			// 5.2. Проверяем интервал сессии
			err = uc.calculator.CheckSpan(availability.Query{
				Day:             day,
				Professional:    *professional,
				DurationMinutes: a.TotalDurationMinutes(),
				Blocked:         blocked,
				Appointments:    existing,
			}, a.DateTime)
			if err == nil {
				continue
			}

			mapped := mapAvailabilityError(i+1, err)
			if errors.Is(mapped, ErrInternal) {
				uc.logger.Error("CreatePackage: slot check failed for session %d: %v", i+1, err)
				return mapped
			}
			if !errors.Is(mapped, ErrSlotNotAvailable) {
				uc.logger.Warn("CreatePackage: session %d at %s is rejected: %v",
					i+1, a.DateTime.Format(domain.DateTimeFormat), err)
				return mapped
			}

			// force переопределяет только занятость первой сессии, остальные конфликты попадают в ответ
			uc.metrics.SchedulingConflict("package")
			if i == 0 && !req.Force {
				uc.logger.Warn("CreatePackage: first session %s is not available: %v",
					a.DateTime.Format(domain.DateTimeFormat), err)
				return mapped
			}

			uc.logger.Warn("CreatePackage: session %d at %s has a conflict: %v",
				i+1, a.DateTime.Format(domain.DateTimeFormat), err)
			conflicts = append(conflicts, SessionConflict{
				Session:  i + 1,
				DateTime: a.DateTime,
				Reason:   err.Error(),
			})
		}

		// 5.3. Сохраняем все сессии одним запросом
		if err := uc.appointmentRepo.Save(txCtx, appointments...); err != nil {
			uc.logger.Error("CreatePackage: failed to save sessions: %v", err)
			return fmt.Errorf("%w: failed to save sessions: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Публикуем события после фиксации транзакции
	for _, a := range appointments {
		uc.metrics.AppointmentCreated(string(a.Status), sourcePackage)
	}
	for _, ev := range events {
		uc.metrics.AppointmentEvent(string(ev.Kind))
	}
	uc.notifier.Notify(ctx, events...)

	packageID := ptr.Value(appointments[0].PackageID)
	uc.logger.Info("CreatePackage: successfully created package %s with %d sessions, %d conflicts",
		packageID, len(appointments), len(conflicts))

	return &Response{
		PackageID:       packageID,
		PricePerSession: price,
		Appointments:    appointments,
		Conflicts:       conflicts,
	}, nil
}
