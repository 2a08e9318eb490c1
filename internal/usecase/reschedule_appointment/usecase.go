package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/lifecycle"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/reschedule"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// UseCase use case для переноса записи
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	resolver        Resolver
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
	resolver Resolver,
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
		resolver:        resolver,
		lifecycle:       lifecycle,
		txManager:       txManager,
		notifier:        notifier,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
// Разрешение drop, проверка конфликта и сохранение выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, target date=%s, force=%t",
		req.AppointmentID, req.TargetDate.Format(domain.DateFormat), req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	targetDay := domain.DayIn(req.TargetDate, uc.location)

	var (
		result     domain.Appointment
		event      domain.Event
		completed  bool
		overridden bool
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Переносить можно только активную запись
		if err := uc.lifecycle.CheckMovable(*current); err != nil {
			uc.logger.Warn("RescheduleAppointment: id=%d cannot be moved: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		// 2.3. Разрешаем drop в интервал
		candidate, err := uc.resolver.ResolveDrop(*current, offsetMinutes(req), targetDay)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: drop rejected: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 2.4. Проверяем конфликт на целевом дне
		professional, err := uc.scheduleRepo.GetProfessional(txCtx, current.ProfessionalUsername)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get professional %s: %v", current.ProfessionalUsername, err)
			return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}

		blocked, err := uc.scheduleRepo.ListBlockedByDate(txCtx, targetDay)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to list blocked slots: %v", err)
			return fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
		}

		appointments, err := uc.appointmentRepo.ListByDate(txCtx, targetDay, ptr.Ptr(professional.Username))
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		err = uc.resolver.Validate(candidate, availability.Query{
			Professional: *professional,
			Blocked:      blocked,
			Appointments: appointments,
		})
		switch {
		case err == nil:
		case errors.Is(err, reschedule.ErrConflict):
			uc.metrics.SchedulingConflict("reschedule")
			// force переопределяет только занятость, выход за рабочее окно не переопределяется
			if !req.Force || !errors.Is(err, availability.ErrSlotBusy) {
				uc.logger.Warn("RescheduleAppointment: conflict for id=%d: %v", req.AppointmentID, err)
				return fmt.Errorf("%w: %w", ErrSlotConflict, err)
			}
			uc.logger.Warn("RescheduleAppointment: conflict overridden by force for id=%d: %v", req.AppointmentID, err)
			overridden = true
		case errors.Is(err, domain.ErrValidation):
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("RescheduleAppointment: conflict check failed: %v", err)
			return fmt.Errorf("%w: failed to validate drop: %v", ErrInternal, err)
		}

		// 2.5. Переносим; перенос в прошлое требует завершения
		result, event, err = uc.lifecycle.Move(*current, candidate.Start, candidate.End)
		if errors.Is(err, lifecycle.ErrCompletionRequired) {
			if req.PaymentStatus == nil {
				uc.logger.Warn("RescheduleAppointment: id=%d moved to the past without payment status", req.AppointmentID)
				return ErrCompletionRequired
			}
			result, event, err = uc.lifecycle.CompleteMove(*current, candidate.Start, candidate.End, *req.PaymentStatus)
			completed = err == nil
		}
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: move rejected for id=%d: %v", req.AppointmentID, err)
			if errors.Is(err, lifecycle.ErrInvalidTransition) {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			if errors.Is(err, domain.ErrValidation) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: failed to move appointment: %v", ErrInternal, err)
		}

		// 2.6. Сохраняем
		if err := uc.appointmentRepo.Save(txCtx, result); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to save appointment id=%d: %v", result.ID, err)
			return fmt.Errorf("%w: failed to save appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Публикуем событие после фиксации транзакции
	uc.metrics.AppointmentEvent(string(event.Kind))
	uc.notifier.Notify(ctx, event)

	uc.logger.Info("RescheduleAppointment: moved id=%d to %s, status=%s",
		result.ID, result.DateTime.Format(domain.DateTimeFormat), result.Status)

	return &Response{
		Appointment: result,
		Completed:   completed,
		Overridden:  overridden,
	}, nil
}
