package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	requestRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/request"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/packages"
	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

const sourceRequest = "request"

// Service сервис очереди публичных заявок на запись
type Service struct {
	requestRepo     RequestRepository
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	calculator      Calculator
	lifecycle       Lifecycle
	txManager       TransactionManager
	notifier        Notifier
	location        *time.Location
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	calculator Calculator,
	lifecycle Lifecycle,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
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

// Submit принимает публичную заявку; заявка не занимает календарь до одобрения
// Занятый интервал отклоняется сразу
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*appointmentModels.AppointmentResponse, error) {
	s.logger.Info("Submit: professional=%s, date=%s, time=%s, services=%v",
		req.ProfessionalUsername, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceNames)

	if len(req.ServiceNames) == 0 || strings.TrimSpace(req.ProfessionalUsername) == "" || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: professional, services and date are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day := domain.DayIn(req.Date, s.location)
	start := req.StartTime.On(day)
	if start.Before(s.lifecycle.Now()) {
		s.logger.Warn("Submit: requested time %s is in the past", start.Format(domain.DateTimeFormat))
		return nil, fmt.Errorf("%w: requested time is in the past", ErrInvalidInput)
	}

	professional, err := s.professional(ctx, "Submit", req.ProfessionalUsername)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("Submit: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: Submit - list services: %v", ErrInternal, err)
	}
	resolved, err := packages.ResolveRotation(catalog, [][]string{req.ServiceNames})
	if err != nil {
		s.logger.Warn("Submit: %v", err)
		if errors.Is(err, packages.ErrUnresolvedService) {
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pending, err := s.lifecycle.Submit(domain.Appointment{
		ClientName:           req.ClientName,
		ClientPhone:          req.ClientPhone,
		ClientEmail:          req.ClientEmail,
		ProfessionalUsername: professional.Username,
		Services:             resolved[0],
		DateTime:             start,
		Observations:         req.Observations,
	})
	if err != nil {
		s.logger.Warn("Submit: request rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkSpan(ctx, professional, pending); err != nil {
		s.logger.Warn("Submit: requested slot is not available: %v", err)
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, pending); err != nil {
		s.logger.Error("Submit: failed to store request: %v", err)
		return nil, fmt.Errorf("%w: Submit - create request: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: stored request id=%d", pending.ID)
	return appointmentModels.FromDomainAppointment(&pending, s.location), nil
}

// List получает ожидающие заявки в порядке поступления
func (s *Service) List(ctx context.Context) (*appointmentModels.AppointmentListResponse, error) {
	s.logger.Info("List: fetching pending requests")

	items, err := s.requestRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d requests", len(items))
	return appointmentModels.FromDomainAppointmentList(items, s.location), nil
}

// Approve превращает заявку в запись календаря и удаляет ее из очереди
func (s *Service) Approve(ctx context.Context, id int64, req *models.ApproveRequest) (*appointmentModels.AppointmentResponse, error) {
	s.logger.Info("Approve: request id=%d, force=%t", id, req.Force)

	var (
		created domain.Appointment
		event   domain.Event
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pending, err := s.get(txCtx, "Approve", id)
		if err != nil {
			return err
		}

		professional, err := s.professional(txCtx, "Approve", pending.ProfessionalUsername)
		if err != nil {
			return err
		}

		if err := s.checkSpan(txCtx, professional, *pending); err != nil {
			if !errors.Is(err, ErrSlotNotAvailable) || !req.Force {
				s.logger.Warn("Approve: request id=%d cannot be approved: %v", id, err)
				return err
			}
			s.logger.Warn("Approve: conflict overridden by force for request id=%d: %v", id, err)
		}

		created, event, err = s.lifecycle.Approve(*pending)
		if err != nil {
			s.logger.Warn("Approve: transition rejected for request id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.appointmentRepo.Save(txCtx, created); err != nil {
			s.logger.Error("Approve: failed to save appointment id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: Approve - save appointment: %v", ErrInternal, err)
		}

		if err := s.requestRepo.Delete(txCtx, id); err != nil {
			s.logger.Error("Approve: failed to delete request id=%d: %v", id, err)
			return fmt.Errorf("%w: Approve - delete request: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentCreated(string(created.Status), sourceRequest)
	s.metrics.AppointmentEvent(string(event.Kind))
	s.notifier.Notify(ctx, event)

	s.logger.Info("Approve: request id=%d became appointment with status %s", id, created.Status)
	return appointmentModels.FromDomainAppointment(&created, s.location), nil
}

// Reject отклоняет заявку и удаляет ее из очереди
func (s *Service) Reject(ctx context.Context, id int64) error {
	s.logger.Info("Reject: request id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pending, err := s.get(txCtx, "Reject", id)
		if err != nil {
			return err
		}

		if err := s.lifecycle.Reject(*pending); err != nil {
			s.logger.Warn("Reject: transition rejected for request id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.requestRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			s.logger.Error("Reject: failed to delete request id=%d: %v", id, err)
			return fmt.Errorf("%w: Reject - delete request: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Reject: request id=%d rejected", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	pending, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return pending, nil
}

func (s *Service) professional(ctx context.Context, op, username string) (*domain.Professional, error) {
	professional, err := s.scheduleRepo.GetProfessional(ctx, username)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional %s not found", op, username)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional %s: %v", op, username, err)
		return nil, fmt.Errorf("%w: %s - get professional: %v", ErrInternal, op, err)
	}
	return professional, nil
}

// checkSpan проверяет интервал заявки по записям и блокировкам ее дня
func (s *Service) checkSpan(ctx context.Context, professional *domain.Professional, a domain.Appointment) error {
	day := domain.StartOfDay(a.DateTime.In(s.location))

	blocked, err := s.scheduleRepo.ListBlockedByDate(ctx, day)
	if err != nil {
		return fmt.Errorf("%w: list blocked slots: %v", ErrInternal, err)
	}

	existing, err := s.appointmentRepo.ListByDate(ctx, day, ptr.Ptr(professional.Username))
	if err != nil {
		return fmt.Errorf("%w: list appointments: %v", ErrInternal, err)
	}

	err = s.calculator.CheckSpan(availability.Query{
		Day:             day,
		Professional:    *professional,
		DurationMinutes: a.TotalDurationMinutes(),
		Blocked:         blocked,
		Appointments:    existing,
	}, a.DateTime.In(s.location))
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.metrics.SchedulingConflict("request")
	return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
}
