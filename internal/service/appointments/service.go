package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/lifecycle"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
)

// paymentTolerance допуск сравнения распознанной суммы с итогом записи
const paymentTolerance = 0.005

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	lifecycle       Lifecycle
	inferenceClient InferenceClient
	txManager       TransactionManager
	notifier        Notifier
	location        *time.Location
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	lifecycle Lifecycle,
	inferenceClient InferenceClient,
	txManager TransactionManager,
	notifier Notifier,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		lifecycle:       lifecycle,
		inferenceClient: inferenceClient,
		txManager:       txManager,
		notifier:        notifier,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	a, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(a, s.location), nil
}

// List получает записи по фильтру (период, профессионал, статус)
// Даты периода трактуются как календарные даты салона
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, professional=%v, status=%v, includeCancelled=%t",
		req.ProfessionalUsername, req.Status, req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != nil {
		day := domain.DayIn(*filter.StartDate, s.location)
		filter.StartDate = &day
	}
	if filter.EndDate != nil {
		day := domain.DayIn(*filter.EndDate, s.location)
		filter.EndDate = &day
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	items, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(items))
	return models.FromDomainAppointmentList(items, s.location), nil
}

// ClientHistory получает историю клиента по телефону (включая отмененные)
func (s *Service) ClientHistory(ctx context.Context, phone string) (*models.AppointmentListResponse, error) {
	normalized := domain.NormalizePhone(phone)
	s.logger.Info("ClientHistory: fetching history for phone=%s", normalized)

	if len(normalized) < domain.MinPhoneDigits {
		return nil, fmt.Errorf("%w: phone must have at least %d digits", ErrInvalidInput, domain.MinPhoneDigits)
	}

	items, err := s.appointmentRepo.ListByClientPhone(ctx, normalized)
	if err != nil {
		s.logger.Error("ClientHistory: repository error: %v", err)
		return nil, fmt.Errorf("%w: ClientHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClientHistory: successfully fetched %d appointments", len(items))
	return models.FromDomainAppointmentList(items, s.location), nil
}

// ListPackage получает все сессии пакета
func (s *Service) ListPackage(ctx context.Context, packageID string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListPackage: fetching package %s", packageID)

	items, err := s.appointmentRepo.ListByPackage(ctx, packageID)
	if err != nil {
		s.logger.Error("ListPackage: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPackage - repository error: %v", ErrInternal, err)
	}
	if len(items) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return models.FromDomainAppointmentList(items, s.location), nil
}

// Transition выполняет действие над записью: confirm, delay, complete или cancel
func (s *Service) Transition(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: action=%s for appointment id=%d", req.Action, id)

	var payment *domain.PaymentStatus
	if req.PaymentStatus != nil {
		p, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		payment = &p
	}

	var apply func(a domain.Appointment) (domain.Appointment, domain.Event, error)
	switch req.Action {
	case models.ActionConfirm:
		apply = s.lifecycle.Confirm
	case models.ActionDelay:
		apply = s.lifecycle.Delay
	case models.ActionCancel:
		apply = s.lifecycle.Cancel
	case models.ActionComplete:
		if payment == nil {
			return nil, ErrPaymentRequired
		}
		apply = func(a domain.Appointment) (domain.Appointment, domain.Event, error) {
			return s.lifecycle.Complete(a, *payment)
		}
	default:
		s.logger.Warn("Transition: unknown action=%s", req.Action)
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	result, err := s.update(ctx, "Transition", id, apply)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: appointment id=%d is now %s", id, result.Status)
	return models.FromDomainAppointment(result, s.location), nil
}

// AttachPaymentProof распознает сумму на подтверждении оплаты
// Если сумма покрывает итог записи, активная запись завершается как оплаченная,
// а завершенная с ожидающей оплатой отмечается оплаченной
func (s *Service) AttachPaymentProof(ctx context.Context, id int64, image []byte, contentType string) (*models.PaymentProofResponse, error) {
	s.logger.Info("AttachPaymentProof: appointment id=%d, image size=%d", id, len(image))

	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}

	current, err := s.get(ctx, "AttachPaymentProof", id)
	if err != nil {
		return nil, err
	}

	value, err := s.inferenceClient.ExtractPaymentValue(ctx, image, contentType)
	if err != nil {
		switch {
		case errors.Is(err, inference.ErrNotRecognized):
			s.logger.Warn("AttachPaymentProof: value not recognized: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrNotRecognized, err)
		case errors.Is(err, inference.ErrServiceUnavailable):
			s.logger.Error("AttachPaymentProof: inference unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInferenceUnavailable, err)
		default:
			s.logger.Error("AttachPaymentProof: extraction failed: %v", err)
			return nil, fmt.Errorf("%w: AttachPaymentProof - extraction failed: %v", ErrInternal, err)
		}
	}

	total := current.TotalValue()
	resp := &models.PaymentProofResponse{
		ExtractedValue: value.Value,
		TotalValue:     total,
		Covered:        value.Value+paymentTolerance >= total,
	}

	if !resp.Covered {
		s.logger.Warn("AttachPaymentProof: value %.2f does not cover total %.2f for id=%d", value.Value, total, id)
		resp.Appointment = models.FromDomainAppointment(current, s.location)
		return resp, nil
	}

	result, err := s.update(ctx, "AttachPaymentProof", id, func(a domain.Appointment) (domain.Appointment, domain.Event, error) {
		if a.Status == domain.StatusCompleted {
			return s.lifecycle.SettlePayment(a)
		}
		return s.lifecycle.Complete(a, domain.PaymentPaid)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AttachPaymentProof: appointment id=%d marked as paid", id)
	resp.Appointment = models.FromDomainAppointment(result, s.location)
	return resp, nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return a, nil
}

// update читает запись, применяет переход и сохраняет результат в одной транзакции
func (s *Service) update(
	ctx context.Context,
	op string,
	id int64,
	apply func(a domain.Appointment) (domain.Appointment, domain.Event, error),
) (*domain.Appointment, error) {
	var (
		result domain.Appointment
		event  domain.Event
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.get(txCtx, op, id)
		if err != nil {
			return err
		}

		result, event, err = apply(*current)
		if err != nil {
			s.logger.Warn("%s: transition rejected for id=%d: %v", op, id, err)
			switch {
			case errors.Is(err, lifecycle.ErrInvalidTransition):
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			case errors.Is(err, lifecycle.ErrPaymentRequired):
				return ErrPaymentRequired
			default:
				return fmt.Errorf("%w: %s - transition failed: %v", ErrInternal, op, err)
			}
		}

		if err := s.appointmentRepo.Save(txCtx, result); err != nil {
			s.logger.Error("%s: failed to save appointment id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - save failed: %v", ErrInternal, op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AppointmentEvent(string(event.Kind))
	s.notifier.Notify(ctx, event)
	return &result, nil
}
