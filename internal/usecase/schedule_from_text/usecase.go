package schedule_from_text

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
)

// UseCase use case для создания записи из текста на естественном языке
type UseCase struct {
	inferenceClient InferenceClient
	scheduleRepo    ScheduleRepository
	creator         AppointmentCreator
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	inferenceClient InferenceClient,
	scheduleRepo ScheduleRepository,
	creator AppointmentCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		inferenceClient: inferenceClient,
		scheduleRepo:    scheduleRepo,
		creator:         creator,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи из текста
// Имена из ответа сервиса разрешаются по актуальным каталогам, неизвестные имена отклоняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleFromText: text length=%d, force=%t", len(req.Text), req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleFromText: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбираем текст во внешнем сервисе
	parsed, err := uc.inferenceClient.ParseAppointment(ctx, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, inference.ErrNotRecognized):
			uc.logger.Warn("ScheduleFromText: text not recognized: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrNotRecognized, err)
		case errors.Is(err, inference.ErrServiceUnavailable):
			uc.logger.Error("ScheduleFromText: inference unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInferenceUnavailable, err)
		default:
			uc.logger.Error("ScheduleFromText: failed to parse text: %v", err)
			return nil, fmt.Errorf("%w: failed to parse text: %v", ErrInternal, err)
		}
	}

	if strings.TrimSpace(parsed.ClientName) == "" || len(parsed.Services) == 0 {
		uc.logger.Warn("ScheduleFromText: parsed result has no client or services")
		return nil, fmt.Errorf("%w: client name and services are required", ErrNotRecognized)
	}

	date, start, err := parseWhen(parsed)
	if err != nil {
		uc.logger.Warn("ScheduleFromText: %v", err)
		return nil, err
	}

	// 3. Разрешаем профессионала по актуальному списку
	professionals, err := uc.scheduleRepo.ListProfessionals(ctx)
	if err != nil {
		uc.logger.Error("ScheduleFromText: failed to list professionals: %v", err)
		return nil, fmt.Errorf("%w: failed to list professionals: %v", ErrInternal, err)
	}

	professional, err := resolveProfessional(professionals, parsed.ProfessionalName)
	if err != nil {
		uc.logger.Warn("ScheduleFromText: %v", err)
		return nil, err
	}

	// 4. Создаем запись; услуги разрешаются по каталогу внутри создания
	created, err := uc.creator.Execute(ctx, &create_appointment.Request{
		ClientName:           parsed.ClientName,
		ClientPhone:          req.ClientPhone,
		ClientEmail:          req.ClientEmail,
		ProfessionalUsername: professional.Username,
		ServiceNames:         parsed.Services,
		Date:                 date,
		StartTime:            start,
		Force:                req.Force,
		Source:               create_appointment.SourceText,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScheduleFromText: created appointment id=%d for professional=%s", created.Appointment.ID, professional.Username)

	return &Response{
		Appointment: created.Appointment,
		Parsed:      *parsed,
		Overridden:  created.Overridden,
	}, nil
}
