package schedule_from_text

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
	scheduleFromText "github.com/m04kA/SMC-SalonScheduler/internal/usecase/schedule_from_text"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidInput            = "нужны текст записи и телефон клиента"
	msgNotRecognized           = "не удалось распознать запись в тексте"
	msgProfessionalNotResolved = "профессионал не указан в тексте или не найден"
	msgUnresolvedReference     = "услуга или профессионал из текста не найдены"
	msgInferenceUnavailable    = "сервис распознавания недоступен, попробуйте позже"
	msgSlotNotAvailable        = "распознанное время занято, повторите с force для принудительной записи"
	msgOutsideSchedule         = "распознанное время вне рабочего расписания профессионала"
)

type Handler struct {
	useCase  ScheduleFromTextUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ScheduleFromTextUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments/from-text
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleFromTextRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/from-text - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, scheduleFromText.ErrNotRecognized):
			h.logger.Warn("POST /appointments/from-text - Not recognized: %v", err)
			handlers.RespondUnprocessable(w, msgNotRecognized)

		case errors.Is(err, scheduleFromText.ErrProfessionalNotResolved):
			h.logger.Warn("POST /appointments/from-text - Professional not resolved: %v", err)
			handlers.RespondUnprocessable(w, msgProfessionalNotResolved)

		case errors.Is(err, domain.ErrUnresolvedReference):
			h.logger.Warn("POST /appointments/from-text - Unresolved reference: %v", err)
			handlers.RespondUnprocessable(w, msgUnresolvedReference)

		case errors.Is(err, scheduleFromText.ErrInferenceUnavailable):
			h.logger.Error("POST /appointments/from-text - Inference unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgInferenceUnavailable)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments/from-text - Slot not available: %v", err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrProfessionalDayOff),
			errors.Is(err, createAppointment.ErrOutsideWorkingHours),
			errors.Is(err, createAppointment.ErrInvalidTime):
			h.logger.Warn("POST /appointments/from-text - Outside schedule: %v", err)
			handlers.RespondUnprocessable(w, msgOutsideSchedule)

		case errors.Is(err, scheduleFromText.ErrInvalidInput),
			errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/from-text - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/from-text - Failed to schedule from text: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/from-text - Appointment created: id=%d, overridden=%t",
		result.Appointment.ID, result.Overridden)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
