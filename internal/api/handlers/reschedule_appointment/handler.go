package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidParams        = "некорректные параметры переноса: targetDate YYYY-MM-DD, startTime HH:MM, paymentStatus pending|paid"
	msgInvalidInput         = "укажите ровно одно из полей offsetMinutes или startTime"
	msgNotFound             = "запись не найдена"
	msgSlotConflict         = "целевое время занято, повторите с force для принудительного переноса"
	msgCompletionRequired   = "перенос в прошлое завершает запись: укажите paymentStatus"
	msgInvalidTransition    = "запись в текущем статусе нельзя перенести"
)

type Handler struct {
	useCase  RescheduleAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id, h.location)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot conflict: id=%d, error=%v", id, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrCompletionRequired):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Completion required: id=%d", id)
			handlers.RespondUnprocessable(w, msgCompletionRequired)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid transition: id=%d, error=%v", id, err)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment moved: id=%d, completed=%t, overridden=%t",
		id, result.Completed, result.Overridden)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
