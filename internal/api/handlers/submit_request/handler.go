package submit_request

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные заявки"
	msgSlotNotAvailable     = "выбранное время уже занято"
	msgProfessionalNotFound = "профессионал не найден"
	msgServiceNotFound      = "услуга не найдена"
)

type Handler struct {
	service  RequestService
	location *time.Location
	logger   Logger
}

func NewHandler(service RequestService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /requests - Failed to parse date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Submit(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrSlotNotAvailable):
			h.logger.Warn("POST /requests - Slot not available: professional=%s, date=%s %s", req.Professional, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, requests.ErrProfessionalNotFound):
			h.logger.Warn("POST /requests - Professional not found: %s", req.Professional)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, requests.ErrServiceNotFound):
			h.logger.Warn("POST /requests - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests - Failed to submit request: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request submitted: id=%d, professional=%s", result.ID, req.Professional)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
