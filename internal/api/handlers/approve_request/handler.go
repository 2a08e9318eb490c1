package approve_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
)

const (
	msgInvalidRequestID     = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "заявка не найдена"
	msgSlotNotAvailable     = "время заявки уже занято, повторите с force для принудительного одобрения"
	msgProfessionalNotFound = "профессионал заявки больше не существует"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{id}/approve
// Тело необязательно: {"force": true}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.ApproveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /requests/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.service.Approve(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/approve - Request not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrSlotNotAvailable):
			h.logger.Warn("POST /requests/{id}/approve - Slot not available: id=%d", id)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, requests.ErrProfessionalNotFound):
			h.logger.Warn("POST /requests/{id}/approve - Professional not found: id=%d", id)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("POST /requests/{id}/approve - Failed to approve request: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/approve - Request approved: id=%d, appointment_id=%d", id, appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, appointment)
}
