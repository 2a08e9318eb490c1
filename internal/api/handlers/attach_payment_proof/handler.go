package attach_payment_proof

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidImage         = "изображение подтверждения оплаты отсутствует или слишком большое"
	msgNotFound             = "запись не найдена"
	msgNotRecognized        = "сумма на изображении не распознана"
	msgInvalidTransition    = "оплату нельзя зафиксировать в текущем статусе записи"
	msgInferenceUnavailable = "сервис распознавания недоступен, попробуйте позже"

	// maxImageBytes ограничение размера изображения
	maxImageBytes = 10 << 20

	formField = "image"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/payment-proof
// Тело: multipart/form-data с полем image или само изображение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/payment-proof - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	image, contentType, err := readImage(r)
	if err != nil || len(image) == 0 {
		h.logger.Warn("POST /appointments/{id}/payment-proof - Invalid image: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidImage)
		return
	}

	result, err := h.service.AttachPaymentProof(r.Context(), id, image, contentType)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/payment-proof - Appointment not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrNotRecognized):
			h.logger.Warn("POST /appointments/{id}/payment-proof - Value not recognized: id=%d", id)
			handlers.RespondUnprocessable(w, msgNotRecognized)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/payment-proof - Invalid transition: id=%d, error=%v", id, err)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrInferenceUnavailable):
			h.logger.Error("POST /appointments/{id}/payment-proof - Inference unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgInferenceUnavailable)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/payment-proof - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidImage)

		default:
			h.logger.Error("POST /appointments/{id}/payment-proof - Failed to attach proof: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/payment-proof - Proof processed: id=%d, value=%.2f, covered=%t",
		id, result.ExtractedValue, result.Covered)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func readImage(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			return nil, "", err
		}
		file, header, err := r.FormFile(formField)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
		if err != nil {
			return nil, "", err
		}
		return data, header.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes))
	if err != nil {
		return nil, "", err
	}
	return data, r.Header.Get("Content-Type"), nil
}
