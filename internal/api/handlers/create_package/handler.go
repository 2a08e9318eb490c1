package create_package

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	createPackage "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_package"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные пакета: нужна ротация услуг и ровно одна цена"
	msgSlotNotAvailable     = "время первой сессии занято, повторите с force для принудительной записи"
	msgProfessionalNotFound = "профессионал не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgProfessionalDayOff   = "сессия пакета выпадает на выходной профессионала"
	msgOutsideWorkingHours  = "сессия пакета выходит за рабочее время профессионала"
	msgInvalidTime          = "время начала не совпадает с сеткой расписания"
)

type Handler struct {
	useCase  CreatePackageUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreatePackageUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments/packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /appointments/packages - Failed to parse date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPackage.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments/packages - First session slot not available: professional=%s", req.Professional)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createPackage.ErrProfessionalNotFound):
			h.logger.Warn("POST /appointments/packages - Professional not found: %s", req.Professional)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createPackage.ErrServiceNotFound):
			h.logger.Warn("POST /appointments/packages - Service not found: %v", err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createPackage.ErrProfessionalDayOff):
			h.logger.Warn("POST /appointments/packages - Professional day off: %v", err)
			handlers.RespondUnprocessable(w, msgProfessionalDayOff)

		case errors.Is(err, createPackage.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments/packages - Outside working hours: %v", err)
			handlers.RespondUnprocessable(w, msgOutsideWorkingHours)

		case errors.Is(err, createPackage.ErrInvalidTime):
			h.logger.Warn("POST /appointments/packages - Start time is not on the grid: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createPackage.ErrInvalidInput):
			h.logger.Warn("POST /appointments/packages - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/packages - Failed to create package: professional=%s, error=%v", req.Professional, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/packages - Package created: id=%s, sessions=%d, conflicts=%d",
		result.PackageID, len(result.Appointments), len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
