package create_package

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	createPackage "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_package"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// CreatePackageRequest HTTP request model
type CreatePackageRequest struct {
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	Professional string  `json:"professional"`
	// Rotation услуги по сессиям: [["Corte"],["Escova","Hidratação"]]
	Rotation        [][]string `json:"rotation"`
	FirstDate       string     `json:"firstDate"`
	StartTime       string     `json:"startTime"`
	Observations    *string    `json:"observations,omitempty"`
	TotalPrice      *float64   `json:"totalPrice,omitempty"`
	PricePerSession *float64   `json:"pricePerSession,omitempty"`
	Force           bool       `json:"force,omitempty"`
}

// SessionConflict конфликт сессии пакета
type SessionConflict struct {
	Session  int    `json:"session"`
	DateTime string `json:"dateTime"`
	Reason   string `json:"reason"`
}

// CreatePackageResponse HTTP response model
type CreatePackageResponse struct {
	PackageID       string                                  `json:"packageId"`
	PricePerSession float64                                 `json:"pricePerSession"`
	Appointments    []appointmentModels.AppointmentResponse `json:"appointments"`
	Conflicts       []SessionConflict                       `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePackageRequest) ToUseCaseRequest(loc *time.Location) (*createPackage.Request, error) {
	firstDate, err := handlers.ParseDate(r.FirstDate, loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createPackage.Request{
		ClientName:           r.ClientName,
		ClientPhone:          r.ClientPhone,
		ClientEmail:          r.ClientEmail,
		ProfessionalUsername: r.Professional,
		Rotation:             r.Rotation,
		FirstDate:            firstDate,
		StartTime:            startTime,
		Observations:         r.Observations,
		TotalPrice:           r.TotalPrice,
		PricePerSession:      r.PricePerSession,
		Force:                r.Force,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPackage.Response, loc *time.Location) *CreatePackageResponse {
	conflicts := make([]SessionConflict, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = SessionConflict{
			Session:  c.Session,
			DateTime: c.DateTime.In(loc).Format(time.RFC3339),
			Reason:   c.Reason,
		}
	}

	return &CreatePackageResponse{
		PackageID:       resp.PackageID,
		PricePerSession: resp.PricePerSession,
		Appointments:    appointmentModels.FromDomainAppointmentList(resp.Appointments, loc).Appointments,
		Conflicts:       conflicts,
	}
}
