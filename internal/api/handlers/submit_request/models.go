package submit_request

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// SubmitRequest HTTP request model публичной заявки
type SubmitRequest struct {
	ClientName   string   `json:"clientName"`
	ClientPhone  string   `json:"clientPhone"`
	ClientEmail  *string  `json:"clientEmail,omitempty"`
	Professional string   `json:"professional"`
	Services     []string `json:"services"`
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	Observations *string  `json:"observations,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubmitRequest) ToServiceRequest(loc *time.Location) (*models.SubmitRequest, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.SubmitRequest{
		ClientName:           r.ClientName,
		ClientPhone:          r.ClientPhone,
		ClientEmail:          r.ClientEmail,
		ProfessionalUsername: r.Professional,
		ServiceNames:         r.Services,
		Date:                 date,
		StartTime:            startTime,
		Observations:         r.Observations,
	}, nil
}
