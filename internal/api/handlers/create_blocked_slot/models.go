package create_blocked_slot

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/schedule/models"
)

// CreateBlockedSlotRequest HTTP request model
type CreateBlockedSlotRequest struct {
	Date      string  `json:"date"`
	IsFullDay bool    `json:"isFullDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedSlotRequest) ToServiceRequest(loc *time.Location) (*models.CreateBlockedRequest, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockedRequest{
		Date:      date,
		IsFullDay: r.IsFullDay,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}, nil
}
