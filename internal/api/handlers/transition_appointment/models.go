package transition_appointment

import (
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
)

// TransitionRequest HTTP request model (тело необязательно)
type TransitionRequest struct {
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *TransitionRequest) ToServiceRequest(action string) *models.TransitionRequest {
	return &models.TransitionRequest{
		Action:        action,
		PaymentStatus: r.PaymentStatus,
	}
}
