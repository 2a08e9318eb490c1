package get_available_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonScheduler/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Professional    string   `json:"professional"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Professional:    resp.ProfessionalUsername,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// duration (минуты) и services (через запятую) взаимозаменяемы; exclude - ID переносимой записи
func ToUseCaseRequest(username string, query map[string][]string, loc *time.Location) (*getAvailableSlots.Request, error) {
	get := func(key string) string {
		if v := query[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	date, err := handlers.ParseDate(get("date"), loc)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ProfessionalUsername: username,
		Date:                 date,
	}

	if v := get("duration"); v != "" {
		if req.DurationMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}
	if v := get("services"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				req.ServiceNames = append(req.ServiceNames, name)
			}
		}
	}
	if v := get("exclude"); v != "" {
		if req.ExcludeAppointmentID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, err
		}
	}
	return req, nil
}
