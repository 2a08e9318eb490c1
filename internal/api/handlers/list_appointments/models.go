package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день; startDate и endDate задают период
func ToServiceRequest(query url.Values, loc *time.Location) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := handlers.ParseDate(dateStr, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = handlers.ParseOptionalDate(query.Get("startDate"), loc); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.ParseOptionalDate(query.Get("endDate"), loc); err != nil {
			return nil, err
		}
	}

	if professional := query.Get("professional"); professional != "" {
		req.ProfessionalUsername = &professional
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
