package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// ErrInvalidWeekday возвращается при неизвестном дне недели
var ErrInvalidWeekday = errors.New("invalid weekday")

// Request модели

// WorkHours рабочее окно дня
type WorkHours struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00"
}

// UpdateScheduleRequest запрос на обновление рабочего расписания
// Ключ - день недели ("monday"...), null - выходной; пустой объект снимает расписание
type UpdateScheduleRequest struct {
	Days map[string]*WorkHours `json:"days"`
}

// CreateBlockedRequest запрос на блокировку даты или интервала
type CreateBlockedRequest struct {
	Date      time.Time
	IsFullDay bool
	StartTime *string
	EndTime   *string // nil - ровно один шаг сетки
	Reason    *string
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	Name            string  `json:"name"`
	Value           float64 `json:"value"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category,omitempty"`
}

// ServiceListResponse каталог услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ProfessionalResponse профессионал с рабочим расписанием
type ProfessionalResponse struct {
	Username     string                `json:"username"`
	Name         string                `json:"name"`
	Configured   bool                  `json:"scheduleConfigured"`
	WorkSchedule map[string]*WorkHours `json:"workSchedule"`
}

// ProfessionalListResponse список профессионалов
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// BlockedSlotResponse блокировка
type BlockedSlotResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	IsFullDay bool      `json:"isFullDay"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse список блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// Методы конвертации

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToWeekday конвертирует имя дня недели в time.Weekday
func ToWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrInvalidWeekday
	}
	return wd, nil
}

// WeekdayName имя дня недели в нижнем регистре
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// FromDomainServices конвертирует каталог в DTO
func FromDomainServices(items []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(items))}
	for _, s := range items {
		resp.Services = append(resp.Services, ServiceResponse{
			Name:            s.Name,
			Value:           s.Value,
			DurationMinutes: s.DurationMinutes,
			Category:        s.Category,
		})
	}
	return resp
}

// FromDomainProfessional конвертирует профессионала в DTO
func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	resp := &ProfessionalResponse{
		Username:     p.Username,
		Name:         p.Name,
		Configured:   p.WorkSchedule.IsConfigured(),
		WorkSchedule: make(map[string]*WorkHours, len(p.WorkSchedule)),
	}
	for wd, hours := range p.WorkSchedule {
		if hours == nil {
			resp.WorkSchedule[WeekdayName(wd)] = nil
			continue
		}
		resp.WorkSchedule[WeekdayName(wd)] = &WorkHours{Start: hours.Start.String(), End: hours.End.String()}
	}
	return resp
}

// FromDomainProfessionals конвертирует список профессионалов в DTO
func FromDomainProfessionals(items []domain.Professional) *ProfessionalListResponse {
	resp := &ProfessionalListResponse{Professionals: make([]ProfessionalResponse, 0, len(items))}
	for i := range items {
		resp.Professionals = append(resp.Professionals, *FromDomainProfessional(&items[i]))
	}
	return resp
}

// FromDomainBlockedSlot конвертирует блокировку в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	resp := &BlockedSlotResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		IsFullDay: b.IsFullDay,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
	if b.StartTime != nil {
		start := b.StartTime.String()
		resp.StartTime = &start
	}
	if b.EndTime != nil {
		end := b.EndTime.String()
		resp.EndTime = &end
	}
	return resp
}

// FromDomainBlockedSlots конвертирует список блокировок в DTO
func FromDomainBlockedSlots(items []domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{BlockedSlots: make([]BlockedSlotResponse, 0, len(items))}
	for i := range items {
		resp.BlockedSlots = append(resp.BlockedSlots, *FromDomainBlockedSlot(&items[i]))
	}
	return resp
}
