package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Service сервис настройки расписания: профессионалы, блокировки, каталог
type Service struct {
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	grid         timegrid.Grid
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	grid timegrid.Grid,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		grid:         grid,
		location:     location,
		logger:       logger,
	}
}

// ListServices возвращает активный каталог услуг
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	items, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: ListServices - list services: %v", ErrInternal, err)
	}
	return models.FromDomainServices(items), nil
}

// ListProfessionals возвращает профессионалов с их рабочим расписанием
func (s *Service) ListProfessionals(ctx context.Context) (*models.ProfessionalListResponse, error) {
	items, err := s.scheduleRepo.ListProfessionals(ctx)
	if err != nil {
		s.logger.Error("ListProfessionals: failed to list professionals: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - list professionals: %v", ErrInternal, err)
	}
	return models.FromDomainProfessionals(items), nil
}

// UpdateWorkSchedule полностью заменяет рабочее расписание профессионала
func (s *Service) UpdateWorkSchedule(ctx context.Context, username string, req *models.UpdateScheduleRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("UpdateWorkSchedule: professional=%s, days=%d", username, len(req.Days))

	// 1. Валидируем входные данные
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	schedule, err := toWorkSchedule(req.Days)
	if err != nil {
		s.logger.Warn("UpdateWorkSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем расписание
	if err := s.scheduleRepo.UpdateWorkSchedule(ctx, username, schedule); err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			s.logger.Warn("UpdateWorkSchedule: professional %s not found", username)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateWorkSchedule: failed to update professional %s: %v", username, err)
		return nil, fmt.Errorf("%w: UpdateWorkSchedule - update: %v", ErrInternal, err)
	}

	// 3. Возвращаем актуальное состояние
	professional, err := s.scheduleRepo.GetProfessional(ctx, username)
	if err != nil {
		s.logger.Error("UpdateWorkSchedule: failed to reload professional %s: %v", username, err)
		return nil, fmt.Errorf("%w: UpdateWorkSchedule - reload: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkSchedule: schedule of %s updated, configured=%t", username, schedule.IsConfigured())
	return models.FromDomainProfessional(professional), nil
}

// ListBlocked возвращает блокировки в диапазоне дат (границы необязательны)
func (s *Service) ListBlocked(ctx context.Context, from, to *time.Time) (*models.BlockedSlotListResponse, error) {
	if from != nil {
		day := domain.DayIn(*from, s.location)
		from = &day
	}
	if to != nil {
		day := domain.DayIn(*to, s.location)
		to = &day
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	items, err := s.scheduleRepo.ListBlocked(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlocked: failed to list blocked slots: %v", err)
		return nil, fmt.Errorf("%w: ListBlocked - list: %v", ErrInternal, err)
	}
	return models.FromDomainBlockedSlots(items), nil
}

// CreateBlocked блокирует день целиком или интервал сетки
func (s *Service) CreateBlocked(ctx context.Context, req *models.CreateBlockedRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlocked: date=%s, fullDay=%t", req.Date.Format(domain.DateFormat), req.IsFullDay)

	// 1. Валидируем входные данные
	block, err := s.toBlockedSlot(req)
	if err != nil {
		s.logger.Warn("CreateBlocked: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем блокировку
	created, err := s.scheduleRepo.CreateBlocked(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlocked: failed to create blocked slot: %v", err)
		return nil, fmt.Errorf("%w: CreateBlocked - create: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlocked: blocked slot id=%d created", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// DeleteBlocked снимает блокировку
func (s *Service) DeleteBlocked(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid blocked slot id", ErrInvalidInput)
	}

	if err := s.scheduleRepo.DeleteBlocked(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("DeleteBlocked: blocked slot id=%d not found", id)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlocked: failed to delete blocked slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlocked - delete: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlocked: blocked slot id=%d deleted", id)
	return nil
}

func (s *Service) toBlockedSlot(req *models.CreateBlockedRequest) (*domain.BlockedSlot, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	block := &domain.BlockedSlot{
		Date:      domain.DayIn(req.Date, s.location),
		IsFullDay: req.IsFullDay,
		Reason:    req.Reason,
	}
	// Для полного дня время не хранится
	if req.IsFullDay {
		return block, nil
	}

	if req.StartTime == nil {
		return nil, fmt.Errorf("%w: start time is required for a partial block", ErrInvalidInput)
	}
	start, err := types.NewTimeStringFromString(*req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if !s.grid.IsOnGrid(start) {
		return nil, fmt.Errorf("%w: start time %s is not on the grid", ErrInvalidInput, start)
	}
	block.StartTime = &start

	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		if !end.IsAfter(start) {
			return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
		}
		if end.Minutes() > s.grid.CloseMinutes() {
			return nil, fmt.Errorf("%w: end time %s is after closing", ErrInvalidInput, end)
		}
		block.EndTime = &end
	}
	return block, nil
}

func toWorkSchedule(days map[string]*models.WorkHours) (domain.WorkSchedule, error) {
	schedule := make(domain.WorkSchedule, len(days))
	for name, hours := range days {
		wd, err := models.ToWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidInput, name, err)
		}
		// null - выходной
		if hours == nil {
			schedule[wd] = nil
			continue
		}

		start, err := types.NewTimeStringFromString(hours.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start: %v", ErrInvalidInput, name, err)
		}
		end, err := types.NewTimeStringFromString(hours.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %s end: %v", ErrInvalidInput, name, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: %s start must be before end", ErrInvalidInput, name)
		}
		schedule[wd] = &domain.WorkHours{Start: start, End: end}
	}
	return schedule, nil
}
