package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// ScheduleRepository интерфейс репозитория профессионалов и блокировок
type ScheduleRepository interface {
	GetProfessional(ctx context.Context, username string) (*domain.Professional, error)
	ListProfessionals(ctx context.Context) ([]domain.Professional, error)
	UpdateWorkSchedule(ctx context.Context, username string, schedule domain.WorkSchedule) error
	ListBlocked(ctx context.Context, from, to *time.Time) ([]domain.BlockedSlot, error)
	CreateBlocked(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error)
	DeleteBlocked(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
