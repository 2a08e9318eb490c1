// Package usecasetest содержит моки репозиториев и коллабораторов для тестов usecase и service
package usecasetest

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
)

// ScheduleRepository мок репозитория профессионалов и блокировок
type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) GetProfessional(ctx context.Context, username string) (*domain.Professional, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Professional), args.Error(1)
}

func (m *ScheduleRepository) ListProfessionals(ctx context.Context) ([]domain.Professional, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Professional), args.Error(1)
}

func (m *ScheduleRepository) UpdateWorkSchedule(ctx context.Context, username string, schedule domain.WorkSchedule) error {
	args := m.Called(ctx, username, schedule)
	return args.Error(0)
}

func (m *ScheduleRepository) ListBlockedByDate(ctx context.Context, day time.Time) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

func (m *ScheduleRepository) ListBlocked(ctx context.Context, from, to *time.Time) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}

func (m *ScheduleRepository) CreateBlocked(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedSlot), args.Error(1)
}

func (m *ScheduleRepository) DeleteBlocked(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AppointmentRepository мок репозитория записей
type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Save(ctx context.Context, items ...domain.Appointment) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *AppointmentRepository) ListByDate(ctx context.Context, day time.Time, professional *string) (domain.Appointments, error) {
	args := m.Called(ctx, day, professional)
	if fn, ok := args.Get(0).(func(context.Context, time.Time, *string) domain.Appointments); ok {
		return fn(ctx, day, professional), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Appointments), args.Error(1)
}

func (m *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentsFilter) (domain.Appointments, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Appointments), args.Error(1)
}

func (m *AppointmentRepository) ListByPackage(ctx context.Context, packageID string) (domain.Appointments, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Appointments), args.Error(1)
}

func (m *AppointmentRepository) ListByClientPhone(ctx context.Context, phone string) (domain.Appointments, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Appointments), args.Error(1)
}

// RequestRepository мок очереди заявок
type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, a domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *RequestRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *RequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CatalogRepository мок каталога услуг
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListServices(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

// InferenceClient мок клиента сервиса распознавания
type InferenceClient struct {
	mock.Mock
}

func (m *InferenceClient) ParseAppointment(ctx context.Context, text string) (*inference.ParsedAppointment, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inference.ParsedAppointment), args.Error(1)
}

func (m *InferenceClient) ExtractPaymentValue(ctx context.Context, image []byte, contentType string) (*inference.PaymentValue, error) {
	args := m.Called(ctx, image, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inference.PaymentValue), args.Error(1)
}

// TxManager выполняет функцию без реальной транзакции
type TxManager struct {
	Calls int
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Notifier запоминает опубликованные события
type Notifier struct {
	mu     sync.Mutex
	Events []domain.Event
}

func (n *Notifier) Notify(_ context.Context, events ...domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, events...)
}

// Kinds возвращает виды опубликованных событий по порядку
func (n *Notifier) Kinds() []domain.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.EventKind, 0, len(n.Events))
	for _, ev := range n.Events {
		out = append(out, ev.Kind)
	}
	return out
}
