package lifecycle

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
)

// Machine конечный автомат статусов записи
// Все методы принимают запись по значению и возвращают новую копию; вход не изменяется
type Machine struct {
	clock clock.Provider

	mu     sync.Mutex
	lastID int64
}

// NewMachine создает автомат статусов
func NewMachine(clock clock.Provider) *Machine {
	return &Machine{clock: clock}
}

// Now текущее время автомата
func (m *Machine) Now() time.Time {
	return m.clock.Now()
}

// NewID возвращает уникальный идентификатор, основанный на текущем времени
func (m *Machine) NewID() int64 {
	return m.ReserveIDs(1)
}

// ReserveIDs резервирует n последовательных идентификаторов и возвращает первый
// Идентификаторы строго возрастают даже при нескольких вызовах в одну миллисекунду
func (m *Machine) ReserveIDs(n int) int64 {
	if n < 1 {
		n = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seed := m.clock.Now().UnixMilli()
	if seed <= m.lastID {
		seed = m.lastID + 1
	}
	m.lastID = seed + int64(n) - 1
	return seed
}

// Create вводит новую запись в календарь
// Запись в прошлом сразу становится completed/paid, иначе scheduled без статуса оплаты
func (m *Machine) Create(draft domain.Appointment) (domain.Appointment, domain.Event, error) {
	a, err := m.prepare(draft)
	if err != nil {
		return domain.Appointment{}, domain.Event{}, err
	}
	if a.ID == 0 {
		a.ID = m.NewID()
	}

	now := m.clock.Now()
	m.applyInitialStatus(&a, now)
	a.CreatedAt = now
	a.UpdatedAt = now

	return a, domain.Event{Appointment: a.Clone(), Kind: domain.EventCreated}, nil
}

// Submit создает публичную заявку в статусе pending; в календарь она не попадает
func (m *Machine) Submit(draft domain.Appointment) (domain.Appointment, error) {
	a, err := m.prepare(draft)
	if err != nil {
		return domain.Appointment{}, err
	}
	if a.ID == 0 {
		a.ID = m.NewID()
	}

	now := m.clock.Now()
	a.Status = domain.StatusPending
	a.PaymentStatus = nil
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// Approve одобряет заявку: pending -> scheduled (или completed/paid для прошедшего времени)
func (m *Machine) Approve(request domain.Appointment) (domain.Appointment, domain.Event, error) {
	if request.Status != domain.StatusPending {
		return domain.Appointment{}, domain.Event{}, transitionError(request.Status, "approve")
	}

	a, err := m.prepare(request)
	if err != nil {
		return domain.Appointment{}, domain.Event{}, err
	}

	now := m.clock.Now()
	m.applyInitialStatus(&a, now)
	a.UpdatedAt = now

	return a, domain.Event{Appointment: a.Clone(), Kind: domain.EventCreated}, nil
}

// Reject отклоняет заявку; запись не создается
func (m *Machine) Reject(request domain.Appointment) error {
	if request.Status != domain.StatusPending {
		return transitionError(request.Status, "reject")
	}
	return nil
}

// Confirm scheduled -> confirmed
func (m *Machine) Confirm(a domain.Appointment) (domain.Appointment, domain.Event, error) {
	return m.transition(a, "confirm", domain.StatusConfirmed, domain.EventUpdated, domain.StatusScheduled)
}

// Delay scheduled|confirmed -> delayed, время не меняется
func (m *Machine) Delay(a domain.Appointment) (domain.Appointment, domain.Event, error) {
	return m.transition(a, "delay", domain.StatusDelayed, domain.EventUpdated,
		domain.StatusScheduled, domain.StatusConfirmed)
}

// Complete scheduled|confirmed|delayed -> completed вместе с решением об оплате
func (m *Machine) Complete(a domain.Appointment, payment domain.PaymentStatus) (domain.Appointment, domain.Event, error) {
	if !payment.IsValid() {
		return domain.Appointment{}, domain.Event{}, ErrPaymentRequired
	}

	out, ev, err := m.transition(a, "complete", domain.StatusCompleted, domain.EventUpdated, activeStatuses...)
	if err != nil {
		return domain.Appointment{}, domain.Event{}, err
	}

	out.PaymentStatus = &payment
	ev.Appointment = out.Clone()
	return out, ev, nil
}

// SettlePayment отмечает оплату завершенной записи с ожидающим платежом
func (m *Machine) SettlePayment(a domain.Appointment) (domain.Appointment, domain.Event, error) {
	if a.Status != domain.StatusCompleted || a.PaymentStatus == nil || *a.PaymentStatus != domain.PaymentPending {
		return domain.Appointment{}, domain.Event{}, transitionError(a.Status, "settle payment")
	}

	out := a.Clone()
	paid := domain.PaymentPaid
	out.PaymentStatus = &paid
	out.UpdatedAt = m.clock.Now()
	return out, domain.Event{Appointment: out.Clone(), Kind: domain.EventUpdated}, nil
}

// Cancel scheduled|confirmed|delayed -> cancelled (терминальный, мягкое удаление)
func (m *Machine) Cancel(a domain.Appointment) (domain.Appointment, domain.Event, error) {
	return m.transition(a, "cancel", domain.StatusCancelled, domain.EventCancelled, activeStatuses...)
}

// Move переносит запись на [start, end)
// Перенос в прошлое не сохраняется: возвращается ErrCompletionRequired, вызывающий должен вызвать CompleteMove
func (m *Machine) Move(a domain.Appointment, start, end time.Time) (domain.Appointment, domain.Event, error) {
	if err := m.checkMove(a, start, end); err != nil {
		return domain.Appointment{}, domain.Event{}, err
	}

	now := m.clock.Now()
	if start.Before(now) {
		return domain.Appointment{}, domain.Event{}, ErrCompletionRequired
	}

	out := a.Clone()
	out.DateTime = start
	out.EndTime = end
	out.UpdatedAt = now
	return out, domain.Event{Appointment: out.Clone(), Kind: domain.EventUpdated}, nil
}

// CompleteMove фиксирует перенос и завершает запись одним переходом
func (m *Machine) CompleteMove(a domain.Appointment, start, end time.Time, payment domain.PaymentStatus) (domain.Appointment, domain.Event, error) {
	if !payment.IsValid() {
		return domain.Appointment{}, domain.Event{}, ErrPaymentRequired
	}
	if err := m.checkMove(a, start, end); err != nil {
		return domain.Appointment{}, domain.Event{}, err
	}

	out := a.Clone()
	out.DateTime = start
	out.EndTime = end
	out.Status = domain.StatusCompleted
	out.PaymentStatus = &payment
	out.UpdatedAt = m.clock.Now()
	return out, domain.Event{Appointment: out.Clone(), Kind: domain.EventUpdated}, nil
}

// CheckMovable возвращает ErrInvalidTransition, если запись в текущем статусе переносить нельзя
func (m *Machine) CheckMovable(a domain.Appointment) error {
	if !statusIn(a.Status, activeStatuses) {
		return transitionError(a.Status, "move")
	}
	return nil
}

var activeStatuses = []domain.AppointmentStatus{
	domain.StatusScheduled,
	domain.StatusConfirmed,
	domain.StatusDelayed,
}

func (m *Machine) transition(
	a domain.Appointment,
	action string,
	to domain.AppointmentStatus,
	kind domain.EventKind,
	from ...domain.AppointmentStatus,
) (domain.Appointment, domain.Event, error) {
	if !statusIn(a.Status, from) {
		return domain.Appointment{}, domain.Event{}, transitionError(a.Status, action)
	}

	out := a.Clone()
	out.Status = to
	out.UpdatedAt = m.clock.Now()
	return out, domain.Event{Appointment: out.Clone(), Kind: kind}, nil
}

func (m *Machine) checkMove(a domain.Appointment, start, end time.Time) error {
	if err := m.CheckMovable(a); err != nil {
		return err
	}
	if start.IsZero() || !end.After(start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidAppointment)
	}
	expected := time.Duration(a.TotalDurationMinutes()) * time.Minute
	if end.Sub(start) != expected {
		return fmt.Errorf("%w: span %s does not match services duration %s", ErrInvalidAppointment, end.Sub(start), expected)
	}
	return nil
}

// prepare копирует черновик, нормализует телефон, выводит EndTime и проверяет инварианты
func (m *Machine) prepare(draft domain.Appointment) (domain.Appointment, error) {
	a := draft.Clone()
	a.ClientName = strings.TrimSpace(a.ClientName)
	a.ClientPhone = domain.NormalizePhone(a.ClientPhone)
	if a.EndTime.IsZero() && !a.DateTime.IsZero() {
		a.EndTime = a.DateTime.Add(time.Duration(a.TotalDurationMinutes()) * time.Minute)
	}

	if err := Validate(a); err != nil {
		return domain.Appointment{}, err
	}
	return a, nil
}

func (m *Machine) applyInitialStatus(a *domain.Appointment, now time.Time) {
	if a.DateTime.Before(now) {
		paid := domain.PaymentPaid
		a.Status = domain.StatusCompleted
		a.PaymentStatus = &paid
		return
	}
	a.Status = domain.StatusScheduled
	a.PaymentStatus = nil
}

func statusIn(s domain.AppointmentStatus, set []domain.AppointmentStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func transitionError(from domain.AppointmentStatus, action string) error {
	return fmt.Errorf("%w: cannot %s from %q", ErrInvalidTransition, action, from)
}
