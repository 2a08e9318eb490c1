package reschedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
)

var (
	// ErrInvalidDrop некорректный жест переноса или запись без длительности
	ErrInvalidDrop = fmt.Errorf("reschedule: %w", domain.ErrValidation)

	// ErrConflict целевой интервал занят; вызывающий может разрешить перенос принудительно
	ErrConflict = fmt.Errorf("reschedule: %w", domain.ErrStaleConflict)
)

const minutesPerDay = 24 * 60

// Candidate новое положение записи после переноса
type Candidate struct {
	AppointmentID int64
	Start         time.Time
	End           time.Time
}

// DurationMinutes длительность кандидата в минутах
func (c Candidate) DurationMinutes() int {
	return int(c.End.Sub(c.Start) / time.Minute)
}

// Resolver переводит жест drag-and-drop во время начала по сетке
// Перенос разрешающий: занятость проверяется отдельным шагом Validate
type Resolver struct {
	grid timegrid.Grid
	calc *availability.Calculator
}

// NewResolver создает резолвер переноса
func NewResolver(calc *availability.Calculator) *Resolver {
	return &Resolver{grid: calc.Grid(), calc: calc}
}

// ResolveDrop округляет смещение указателя до ближайшего шага сетки, прибавляет его к полуночи targetDay
// и сохраняет исходную длительность записи
func (r *Resolver) ResolveDrop(a domain.Appointment, pointerOffsetMinutes int, targetDay time.Time) (Candidate, error) {
	if !a.EndTime.After(a.DateTime) {
		return Candidate{}, fmt.Errorf("%w: appointment %d has no duration", ErrInvalidDrop, a.ID)
	}
	if targetDay.IsZero() {
		return Candidate{}, fmt.Errorf("%w: target day is required", ErrInvalidDrop)
	}

	offset := r.grid.Snap(pointerOffsetMinutes)
	if offset < 0 || offset >= minutesPerDay {
		return Candidate{}, fmt.Errorf("%w: offset %d minutes is outside the day", ErrInvalidDrop, pointerOffsetMinutes)
	}

	start := domain.StartOfDay(targetDay).Add(time.Duration(offset) * time.Minute)
	return Candidate{
		AppointmentID: a.ID,
		Start:         start,
		End:           start.Add(a.Duration()),
	}, nil
}

// Validate проверяет кандидата по множеству занятых слотов, исключая саму переносимую запись.
// Занятость и выход за рабочее окно возвращаются как ErrConflict с причиной.
func (r *Resolver) Validate(c Candidate, q availability.Query) error {
	q.Day = c.Start
	q.DurationMinutes = c.DurationMinutes()
	q.ExcludeAppointmentID = c.AppointmentID

	err := r.calc.CheckSpan(q, c.Start)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConflict, err)
}
