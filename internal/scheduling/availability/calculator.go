package availability

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/timegrid"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// Query входные данные расчета доступности на один день
type Query struct {
	Day                  time.Time // дата в часовом поясе салона, время суток игнорируется
	Professional         domain.Professional
	DurationMinutes      int
	Blocked              []domain.BlockedSlot
	Appointments         []domain.Appointment
	ExcludeAppointmentID int64 // 0 = ничего не исключать
}

// Calculator вычисляет свободные времена начала по сетке
// Чистая функция входных данных; единственная зависимость от окружения - текущее время для "сегодня"
type Calculator struct {
	grid  timegrid.Grid
	clock clock.Provider
}

// NewCalculator создает калькулятор доступности
func NewCalculator(grid timegrid.Grid, clock clock.Provider) *Calculator {
	return &Calculator{grid: grid, clock: clock}
}

// Grid возвращает сетку калькулятора
func (c *Calculator) Grid() timegrid.Grid {
	return c.grid
}

// window рабочее окно дня в минутах от полуночи
type window struct {
	start int
	end   int
}

// FindAvailableStarts возвращает все времена начала, в которые можно записать услугу длительностью
// q.DurationMinutes. Пустой результат - нормальный исход ("нет свободных окон"), а не ошибка.
func (c *Calculator) FindAvailableStarts(q Query) ([]types.TimeString, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	result := make([]types.TimeString, 0)

	win, open := c.workingWindow(q)
	if !open {
		return result, nil
	}

	busy := c.busySlots(q)
	needed := c.grid.SlotsFor(q.DurationMinutes)
	day := domain.StartOfDay(q.Day)
	now := c.clock.Now().In(q.Day.Location())
	isToday := domain.SameDay(now, q.Day)

	// последняя точка сетки - граница, с нее начать нельзя
	times := c.grid.Times()
	for i := 0; i+needed <= c.grid.SlotCount(); i++ {
		if err := c.checkIndex(i, needed, win, busy); err != nil {
			continue
		}

		ts := times[i]
		if isToday && c.grid.At(day, ts).Before(now) {
			continue
		}
		result = append(result, ts)
	}

	return result, nil
}

// CheckSpan проверяет один кандидат start той же проверкой занятости, что и FindAvailableStarts.
// Прошедшее время здесь не проверяется: это правило жизненного цикла (ретроактивные записи).
func (c *Calculator) CheckSpan(q Query, start time.Time) error {
	if err := validateQuery(q); err != nil {
		return err
	}

	start = start.In(q.Day.Location())
	if !domain.SameDay(start, q.Day) {
		return fmt.Errorf("%w: start %s is not on %s", ErrOutsideWorkingHours,
			start.Format(domain.DateTimeFormat), q.Day.Format(domain.DateFormat))
	}

	win, open := c.workingWindow(q)
	if !open {
		return ErrDayOff
	}

	offset := start.Sub(domain.StartOfDay(q.Day))
	if offset%time.Minute != 0 {
		return ErrOffGrid
	}
	ts, err := types.NewTimeStringFromMinutes(int(offset / time.Minute))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOffGrid, err)
	}

	index := c.grid.IndexOf(ts)
	if index < 0 {
		if ts.Minutes() < c.grid.OpenMinutes() || ts.Minutes() >= c.grid.CloseMinutes() {
			return fmt.Errorf("%w: %s is outside the grid", ErrOutsideWorkingHours, ts)
		}
		return fmt.Errorf("%w: %s", ErrOffGrid, ts)
	}

	return c.checkIndex(index, c.grid.SlotsFor(q.DurationMinutes), win, c.busySlots(q))
}

// checkIndex проверяет кандидат с индексом i, занимающий needed слотов
func (c *Calculator) checkIndex(i, needed int, win window, busy []bool) error {
	if i+needed > c.grid.SlotCount() {
		return fmt.Errorf("%w: span exceeds the grid", ErrOutsideWorkingHours)
	}

	start := c.grid.SlotStartMinutes(i)
	end := start + needed*c.grid.StepMinutes()
	if start < win.start || end > win.end {
		return ErrOutsideWorkingHours
	}

	for j := i; j < i+needed; j++ {
		if busy[j] {
			return ErrSlotBusy
		}
	}
	return nil
}

// workingWindow определяет рабочее окно дня
// Расписание не настроено вовсе -> весь день сетки; настроено, но дня нет -> выходной
func (c *Calculator) workingWindow(q Query) (window, bool) {
	schedule := q.Professional.WorkSchedule
	if !schedule.IsConfigured() {
		return window{start: c.grid.OpenMinutes(), end: c.grid.CloseMinutes()}, true
	}

	hours := schedule.For(q.Day.Weekday())
	if hours == nil {
		return window{}, false
	}

	start, end := hours.Start.Minutes(), hours.End.Minutes()
	if start < 0 || end < 0 || start >= end {
		return window{}, false
	}
	return window{start: start, end: end}, true
}

// busySlots строит множество занятых слотов сетки
func (c *Calculator) busySlots(q Query) []bool {
	busy := make([]bool, c.grid.SlotCount())
	step := c.grid.StepMinutes()

	mark := func(from, to int) {
		for j := range busy {
			slotStart := c.grid.SlotStartMinutes(j)
			if slotStart < to && slotStart+step > from {
				busy[j] = true
			}
		}
	}

	// 1. Блокировки салона
	for _, b := range q.Blocked {
		if !b.AppliesTo(q.Day) {
			continue
		}
		if b.IsFullDay {
			for j := range busy {
				busy[j] = true
			}
			return busy
		}
		if b.StartTime == nil {
			continue
		}
		from := b.StartTime.Minutes()
		to := from + step
		if b.EndTime != nil && !b.EndTime.IsZero() {
			to = b.EndTime.Minutes()
		}
		if from < 0 || to <= from {
			continue
		}
		mark(from, to)
	}

	// 2. Записи того же профессионала в этот день
	midnight := domain.StartOfDay(q.Day)
	for _, a := range q.Appointments {
		if a.ProfessionalUsername != q.Professional.Username {
			continue
		}
		if q.ExcludeAppointmentID != 0 && a.ID == q.ExcludeAppointmentID {
			continue
		}
		if !a.OccupiesCalendar() {
			continue
		}

		from := int(math.Floor(a.DateTime.Sub(midnight).Minutes()))
		to := int(math.Ceil(a.EndTime.Sub(midnight).Minutes()))
		if to <= 0 || from >= 24*60 || to <= from {
			continue
		}
		mark(from, to)
	}

	return busy
}

func validateQuery(q Query) error {
	if q.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrInvalidQuery)
	}
	if q.Professional.Username == "" {
		return fmt.Errorf("%w: professional is required", ErrInvalidQuery)
	}
	if q.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidQuery, q.DurationMinutes)
	}
	return nil
}
