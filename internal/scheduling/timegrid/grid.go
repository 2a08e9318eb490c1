package timegrid

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// ErrInvalidGrid возвращается при некорректных границах или шаге сетки
var ErrInvalidGrid = errors.New("timegrid: invalid grid")

// Grid дискретизация рабочего дня с фиксированным шагом
// Close является граничной точкой: слот не может начинаться в Close или позже
type Grid struct {
	open  int // минуты от полуночи
	close int
	step  int
}

// Default возвращает сетку 07:00-20:00 с шагом 30 минут
func Default() Grid {
	return Grid{
		open:  types.TimeString(domain.DefaultGridOpen).Minutes(),
		close: types.TimeString(domain.DefaultGridClose).Minutes(),
		step:  domain.DefaultGridStepMinutes,
	}
}

// New создает сетку и проверяет ее параметры
func New(open, close types.TimeString, stepMinutes int) (Grid, error) {
	if err := open.Validate(); err != nil {
		return Grid{}, fmt.Errorf("%w: open: %v", ErrInvalidGrid, err)
	}
	if err := close.Validate(); err != nil {
		return Grid{}, fmt.Errorf("%w: close: %v", ErrInvalidGrid, err)
	}
	if stepMinutes <= 0 {
		return Grid{}, fmt.Errorf("%w: step must be positive", ErrInvalidGrid)
	}

	g := Grid{open: open.Minutes(), close: close.Minutes(), step: stepMinutes}
	if g.open >= g.close {
		return Grid{}, fmt.Errorf("%w: open %s must be before close %s", ErrInvalidGrid, open, close)
	}
	if (g.close-g.open)%g.step != 0 {
		return Grid{}, fmt.Errorf("%w: %s-%s is not a multiple of %d minutes", ErrInvalidGrid, open, close, stepMinutes)
	}
	return g, nil
}

// Open возвращает начало сетки
func (g Grid) Open() types.TimeString {
	return mustFromMinutes(g.open)
}

// Close возвращает конец сетки
func (g Grid) Close() types.TimeString {
	return mustFromMinutes(g.close)
}

// StepMinutes возвращает шаг сетки в минутах
func (g Grid) StepMinutes() int {
	return g.step
}

// Step возвращает шаг сетки как time.Duration
func (g Grid) Step() time.Duration {
	return time.Duration(g.step) * time.Minute
}

// Times возвращает все точки сетки от Open до Close включительно
func (g Grid) Times() []types.TimeString {
	out := make([]types.TimeString, 0, g.SlotCount()+1)
	for m := g.open; m <= g.close; m += g.step {
		out = append(out, mustFromMinutes(m))
	}
	return out
}

// SlotCount количество бронируемых слотов (точек сетки без граничной)
func (g Grid) SlotCount() int {
	return (g.close - g.open) / g.step
}

// SlotStartMinutes минуты от полуночи начала слота с индексом i
func (g Grid) SlotStartMinutes(i int) int {
	return g.open + i*g.step
}

// OpenMinutes начало сетки в минутах от полуночи
func (g Grid) OpenMinutes() int {
	return g.open
}

// CloseMinutes конец сетки в минутах от полуночи
func (g Grid) CloseMinutes() int {
	return g.close
}

// SlotsFor количество слотов для длительности, округление вверх
func (g Grid) SlotsFor(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.step - 1) / g.step
}

// Snap округляет смещение в минутах до ближайшего шага сетки (половина шага округляется вверх)
func (g Grid) Snap(offsetMinutes int) int {
	if offsetMinutes >= 0 {
		return ((offsetMinutes + g.step/2) / g.step) * g.step
	}
	return -g.Snap(-offsetMinutes)
}

// IsOnGrid возвращает true, если время совпадает с началом одного из слотов
func (g Grid) IsOnGrid(t types.TimeString) bool {
	m := t.Minutes()
	if m < g.open || m >= g.close {
		return false
	}
	return (m-g.open)%g.step == 0
}

// IndexOf возвращает индекс слота, начинающегося в t, или -1
func (g Grid) IndexOf(t types.TimeString) int {
	if !g.IsOnGrid(t) {
		return -1
	}
	return (t.Minutes() - g.open) / g.step
}

// At возвращает момент начала времени t в дату day
func (g Grid) At(day time.Time, t types.TimeString) time.Time {
	return t.On(day)
}

func mustFromMinutes(m int) types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(m)
	if err != nil {
		panic(err)
	}
	return ts
}
