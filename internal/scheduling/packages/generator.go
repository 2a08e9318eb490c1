package packages

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/lifecycle"
)

// Core общие данные всех сессий пакета
type Core struct {
	ClientName           string
	ClientPhone          string
	ClientEmail          *string
	ProfessionalUsername string
	Observations         *string
}

// Generator разворачивает заявку на пакет в PackageSessions еженедельных записей
type Generator struct {
	machine      *lifecycle.Machine
	newPackageID func() string
}

// NewGenerator создает генератор пакетов
func NewGenerator(machine *lifecycle.Machine) *Generator {
	return &Generator{
		machine:      machine,
		newPackageID: uuid.NewString,
	}
}

// Generate создает ровно domain.PackageSessions записей с шагом domain.PackageIntervalDays от firstDate.
// Услуги сессии i берутся из rotation[i % len(rotation)], стоимость сессии равна pricePerSession.
// Правило ретроактивности применяется к каждой сессии отдельно.
// При любой ошибке не возвращается ни одной записи.
func (g *Generator) Generate(
	core Core,
	firstDate time.Time,
	pricePerSession float64,
	rotation [][]domain.Service,
) ([]domain.Appointment, []domain.Event, error) {
	if err := validateInput(firstDate, pricePerSession, rotation); err != nil {
		return nil, nil, err
	}

	packageID := g.newPackageID()
	seed := g.machine.ReserveIDs(domain.PackageSessions)

	appointments := make([]domain.Appointment, 0, domain.PackageSessions)
	events := make([]domain.Event, 0, domain.PackageSessions)

	for i := 0; i < domain.PackageSessions; i++ {
		pid := packageID
		draft := domain.Appointment{
			ID:                   seed + int64(i),
			ClientName:           core.ClientName,
			ClientPhone:          core.ClientPhone,
			ClientEmail:          core.ClientEmail,
			ProfessionalUsername: core.ProfessionalUsername,
			Services:             priceSession(rotation[i%len(rotation)], pricePerSession),
			DateTime:             firstDate.AddDate(0, 0, i*domain.PackageIntervalDays),
			Observations:         core.Observations,
			IsPackageAppointment: true,
			PackageID:            &pid,
		}

		a, ev, err := g.machine.Create(draft)
		if err != nil {
			return nil, nil, fmt.Errorf("session %d: %w", i+1, err)
		}
		appointments = append(appointments, a)
		events = append(events, ev)
	}

	return appointments, events, nil
}

// ResolveRotation находит услуги ротации в каталоге по имени (без учета регистра).
// Любое ненайденное имя прерывает операцию целиком.
func ResolveRotation(catalog []domain.Service, names [][]string) ([][]domain.Service, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: rotation is empty", ErrInvalidPackage)
	}

	index := make(map[string]domain.Service, len(catalog))
	for _, s := range catalog {
		index[normalizeName(s.Name)] = s
	}

	rotation := make([][]domain.Service, 0, len(names))
	for i, session := range names {
		if len(session) == 0 {
			return nil, fmt.Errorf("%w: rotation entry %d has no services", ErrInvalidPackage, i+1)
		}
		services := make([]domain.Service, 0, len(session))
		for _, name := range session {
			s, ok := index[normalizeName(name)]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnresolvedService, name)
			}
			services = append(services, s)
		}
		rotation = append(rotation, services)
	}
	return rotation, nil
}

// SessionPrice цена одной сессии при общей цене пакета
func SessionPrice(total float64) float64 {
	return total / domain.PackageSessions
}

// priceSession копирует услуги сессии и распределяет цену так, чтобы сумма сессии была равна price.
// Одна услуга получает ровно price; при нескольких остаток в копейках уходит первой услуге.
func priceSession(services []domain.Service, price float64) []domain.Service {
	out := make([]domain.Service, len(services))
	copy(out, services)

	if len(out) == 1 {
		out[0].Value = price
		return out
	}

	cents := int64(math.Round(price * 100))
	base := cents / int64(len(out))
	remainder := cents - base*int64(len(out))
	for i := range out {
		share := base
		if i == 0 {
			share += remainder
		}
		out[i].Value = float64(share) / 100
	}
	return out
}

func validateInput(firstDate time.Time, price float64, rotation [][]domain.Service) error {
	if firstDate.IsZero() {
		return fmt.Errorf("%w: first date is required", ErrInvalidPackage)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price per session must be a non-negative number", ErrInvalidPackage)
	}
	if len(rotation) == 0 {
		return fmt.Errorf("%w: rotation is empty", ErrInvalidPackage)
	}
	for i, session := range rotation {
		if len(session) == 0 {
			return fmt.Errorf("%w: rotation entry %d has no services", ErrInvalidPackage, i+1)
		}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
