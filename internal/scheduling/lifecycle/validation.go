package lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Validate проверяет обязательные поля записи и согласованность времени с услугами
func Validate(a domain.Appointment) error {
	if a.ClientName == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidAppointment)
	}
	if len(a.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name exceeds %d characters", ErrInvalidAppointment, domain.MaxClientNameLength)
	}
	if len(domain.NormalizePhone(a.ClientPhone)) < domain.MinPhoneDigits {
		return fmt.Errorf("%w: client phone must have at least %d digits", ErrInvalidAppointment, domain.MinPhoneDigits)
	}
	if a.ProfessionalUsername == "" {
		return fmt.Errorf("%w: professional is required", ErrInvalidAppointment)
	}
	if len(a.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidAppointment)
	}
	for i, s := range a.Services {
		if s.Name == "" {
			return fmt.Errorf("%w: service #%d has no name", ErrInvalidAppointment, i+1)
		}
		if s.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service %q duration must be positive", ErrInvalidAppointment, s.Name)
		}
		if s.Value < 0 {
			return fmt.Errorf("%w: service %q value must not be negative", ErrInvalidAppointment, s.Name)
		}
	}
	if a.DateTime.IsZero() {
		return fmt.Errorf("%w: date time is required", ErrInvalidAppointment)
	}
	if !a.EndTime.After(a.DateTime) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidAppointment)
	}
	expected := time.Duration(a.TotalDurationMinutes()) * time.Minute
	if a.EndTime.Sub(a.DateTime) != expected {
		return fmt.Errorf("%w: span %s does not match services duration %s", ErrInvalidAppointment, a.Duration(), expected)
	}
	if a.Observations != nil && len(*a.Observations) > domain.MaxObservationsLength {
		return fmt.Errorf("%w: observations exceed %d characters", ErrInvalidAppointment, domain.MaxObservationsLength)
	}
	if a.IsPackageAppointment != (a.PackageID != nil && *a.PackageID != "") {
		return fmt.Errorf("%w: package id must be set exactly for package appointments", ErrInvalidAppointment)
	}
	if a.Status != "" && !a.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAppointment, a.Status)
	}
	if a.PaymentStatus != nil && !a.PaymentStatus.IsValid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidAppointment, *a.PaymentStatus)
	}
	return nil
}
