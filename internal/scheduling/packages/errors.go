package packages

import (
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidPackage некорректные параметры пакета (пустая ротация, отрицательная цена)
	ErrInvalidPackage = fmt.Errorf("packages: %w", domain.ErrValidation)

	// ErrUnresolvedService услуга ротации не найдена в активном каталоге
	ErrUnresolvedService = fmt.Errorf("packages: %w", domain.ErrUnresolvedReference)
)
