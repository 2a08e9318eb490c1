package lifecycle

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidAppointment запись не прошла проверку обязательных полей
	ErrInvalidAppointment = fmt.Errorf("lifecycle: %w", domain.ErrValidation)

	// ErrInvalidTransition переход не разрешен из текущего статуса
	ErrInvalidTransition = errors.New("lifecycle: invalid status transition")

	// ErrCompletionRequired перенос в прошлое: вызывающий должен получить решение об оплате и вызвать CompleteMove
	ErrCompletionRequired = errors.New("lifecycle: appointment moved to the past must be completed")

	// ErrPaymentRequired завершение без решения об оплате
	ErrPaymentRequired = fmt.Errorf("lifecycle: payment status is required to complete: %w", domain.ErrValidation)
)
