package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition возвращается, когда действие недопустимо в текущем статусе
	ErrInvalidTransition = errors.New("action is not allowed in the current status")

	// ErrPaymentRequired возвращается, когда завершение записи не содержит статуса оплаты
	ErrPaymentRequired = errors.New("payment status is required to complete an appointment")

	// ErrNotRecognized возвращается, когда сумма на изображении не распознана
	ErrNotRecognized = errors.New("payment value was not recognized")

	// ErrInferenceUnavailable возвращается, когда сервис распознавания недоступен
	ErrInferenceUnavailable = errors.New("inference service is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
