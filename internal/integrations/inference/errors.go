package inference

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("inference client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("inference client: invalid response")

	// ErrNotRecognized возвращается, когда сервис не смог извлечь данные из входа
	ErrNotRecognized = errors.New("inference client: input not recognized")

	// ErrServiceUnavailable возвращается при недоступности сервиса (сеть, таймаут, 5xx)
	ErrServiceUnavailable = errors.New("inference client: service unavailable")
)
