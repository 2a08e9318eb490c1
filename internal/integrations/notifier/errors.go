package notifier

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось опубликовать
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrEncode возвращается, когда событие не удалось сериализовать
	ErrEncode = errors.New("notifier: failed to encode event")
)
