package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// RedisClient часть клиента go-redis, нужная для публикации
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события жизненного цикла записей в Redis pub/sub
// Доставка уведомлений клиенту выполняется подписчиками канала
type Publisher struct {
	client  RedisClient
	channel string
	timeout time.Duration
	log     Logger
}

// NewPublisher создает издателя событий
func NewPublisher(client RedisClient, channel string, log Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		timeout: 2 * time.Second,
		log:     log,
	}
}

// Publish публикует событие и возвращает ошибку публикации
func (p *Publisher) Publish(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(toMessage(ev, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("%w: appointment id=%d: %v", ErrEncode, ev.Appointment.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrPublish, p.channel, err)
	}
	return nil
}

// Notify публикует события в режиме fire-and-forget: ошибки только логируются
func (p *Publisher) Notify(ctx context.Context, events ...domain.Event) {
	for _, ev := range events {
		if err := p.Publish(ctx, ev); err != nil {
			p.log.Error("Notifier: event %s for appointment id=%d not delivered: %v", ev.Kind, ev.Appointment.ID, err)
			continue
		}
		p.log.Info("Notifier: published %s for appointment id=%d", ev.Kind, ev.Appointment.ID)
	}
}

// Nop издатель-заглушка для запуска без Redis
type Nop struct{}

// Notify ничего не делает
func (Nop) Notify(context.Context, ...domain.Event) {}
