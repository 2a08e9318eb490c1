package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

const channel = "salon:appointments:events"

func event(kind domain.EventKind) domain.Event {
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	paid := domain.PaymentPaid
	return domain.Event{
		Kind: kind,
		Appointment: domain.Appointment{
			ID:                   42,
			ClientName:           "Maria",
			ClientPhone:          "11987654321",
			ProfessionalUsername: "ana",
			Services:             []domain.Service{{Name: "Corte", Value: 50, DurationMinutes: 30}},
			DateTime:             start,
			EndTime:              start.Add(30 * time.Minute),
			Status:               domain.StatusCompleted,
			PaymentStatus:        &paid,
		},
	}
}

func TestPublisher_PublishesJSONEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	p := NewPublisher(client, channel, logger.Nop())
	p.Notify(ctx, event(domain.EventCreated))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, channel, msg.Channel)

	var decoded EventMessage
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &decoded))
	assert.Equal(t, "created", decoded.Kind)
	assert.Equal(t, int64(42), decoded.Appointment.ID)
	assert.Equal(t, "completed", decoded.Appointment.Status)
	require.NotNil(t, decoded.Appointment.PaymentStatus)
	assert.Equal(t, "paid", *decoded.Appointment.PaymentStatus)
	assert.Nil(t, decoded.Appointment.PackageID)
}

func TestPublisher_FailureIsNotPropagated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	p := NewPublisher(client, channel, logger.Nop())

	err := p.Publish(context.Background(), event(domain.EventCancelled))
	assert.ErrorIs(t, err, ErrPublish)

	assert.NotPanics(t, func() {
		p.Notify(context.Background(), event(domain.EventCancelled), event(domain.EventUpdated))
	})
}
