package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"boothreserve/pkg/clock"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledProducer never reads its input, like a producer stuck behind an unreachable broker
type stalledProducer struct {
	sarama.AsyncProducer
	input     chan *sarama.ProducerMessage
	successes chan *sarama.ProducerMessage
	errors    chan *sarama.ProducerError
}

func newStalledProducer() *stalledProducer {
	return &stalledProducer{
		input:     make(chan *sarama.ProducerMessage),
		successes: make(chan *sarama.ProducerMessage),
		errors:    make(chan *sarama.ProducerError),
	}
}

func (p *stalledProducer) Input() chan<- *sarama.ProducerMessage      { return p.input }
func (p *stalledProducer) Successes() <-chan *sarama.ProducerMessage { return p.successes }
func (p *stalledProducer) Errors() <-chan *sarama.ProducerError      { return p.errors }

func (p *stalledProducer) AsyncClose() {
	close(p.successes)
	close(p.errors)
}

func TestKafkaProducer_Publish(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	ap := mocks.NewAsyncProducer(t, newSaramaConfig(cfg))
	r := heldReservation()

	ap.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		val, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event ReservationEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if string(key) != r.ID.String() || event.ReservationID != r.ID || event.Type != TypeReservationHeld {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	kp := newKafkaProducer(ap, cfg)
	require.NoError(t, kp.Publish(context.Background(), NewEventBuilder(t0).ForReservation(r).Build()))
	require.NoError(t, kp.Close())
	assert.Equal(t, int64(1), kp.delivered.Load())
	assert.Equal(t, int64(0), kp.failed.Load())
}

func TestKafkaProducer_DeliveryFailureIsNotReturned(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	ap := mocks.NewAsyncProducer(t, newSaramaConfig(cfg))
	ap.ExpectInputAndFail(sarama.ErrNotLeaderForPartition)

	kp := newKafkaProducer(ap, cfg)
	err := kp.Publish(context.Background(), NewEventBuilder(t0).ForReservation(heldReservation()).Build())
	assert.NoError(t, err)
	require.NoError(t, kp.Close())
	assert.Equal(t, int64(1), kp.failed.Load())
}

func TestKafkaProducer_DropsWhenBrokerStalls(t *testing.T) {
	kp := newKafkaProducer(newStalledProducer(), DefaultKafkaProducerConfig())

	started := time.Now()
	err := kp.Publish(context.Background(), NewEventBuilder(t0).ForReservation(heldReservation()).Build())
	assert.ErrorIs(t, err, ErrPublishQueueFull)
	assert.Less(t, time.Since(started), time.Second)

	require.NoError(t, kp.Close())
	assert.Equal(t, int64(1), kp.failed.Load())
}

func TestKafkaProducer_PublishAfterClose(t *testing.T) {
	cfg := DefaultKafkaProducerConfig()
	kp := newKafkaProducer(mocks.NewAsyncProducer(t, newSaramaConfig(cfg)), cfg)
	require.NoError(t, kp.Close())
	require.NoError(t, kp.Close())

	err := kp.Publish(context.Background(), NewEventBuilder(t0).ForReservation(heldReservation()).Build())
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestKafkaNotifier_StalledBrokerDoesNotBlock(t *testing.T) {
	n := NewKafkaNotifier(newKafkaProducer(newStalledProducer(), DefaultKafkaProducerConfig()), clock.NewFixed(t0))

	started := time.Now()
	err := n.Notify(context.Background(), heldReservation())
	assert.ErrorIs(t, err, ErrPublishQueueFull)
	assert.Less(t, time.Since(started), time.Second)
	require.NoError(t, n.Close())
}

func TestCreateHeaders(t *testing.T) {
	event := NewEventBuilder(t0).ForReservation(heldReservation()).Build()

	headers := map[string]string{}
	for _, h := range createHeaders(event) {
		headers[string(h.Key)] = string(h.Value)
	}

	assert.Equal(t, "reservation.held", headers["message_type"])
	assert.Equal(t, "spring-market", headers["event_id"])
	assert.Equal(t, "held", headers["status"])
	assert.Equal(t, "2026-06-03T09:00:00Z", headers["hold_expires_at"])

	event.HoldExpiresAt = nil
	for _, h := range createHeaders(event) {
		assert.NotEqual(t, "hold_expires_at", string(h.Key))
	}
}

func TestNewSaramaConfig(t *testing.T) {
	cfg := newSaramaConfig(DefaultKafkaProducerConfig())
	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.Equal(t, 256, cfg.ChannelBufferSize)
	assert.NoError(t, cfg.Validate())
}
