package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"boothreserve/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes reservation events
type Producer interface {
	Publish(ctx context.Context, event *ReservationEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
	QueueSize        int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "booth-reservations",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
		QueueSize:        256,
	}
}

// newSaramaConfig translates the producer settings into a sarama config
func newSaramaConfig(cfg *KafkaProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = cfg.RequiredAcks
	saramaConfig.Producer.Compression = cfg.CompressionType
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout
	saramaConfig.Producer.Idempotent = cfg.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	if cfg.QueueSize > 0 {
		saramaConfig.ChannelBufferSize = cfg.QueueSize
	}

	// Idempotent producers require a single in-flight request
	if cfg.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash on the reservation id so one reservation's messages stay ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	return saramaConfig
}

// ErrPublishQueueFull means the producer's input buffer is full and the event was dropped
var ErrPublishQueueFull = errors.New("kafka publish queue is full")

// ErrProducerClosed is returned by Publish after Close
var ErrProducerClosed = errors.New("kafka producer is closed")

// KafkaProducer publishes reservation events to a Kafka topic. Publish only
// enqueues; delivery results are read from the producer in the background.
type KafkaProducer struct {
	producer sarama.AsyncProducer
	config   *KafkaProducerConfig
	log      *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	delivered atomic.Int64
	failed    atomic.Int64
}

// NewKafkaProducer connects to the brokers and creates an asynchronous producer
func NewKafkaProducer(cfg *KafkaProducerConfig) (*KafkaProducer, error) {
	if cfg == nil {
		cfg = DefaultKafkaProducerConfig()
	}

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	kp := newKafkaProducer(producer, cfg)
	kp.log.Info("Kafka producer created", slog.Any("brokers", cfg.Brokers), slog.String("topic", cfg.Topic))
	return kp, nil
}

func newKafkaProducer(producer sarama.AsyncProducer, cfg *KafkaProducerConfig) *KafkaProducer {
	kp := &KafkaProducer{
		producer: producer,
		config:   cfg,
		log:      logger.GetDefault().WithComponent("notifications"),
	}

	kp.wg.Add(2)
	go kp.handleSuccesses()
	go kp.handleErrors()
	return kp
}

// Publish enqueues one event, keyed by reservation id. It never waits for
// the broker: when the input buffer is full the event is dropped.
func (kp *KafkaProducer) Publish(_ context.Context, event *ReservationEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal reservation event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   createHeaders(event),
		Timestamp: event.OccurredAt,
		Metadata:  event,
	}

	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if kp.closed {
		return ErrProducerClosed
	}

	select {
	case kp.producer.Input() <- message:
		return nil
	default:
		kp.failed.Add(1)
		return fmt.Errorf("reservation event %s dropped: %w", event.ReservationID, ErrPublishQueueFull)
	}
}

func (kp *KafkaProducer) handleSuccesses() {
	defer kp.wg.Done()
	for msg := range kp.producer.Successes() {
		kp.delivered.Add(1)
		if event, ok := msg.Metadata.(*ReservationEvent); ok {
			kp.log.Debug("Reservation event published",
				slog.String("topic", msg.Topic),
				slog.Int("partition", int(msg.Partition)),
				slog.Int64("offset", msg.Offset),
				slog.String("type", string(event.Type)),
				slog.String("reservation_id", event.ReservationID.String()),
			)
		}
	}
}

func (kp *KafkaProducer) handleErrors() {
	defer kp.wg.Done()
	for perr := range kp.producer.Errors() {
		kp.failed.Add(1)
		reservationID := ""
		if perr.Msg != nil {
			if event, ok := perr.Msg.Metadata.(*ReservationEvent); ok {
				reservationID = event.ReservationID.String()
			}
		}
		kp.log.LogNotificationFailed(context.Background(), reservationID, perr.Err)
	}
}

// createHeaders creates Kafka headers for a reservation event
func createHeaders(event *ReservationEvent) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(event.ID.String())},
		{Key: []byte("message_type"), Value: []byte(event.Type)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
		{Key: []byte("status"), Value: []byte(event.Status)},
		{Key: []byte("version"), Value: []byte(event.Version)},
		{Key: []byte("producer"), Value: []byte("boothreserve")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}

	if event.HoldExpiresAt != nil {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte("hold_expires_at"),
			Value: []byte(event.HoldExpiresAt.Format(time.RFC3339)),
		})
	}

	return headers
}

// Close stops accepting events, flushes what is buffered and waits for the
// delivery results to be drained
func (kp *KafkaProducer) Close() error {
	kp.mu.Lock()
	if kp.closed {
		kp.mu.Unlock()
		return nil
	}
	kp.closed = true
	kp.mu.Unlock()

	kp.producer.AsyncClose()
	kp.wg.Wait()
	kp.log.Info("Kafka producer closed",
		slog.Int64("delivered", kp.delivered.Load()),
		slog.Int64("failed", kp.failed.Load()),
	)
	return nil
}

var _ Producer = (*KafkaProducer)(nil)
