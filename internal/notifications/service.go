package notifications

import (
	"context"
	"log/slog"

	"boothreserve/internal/reservations"
	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"
)

// KafkaNotifier turns committed reservation writes into published events
type KafkaNotifier struct {
	producer Producer
	clk      clock.Clock
}

func NewKafkaNotifier(producer Producer, clk clock.Clock) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, clk: clk}
}

func (n *KafkaNotifier) Notify(ctx context.Context, r *reservations.Reservation) error {
	event := NewEventBuilder(n.clk.Now()).ForReservation(r).Build()
	return n.producer.Publish(ctx, event)
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}

// LogNotifier writes reservation events to the log. Used when Kafka is disabled.
type LogNotifier struct {
	clk clock.Clock
	log *logger.Logger
}

func NewLogNotifier(clk clock.Clock) *LogNotifier {
	return &LogNotifier{
		clk: clk,
		log: logger.GetDefault().WithComponent("notifications"),
	}
}

func (n *LogNotifier) Notify(ctx context.Context, r *reservations.Reservation) error {
	event := NewEventBuilder(n.clk.Now()).ForReservation(r).Build()
	n.log.InfoContext(ctx, "Reservation event",
		slog.String("type", string(event.Type)),
		slog.String("reservation_id", event.ReservationID.String()),
		slog.String("event_id", event.EventID),
		slog.Int("booth_id", event.BoothID),
		slog.String("status", string(event.Status)),
		slog.String("vendor_email", event.VendorEmail),
	)
	return nil
}

var (
	_ reservations.Notifier = (*KafkaNotifier)(nil)
	_ reservations.Notifier = (*LogNotifier)(nil)
)
