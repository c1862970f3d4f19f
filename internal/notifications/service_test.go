package notifications

import (
	"context"
	"errors"
	"testing"

	"boothreserve/internal/reservations"
	"boothreserve/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, event *ReservationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	return m.Called().Error(0)
}

func TestKafkaNotifier_Notify(t *testing.T) {
	producer := &MockProducer{}
	r := heldReservation()
	r.Status = reservations.StatusExpired

	producer.On("Publish", mock.Anything, mock.MatchedBy(func(e *ReservationEvent) bool {
		return e.Type == TypeReservationExpired && e.GetPartitionKey() == r.ID.String() && e.OccurredAt.Equal(t0)
	})).Return(nil).Once()

	n := NewKafkaNotifier(producer, clock.NewFixed(t0))
	assert.NoError(t, n.Notify(context.Background(), r))
	producer.AssertExpectations(t)
}

func TestKafkaNotifier_PropagatesFailure(t *testing.T) {
	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	producer.On("Close").Return(nil)

	n := NewKafkaNotifier(producer, clock.NewFixed(t0))
	assert.EqualError(t, n.Notify(context.Background(), heldReservation()), "broker down")
	assert.NoError(t, n.Close())
}

func TestLogNotifier_Notify(t *testing.T) {
	n := NewLogNotifier(clock.NewFixed(t0))
	assert.NoError(t, n.Notify(context.Background(), heldReservation()))
}
