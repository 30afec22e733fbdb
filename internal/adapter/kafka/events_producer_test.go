package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (m *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *MockProducerClient) Close() {
	m.Called()
}

type jsonishEncoder struct {
	err error
}

func (e jsonishEncoder) Encode(any) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte("encoded"), nil
}

func mockClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		opts.cl = cl
		return nil
	}
}

func okResults() kgo.ProduceResults {
	return kgo.ProduceResults{{Record: &kgo.Record{}}}
}

func TestNewClientEventsProducer(t *testing.T) {
	t.Run("TooFewOptsPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewClientEventsProducer(mockClientOpt(nil))
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewClientEventsProducer(
			mockClientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(nil),
		)
		require.Error(t, err)
	})
}

func TestProduceEvent(t *testing.T) {
	evt := domain.ClientEvent{
		EventID:     "e-1",
		Type:        domain.EventAddToCart,
		ProductID:   "p1",
		ProductName: "Sunset Cake",
		Quantity:    1,
	}

	t.Run("KeyedByProductID", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On(
			"ProduceSync", mock.Anything,
			mock.MatchedBy(func(rs []*kgo.Record) bool {
				return len(rs) == 1 && string(rs[0].Key) == "p1"
			}),
		).Return(okResults())

		p, err := NewClientEventsProducer(
			mockClientOpt(cl), ProducerEncoderOpt(jsonishEncoder{}),
		)
		require.NoError(t, err)

		require.NoError(t, p.ProduceEvent(t.Context(), evt))
		cl.AssertExpectations(t)
	})

	t.Run("FallsBackToEventIDKey", func(t *testing.T) {
		searchEvt := domain.ClientEvent{
			EventID: "e-2",
			Type:    domain.EventSearch,
			Query:   "cake",
		}

		cl := new(MockProducerClient)
		cl.On(
			"ProduceSync", mock.Anything,
			mock.MatchedBy(func(rs []*kgo.Record) bool {
				return len(rs) == 1 && string(rs[0].Key) == "e-2"
			}),
		).Return(okResults())

		p, err := NewClientEventsProducer(
			mockClientOpt(cl), ProducerEncoderOpt(jsonishEncoder{}),
		)
		require.NoError(t, err)

		require.NoError(t, p.ProduceEvent(t.Context(), searchEvt))
		cl.AssertExpectations(t)
	})

	t.Run("EncodeError", func(t *testing.T) {
		encodeErr := errors.New("bad value")

		p, err := NewClientEventsProducer(
			mockClientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(jsonishEncoder{err: encodeErr}),
		)
		require.NoError(t, err)

		err = p.ProduceEvent(t.Context(), evt)
		require.Error(t, err)
		assert.ErrorIs(t, err, encodeErr)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		p, err := NewClientEventsProducer(
			mockClientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(jsonishEncoder{}),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err = p.ProduceEvent(ctx, evt)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClientEventToSchemaV1(t *testing.T) {
	evt := domain.ClientEvent{
		EventID:     "e-1",
		Type:        domain.EventAddToCart,
		ProductID:   "p1",
		ProductName: "Sunset Cake",
		Category:    domain.CategoryChocolate,
		Quantity:    2,
		UnixMs:      1750000000000,
	}

	s := clientEventToSchemaV1(evt)

	assert.Equal(t, "e-1", s.EventID)
	assert.Equal(t, "add_to_cart", s.EventType)
	assert.Equal(t, "p1", s.ProductID)
	assert.Equal(t, "Sunset Cake", s.ProductName)
	assert.Equal(t, "chocolate", s.Category)
	assert.Equal(t, int64(2), s.Quantity)
	assert.Equal(t, int64(1750000000000), s.UnixMs)
}
