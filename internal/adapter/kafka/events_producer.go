package kafka

import (
	"context"
	"log/slog"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

// A ClientEventsProducer publishes storefront interaction events to the
// client events stream.
type ClientEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}
	return ClientEventsProducer{options.cl, options.encoder}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "ClientEventsProducer.ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}

	return nil
}

// createRecord keys product-bound events by product id so the
// popularity processor tallies per product; other events fall back to
// the event id.
func (p ClientEventsProducer) createRecord(
	evt domain.ClientEvent,
) (*kgo.Record, error) {
	const op = "ClientEventsProducer.createRecord"

	s := p.toSchema(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}

	key := s.ProductID
	if key == "" {
		key = s.EventID
	}
	return &kgo.Record{Key: []byte(key), Value: v}, nil
}

func (ClientEventsProducer) toSchema(
	evt domain.ClientEvent,
) schema.ClientEventV1 {
	return clientEventToSchemaV1(evt)
}
