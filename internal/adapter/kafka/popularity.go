package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/schema"
)

var _ port.ClientEventsProcessor = (*PopularityProcessor)(nil)
var _ port.PopularityReader = (*PopularityView)(nil)

// A clientEventCodec used for serde [schema.ClientEventV1]
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A tally is the add-to-cart counter persisted per product id.
type tally int64

// A tallyCodec used for serde [tally]
type tallyCodec struct{}

func (tallyCodec) Encode(v any) ([]byte, error) {
	const op = "tallyCodec.Encode"
	t, ok := v.(tally)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(t), 10), nil
}

func (tallyCodec) Decode(data []byte) (any, error) {
	const op = "tallyCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return tally(n), nil
}

// A PopularityProcessor tallies add-to-cart events from the client
// events stream into the popularity group table, keyed by product id.
type PopularityProcessor struct {
	gp *goka.Processor
}

func NewPopularityProcessor(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	eventSerde Serde,
) (*PopularityProcessor, error) {
	const op = "NewPopularityProcessor"

	var p PopularityProcessor

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newClientEventCodec(eventSerde),
			p.processFn,
		),
		goka.Persist(tallyCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.gp = gp
	return &p, nil
}

func (p *PopularityProcessor) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "PopularityProcessor.Run"
	log := slog.With("op", op)

	defer wg.Done()

	go p.run(ctx)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *PopularityProcessor) Close() {
	const op = "PopularityProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p *PopularityProcessor) run(ctx context.Context) {
	const op = "PopularityProcessor.run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *PopularityProcessor) waitForReady(ctx context.Context) {
	const op = "PopularityProcessor.waitForReady"
	log := slog.With("op", op)

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *PopularityProcessor) processFn(ctx goka.Context, msg any) {
	const op = "PopularityProcessor.processFn"
	log := slog.With("op", op)

	evt, _ := msg.(schema.ClientEventV1)
	if evt.EventType != string(domain.EventAddToCart) {
		return
	}

	var n tally
	if v := ctx.Value(); v != nil {
		n, _ = v.(tally)
	}
	n++
	ctx.SetValue(n)
	log.Info("tally updated", "productID", evt.ProductID, "count", int64(n))
}

// A PopularityView reads the popularity group table.
type PopularityView struct {
	gv *goka.View
}

func NewPopularityView(
	seedBrokers []string, groupTable string,
) (PopularityView, error) {
	const op = "NewPopularityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		tallyCodec{},
	)
	if err != nil {
		return PopularityView{}, opErr(err, op)
	}

	return PopularityView{gv}, nil
}

func (v PopularityView) Run(ctx context.Context) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v PopularityView) AddToCartCount(productID string) (int64, error) {
	const op = "PopularityView.AddToCartCount"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	t, ok := val.(tally)
	if !ok {
		return 0, opErr(fmt.Errorf("unexpected type %T", val), op)
	}
	return int64(t), nil
}
