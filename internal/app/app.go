package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/sweetcrumb/cakeshop/config"
	"github.com/sweetcrumb/cakeshop/internal/adapter/cocktaildb"
	"github.com/sweetcrumb/cakeshop/internal/adapter/httphandler"
	"github.com/sweetcrumb/cakeshop/internal/adapter/kafka"
	"github.com/sweetcrumb/cakeshop/internal/adapter/testimonials"
	"github.com/sweetcrumb/cakeshop/internal/core/service"
	"github.com/sweetcrumb/cakeshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

// A toastNotifier is the server-side stand-in for the storefront toast.
type toastNotifier struct{}

func (toastNotifier) Notify(message string) {
	slog.Info("notification", "message", message)
}

type App struct {
	ctx context.Context
	cfg config.Config

	eventSerde     schema.Serde
	eventsProducer kafka.ClientEventsProducer

	catalog *service.Catalog
	cart    *service.Cart
	rotator *service.Rotator
	search  *service.Search

	popularityProc *kafka.PopularityProcessor
	popularityView kafka.PopularityView

	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerde()
	app.initEventsProducer()
	app.initCoreServices()
	app.initPopularity()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ClientEvents + "-value"
	eventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsProducer = producer
}

func (app *App) initCoreServices() {
	catalogClient := cocktaildb.New(cocktaildb.Config{
		ListURL:   app.cfg.Catalog.ListURL,
		DetailURL: app.cfg.Catalog.DetailURL,
		Limit:     app.cfg.Catalog.Limit,
	})
	testimonialsClient := testimonials.New(testimonials.Config{
		UsersURL:  app.cfg.Testimonials.UsersURL,
		QuotesURL: app.cfg.Testimonials.QuotesURL,
	})

	app.catalog = service.NewCatalog(
		catalogClient,
		app.eventsProducer,
		app.cfg.Catalog.PageSize,
		app.cfg.Catalog.PageIncrement,
	)
	app.cart = service.NewCart(app.catalog, toastNotifier{}, app.eventsProducer)
	app.rotator = service.NewRotator(
		testimonialsClient, app.cfg.Testimonials.RotateInterval,
	)
	app.search = service.NewSearch(
		app.catalog, app.eventsProducer, app.cfg.Search.Debounce,
	)
}

func (app *App) initPopularity() {
	const op = "App.initPopularity"

	proc, err := kafka.NewPopularityProcessor(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.ClientEvents,
		app.cfg.Broker.Topics.PopularityGroupTable,
		app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewPopularityView(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.PopularityGroupTable,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.popularityProc = proc
	app.popularityView = view
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterSearch(mux, app.search)
	httphandler.RegisterCart(mux, app.cart)
	httphandler.RegisterTestimonials(mux, app.rotator)
	httphandler.RegisterPopularity(mux, app.popularityView)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

// Run starts the HTTP server and the popularity processor, then loads
// the catalog and testimonial data concurrently. Each load has its own
// fallback, so the join never fails.
func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	var procWg sync.WaitGroup
	procWg.Add(1)
	go app.popularityProc.Run(app.ctx, &procWg)
	procWg.Wait()

	go app.popularityView.Run(app.ctx)

	go app.loadData()

	slog.Info("application is running")
}

func (app *App) loadData() {
	const op = "App.loadData"
	log := slog.With("op", op)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.catalog.Load(app.ctx); err != nil {
			log.Error("failed to load catalog", "err", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.rotator.Load(app.ctx); err != nil {
			log.Error("failed to load testimonials", "err", err)
		}
	}()
	wg.Wait()

	log.Info("storefront data is loaded")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.rotator.Close()
	app.search.Close()
	app.popularityProc.Close()
	app.eventsProducer.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
