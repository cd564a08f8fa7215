package hub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/config"
	"github.com/enbility/telemetry-go/generator"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/registry"
	"github.com/enbility/telemetry-go/sink"
	"github.com/enbility/telemetry-go/store"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/metric"
)

type Option func(*Hub)

// WithMeterProvider sets the provider of the hub counters, defaults to the global provider
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(h *Hub) {
		h.meterProvider = mp
	}
}

// WithClock replaces time.Now for event timestamps
func WithClock(clock func() time.Time) Option {
	return func(h *Hub) {
		h.clock = clock
	}
}

// WithGeneratorOptions are passed on to the reading generator
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(h *Hub) {
		h.generatorOptions = append(h.generatorOptions, opts...)
	}
}

// The process wide telemetry service
//
// Owns the reading store, the subscription registry, the generator and all
// websocket sessions. Readings and events flow through the hub to the
// subscribed connections and to the external sink.
type Hub struct {
	cfg *config.Config

	catalog api.DeviceCatalogInterface
	sink    api.ReadingSinkInterface

	store      *store.ReadingStore
	aggregator *store.Aggregator
	registry   *registry.Registry
	generator  *generator.Generator

	metrics          *hubMetrics
	meterProvider    metric.MeterProvider
	generatorOptions []generator.Option
	clock            func() time.Time

	// all open websocket sessions, by connection id
	sessions       map[string]*session
	sessionsClosed bool

	// The web server for handling incoming websocket connections and REST requests
	httpServer *http.Server
	listener   net.Listener

	hasStarted  bool
	hasShutdown bool

	muxSessions sync.Mutex
	muxStarted  sync.Mutex
}

var _ api.HubInterface = (*Hub)(nil)

// NewHub creates the service, a nil sink disables forwarding
func NewHub(cfg *config.Config, catalog api.DeviceCatalogInterface, readingSink api.ReadingSinkInterface, opts ...Option) *Hub {
	if readingSink == nil {
		readingSink = sink.NewNoopSink()
	}

	h := &Hub{
		cfg:      cfg,
		catalog:  catalog,
		sink:     readingSink,
		store:    store.NewReadingStore(cfg.Store.HistoryCapacity),
		registry: registry.NewRegistry(),
		clock:    time.Now,
		sessions: make(map[string]*session),
	}

	for _, opt := range opts {
		opt(h)
	}

	h.aggregator = store.NewAggregator(h.store)
	h.metrics = newHubMetrics(h.meterProvider)

	generatorOpts := []generator.Option{
		generator.WithInterval(cfg.Generator.Interval),
		generator.WithFailureHandler(h.synthesisFailed),
	}
	generatorOpts = append(generatorOpts, h.generatorOptions...)
	h.generator = generator.NewGenerator(catalog, h, generatorOpts...)

	return h
}

// Registry returns the subscription registry
func (h *Hub) Registry() *registry.Registry {
	return h.registry
}

// Generator returns the reading generator
func (h *Hub) Generator() *generator.Generator {
	return h.generator
}

// Addr returns the address the server listens on, nil if not started
func (h *Hub) Addr() net.Addr {
	h.muxStarted.Lock()
	defer h.muxStarted.Unlock()

	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// Start the http server and the generator
//
// The generator stops when ctx is canceled, the server only stops on Shutdown.
func (h *Hub) Start(ctx context.Context) error {
	h.muxStarted.Lock()
	defer h.muxStarted.Unlock()

	if h.hasStarted {
		return api.ErrAlreadyRunning
	}

	if err := h.startServer(); err != nil {
		return err
	}

	if h.cfg.Generator.IsEnabled() {
		if err := h.generator.Start(ctx); err != nil {
			logging.Log().Debug("error during generator starting:", err)
		}
	}

	h.hasStarted = true

	return nil
}

// start the websocket and REST server
func (h *Hub) startServer() error {
	addr := fmt.Sprintf(":%d", h.cfg.Server.Port)
	logging.Log().Debug("starting server on", addr)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	h.listener = listener
	h.httpServer = &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: time.Duration(time.Second * 10),
	}

	go func() {
		if err := h.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log().Error("server error:", err)
		}
	}()

	return nil
}

// Shutdown stops the generator, closes all sessions, the server and the sink
//
// Calling it more than once has no effect.
func (h *Hub) Shutdown() {
	h.muxStarted.Lock()
	if h.hasShutdown {
		h.muxStarted.Unlock()
		return
	}
	h.hasShutdown = true
	server := h.httpServer
	h.muxStarted.Unlock()

	h.generator.Stop()

	h.closeAllSessions(websocket.CloseGoingAway, "server shutdown")

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logging.Log().Error("HTTP server shutdown:", err)
		}
	}

	h.sink.Close()
}

func (h *Hub) synthesisFailed(deviceID string, err error) {
	h.metrics.synthesisFailed(deviceID)
}
