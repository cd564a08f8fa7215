// telemetryd simulates a fleet of energy devices and streams their readings,
// status changes and alerts to websocket subscribers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/catalog"
	"github.com/enbility/telemetry-go/config"
	"github.com/enbility/telemetry-go/hub"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/mdns"
	"github.com/enbility/telemetry-go/sink"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string

	flagSet := pflag.NewFlagSet("telemetryd", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a YAML or JSON config file")
	port := flagSet.IntP("port", "p", 0, "port of the websocket and REST server")
	interval := flagSet.Duration("interval", 0, "time between two generated readings per device")
	logLevel := flagSet.String("log-level", "", "log level: trace, debug, info, warn or error")
	natsURL := flagSet.String("nats-url", "", "NATS server readings are forwarded to")
	enableMdns := flagSet.Bool("mdns", false, "announce the websocket endpoint via mDNS")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if flagSet.Changed("port") {
		cfg.Server.Port = *port
	}
	if flagSet.Changed("interval") {
		cfg.Generator.Interval = *interval
	}
	if flagSet.Changed("log-level") {
		cfg.Logging.Level = *logLevel
	}
	if flagSet.Changed("nats-url") {
		cfg.Sink.NatsURL = *natsURL
	}
	if flagSet.Changed("mdns") {
		cfg.Mdns.Enabled = *enableMdns
	}

	logging.SetLogging(logging.NewZerologLogging(os.Stderr, cfg.Logging.Level, cfg.Logging.Format == "console"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		shutdownMetrics, err := setupMetrics(cfg.Metrics.Interval)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		defer shutdownMetrics()
	}

	devices, err := cfg.DeviceList()
	if err != nil {
		return err
	}

	deviceCatalog, err := catalog.NewCatalog(devices)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	readingSink, err := newSink(cfg.Sink)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}

	h := hub.NewHub(cfg, deviceCatalog, readingSink)
	if err := h.Start(ctx); err != nil {
		readingSink.Close()
		return err
	}
	defer h.Shutdown()

	logging.Log().Infof("serving %d devices on %s, websocket path %s", deviceCatalog.Len(), h.Addr(), cfg.Server.WebsocketPath)

	if cfg.Mdns.Enabled {
		announcer := mdns.NewAnnouncer(cfg.Mdns.InstanceName, cfg.Server.Port, cfg.Server.WebsocketPath, deviceCatalog.Len(), nil)
		if err := announcer.Start(); err != nil {
			logging.Log().Warn("mdns announcement failed:", err)
		}
		defer announcer.Shutdown()
	}

	<-ctx.Done()

	logging.Log().Info("shutting down")

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}

	return config.LoadConfig(path)
}

func newSink(cfg config.SinkConfig) (api.ReadingSinkInterface, error) {
	if !cfg.IsEnabled() {
		return sink.NewNoopSink(), nil
	}

	natsSink, err := sink.Connect(cfg.NatsURL, sink.NatsOptions{
		Subject:        cfg.Subject,
		QueueSize:      cfg.QueueSize,
		PublishTimeout: cfg.PublishTimeout,
	})
	if err != nil {
		return nil, err
	}

	logging.Log().Info("forwarding readings to", cfg.NatsURL, "subject", natsSink.Subject())

	return natsSink, nil
}

// install a meter provider exporting the hub counters to stdout
func setupMetrics(interval time.Duration) (func(), error) {
	exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(interval),
		)),
	)
	otel.SetMeterProvider(mp)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := mp.Shutdown(ctx); err != nil {
			logging.Log().Error("metrics shutdown:", err)
		}
	}, nil
}
