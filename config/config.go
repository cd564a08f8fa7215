package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/fuda"
	"github.com/enbility/telemetry-go/catalog"
	"github.com/enbility/telemetry-go/model"
)

// Config holds the complete service configuration
//
// Values are read from YAML or JSON, environment variables override file
// values and struct tag defaults fill everything left empty.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
	Store     StoreConfig     `yaml:"store"`
	Alerts    AlertConfig     `yaml:"alerts"`
	Sink      SinkConfig      `yaml:"sink"`
	Mdns      MdnsConfig      `yaml:"mdns"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// Devices replaces the built-in device catalog when not empty
	Devices []DeviceConfig `yaml:"devices,omitempty"`
}

type ServerConfig struct {
	Port int `yaml:"port" env:"TELEMETRY_PORT" default:"8080" validate:"gt=0,lte=65535"`

	// the path of the websocket endpoint
	WebsocketPath string `yaml:"websocketPath" default:"/ws"`

	// the number of encoded messages queued per connection before it is considered stalled
	SendQueueSize int `yaml:"sendQueueSize" default:"256" validate:"gt=0"`

	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s" validate:"gt=0"`
}

type GeneratorConfig struct {
	Enabled *bool `yaml:"enabled" env:"TELEMETRY_GENERATOR_ENABLED" default:"true"`

	Interval time.Duration `yaml:"interval" env:"TELEMETRY_TICK_INTERVAL" default:"5s" validate:"gt=0"`
}

// IsEnabled returns true if readings are synthesized periodically
func (c GeneratorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

type StoreConfig struct {
	// the number of readings kept per device
	HistoryCapacity int `yaml:"historyCapacity" default:"100" validate:"gt=0"`
}

type AlertConfig struct {
	// consumption readings above this magnitude in kWh raise a warning, 0 disables the check
	ConsumptionThreshold float64 `yaml:"consumptionThreshold" env:"TELEMETRY_ALERT_THRESHOLD" validate:"gte=0"`
}

type SinkConfig struct {
	// the NATS server url, the sink is disabled when empty
	NatsURL string `yaml:"natsUrl" env:"TELEMETRY_NATS_URL"`

	Subject string `yaml:"subject" env:"TELEMETRY_NATS_SUBJECT" default:"telemetry.readings"`

	QueueSize int `yaml:"queueSize" default:"1024" validate:"gt=0"`

	PublishTimeout time.Duration `yaml:"publishTimeout" default:"2s" validate:"gt=0"`
}

// IsEnabled returns true if readings are forwarded to NATS
func (c SinkConfig) IsEnabled() bool {
	return c.NatsURL != ""
}

type MdnsConfig struct {
	Enabled bool `yaml:"enabled" env:"TELEMETRY_MDNS_ENABLED" default:"false"`

	// the announced instance name
	InstanceName string `yaml:"instanceName" default:"telemetry"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"TELEMETRY_LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`

	Format string `yaml:"format" env:"TELEMETRY_LOG_FORMAT" default:"console" validate:"oneof=console json"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"TELEMETRY_METRICS_ENABLED" default:"false"`

	// the export interval of the stdout exporter
	Interval time.Duration `yaml:"interval" default:"60s" validate:"gt=0"`
}

type DeviceConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Status   string `yaml:"status,omitempty"`
	Location string `yaml:"location,omitempty"`
}

// LoadConfig loads the configuration from a YAML or JSON file
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := fuda.LoadFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseConfig parses the configuration from YAML or JSON data
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := fuda.LoadBytes(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration with all defaults and environment overrides applied
func Default() *Config {
	cfg := &Config{}
	_ = fuda.SetDefaults(cfg)
	_ = fuda.LoadEnv(cfg)

	return cfg
}

// Validate checks the values not covered by the struct tag validation
func (c *Config) Validate() error {
	if len(c.Server.WebsocketPath) == 0 || c.Server.WebsocketPath[0] != '/' {
		return fmt.Errorf("websocket path %q must start with /", c.Server.WebsocketPath)
	}

	if _, err := c.DeviceList(); err != nil {
		return err
	}

	return nil
}

// DeviceList returns the configured devices, or the built-in catalog if none are configured
func (c *Config) DeviceList() ([]model.Device, error) {
	if len(c.Devices) == 0 {
		return catalog.DefaultDevices(), nil
	}

	devices := make([]model.Device, 0, len(c.Devices))
	var errs []error

	for i, item := range c.Devices {
		category, err := model.ParseDeviceCategory(item.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("device %d: %w", i, err))
			continue
		}

		status := model.DeviceStatusActive
		if item.Status != "" {
			if status, err = model.ParseDeviceStatus(item.Status); err != nil {
				errs = append(errs, fmt.Errorf("device %d: %w", i, err))
				continue
			}
		}

		devices = append(devices, model.Device{
			ID:       item.ID,
			Name:     item.Name,
			Category: category,
			Status:   status,
			Location: item.Location,
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return devices, nil
}
