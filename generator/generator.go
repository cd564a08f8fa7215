package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
)

// DefaultInterval is the time between two ticks
const DefaultInterval = 5 * time.Second

type State uint

const (
	StateIdle  State = 0 // no tick scheduled
	StateArmed State = 1 // a recurring tick is scheduled
)

func (s State) String() string {
	if s == StateArmed {
		return "armed"
	}
	return "idle"
}

// interface for listing the devices to synthesize readings for
//
// implemented by catalog.Catalog, used by Generator
type DeviceSource interface {
	Devices() []model.Device
}

type Option func(*Generator)

// WithInterval sets the tick interval, values <= 0 are ignored
func WithInterval(interval time.Duration) Option {
	return func(g *Generator) {
		if interval > 0 {
			g.interval = interval
		}
	}
}

// WithClock replaces time.Now for the recurring ticks
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithRand sets the random source
func WithRand(rnd *rand.Rand) Option {
	return func(g *Generator) {
		g.rnd = rnd
	}
}

// WithRule overrides the synthesis rule of a category
func WithRule(category model.DeviceCategory, rule RuleFunc) Option {
	return func(g *Generator) {
		g.rules[category] = rule
	}
}

// WithFailureHandler is invoked for every device whose synthesis failed
func WithFailureHandler(handler func(deviceID string, err error)) Option {
	return func(g *Generator) {
		g.onFailure = handler
	}
}

// Periodically synthesizes one reading per device
type Generator struct {
	devices  DeviceSource
	recorder api.ReadingRecorderInterface

	interval  time.Duration
	clock     func() time.Time
	rules     map[model.DeviceCategory]RuleFunc
	onFailure func(deviceID string, err error)

	rnd     *rand.Rand
	muxRand sync.Mutex

	state  State
	cancel context.CancelFunc
	done   chan struct{}

	mux sync.Mutex
}

func NewGenerator(devices DeviceSource, recorder api.ReadingRecorderInterface, opts ...Option) *Generator {
	g := &Generator{
		devices:  devices,
		recorder: recorder,
		interval: DefaultInterval,
		clock:    time.Now,
		rules:    DefaultRules(),
		// #nosec G404
		rnd:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		state: StateIdle,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Interval returns the configured tick interval
func (g *Generator) Interval() time.Duration {
	return g.interval
}

// State returns if a recurring tick is scheduled
func (g *Generator) State() State {
	g.mux.Lock()
	defer g.mux.Unlock()

	return g.state
}

// Start arms the recurring tick
//
// The schedule runs until Stop is called or ctx is done.
func (g *Generator) Start(ctx context.Context) error {
	g.mux.Lock()
	defer g.mux.Unlock()

	if g.state == StateArmed {
		return api.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})
	g.state = StateArmed

	go g.run(ctx, g.done)

	logging.Log().Debug("generator armed with interval", g.interval)

	return nil
}

func (g *Generator) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(g.interval)
	defer func() {
		ticker.Stop()

		g.mux.Lock()
		// only reset if no newer schedule replaced this one
		if g.done == done {
			g.state = StateIdle
		}
		g.mux.Unlock()

		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Tick(g.clock())
		}
	}
}

// Stop cancels the recurring tick and waits for a running tick to finish
//
// Stopping an idle generator is a no-op
func (g *Generator) Stop() {
	g.mux.Lock()
	cancel, done := g.cancel, g.done
	g.cancel = nil
	g.mux.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	logging.Log().Debug("generator stopped")
}

// Tick synthesizes and records one reading for every device
//
// A failing device is logged and skipped, returns the number of recorded readings
func (g *Generator) Tick(now time.Time) int {
	recorded := 0

	for _, device := range g.devices.Devices() {
		reading, err := g.synthesize(device, now)
		if err != nil {
			logging.Log().Errorf("generator: skipping device %s: %s", device.ID, err)
			if g.onFailure != nil {
				g.onFailure(device.ID, err)
			}
			continue
		}

		g.recorder.RecordReading(reading)
		recorded++
	}

	return recorded
}

// run the rule of the device category, a panicking rule is turned into an error
func (g *Generator) synthesize(device model.Device, now time.Time) (reading model.Reading, err error) {
	rule, ok := g.rules[device.Category]
	if !ok {
		return model.Reading{}, fmt.Errorf("no rule for category %q", device.Category)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()

	sample, err := g.applyRule(rule, device, now)
	if err != nil {
		return model.Reading{}, err
	}

	return model.Reading{
		ID:        model.NewReadingID(),
		DeviceID:  device.ID,
		Magnitude: sample.Magnitude,
		Unit:      model.UnitKilowattHour,
		Voltage:   sample.Voltage,
		Timestamp: now,
		Kind:      sample.Kind,
	}, nil
}

func (g *Generator) applyRule(rule RuleFunc, device model.Device, now time.Time) (Sample, error) {
	g.muxRand.Lock()
	defer g.muxRand.Unlock()

	return rule(device, now, g.rnd)
}
