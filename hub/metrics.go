package hub

import (
	"context"

	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/enbility/telemetry-go/hub"

var (
	attrSpace  = attribute.Key("topic.space")
	attrDevice = attribute.Key("device.id")
)

// counters reported by the hub
type hubMetrics struct {
	readingsRecorded  metric.Int64Counter
	readingsEvicted   metric.Int64Counter
	eventsPublished   metric.Int64Counter
	deliveries        metric.Int64Counter
	staleDeliveries   metric.Int64Counter
	synthesisFailures metric.Int64Counter
	connectionsOpened metric.Int64Counter
	connectionsClosed metric.Int64Counter
}

// falls back to the global provider, which is a no-op unless the binary installs one
func newHubMetrics(mp metric.MeterProvider) *hubMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	m := &hubMetrics{}
	m.readingsRecorded = counter(meter, "telemetry.readings.recorded", "number of readings recorded")
	m.readingsEvicted = counter(meter, "telemetry.readings.evicted", "number of readings evicted from the history")
	m.eventsPublished = counter(meter, "telemetry.events.published", "number of published events")
	m.deliveries = counter(meter, "telemetry.deliveries", "number of messages queued to connections")
	m.staleDeliveries = counter(meter, "telemetry.deliveries.stale", "number of deliveries skipped because of a stale connection")
	m.synthesisFailures = counter(meter, "telemetry.synthesis.failures", "number of failed reading syntheses")
	m.connectionsOpened = counter(meter, "telemetry.connections.opened", "number of accepted websocket connections")
	m.connectionsClosed = counter(meter, "telemetry.connections.closed", "number of closed websocket connections")

	return m
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		logging.Log().Error("metrics: creating counter", name, "failed:", err)
	}
	return c
}

func add(c metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if c == nil || value == 0 {
		return
	}
	c.Add(context.Background(), value, metric.WithAttributes(attrs...))
}

func (m *hubMetrics) recorded(reading model.Reading, evicted int) {
	add(m.readingsRecorded, 1, attrDevice.String(reading.DeviceID))
	add(m.readingsEvicted, int64(evicted), attrDevice.String(reading.DeviceID))
}

func (m *hubMetrics) published(topic model.Topic, delivered, stale int) {
	space := attrSpace.String(topic.Space().String())
	add(m.eventsPublished, 1, space)
	add(m.deliveries, int64(delivered), space)
	add(m.staleDeliveries, int64(stale), space)
}

func (m *hubMetrics) synthesisFailed(deviceID string) {
	add(m.synthesisFailures, 1, attrDevice.String(deviceID))
}

func (m *hubMetrics) connectionOpened() {
	add(m.connectionsOpened, 1)
}

func (m *hubMetrics) connectionClosed() {
	add(m.connectionsClosed, 1)
}
