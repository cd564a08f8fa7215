package sink

import (
	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/model"
)

// NoopSink is used when no external durable log is configured
type NoopSink struct{}

var _ api.ReadingSinkInterface = (*NoopSink)(nil)

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (s *NoopSink) Forward(model.Reading) {}
func (s *NoopSink) Close()                {}
