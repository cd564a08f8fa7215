package sink

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/model"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

// records publishes instead of talking to a JetStream server
type testPublisher struct {
	messages []publishedMessage
	fail     map[string]error
	block    chan struct{}

	mux sync.Mutex
}

func (p *testPublisher) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if p.block != nil {
		<-p.block
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	var record model.SinkRecord
	_ = json.Unmarshal(data, &record)
	if err, ok := p.fail[record.ID]; ok {
		return nil, err
	}

	p.messages = append(p.messages, publishedMessage{subject: subject, data: data})
	return &jetstream.PubAck{Stream: "TELEMETRY", Sequence: uint64(len(p.messages))}, nil
}

func (p *testPublisher) published() []publishedMessage {
	p.mux.Lock()
	defer p.mux.Unlock()

	return append([]publishedMessage(nil), p.messages...)
}

func testReading(id string) model.Reading {
	return model.Reading{
		ID:        id,
		DeviceID:  "device-001",
		Magnitude: 9.5,
		Unit:      model.UnitKilowattHour,
		Voltage:   239.8,
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Kind:      model.ReadingKindConsumption,
	}
}

func TestNatsSink_Forward(t *testing.T) {
	publisher := &testPublisher{}
	sut := newNatsSink(publisher, NatsOptions{})
	assert.Equal(t, DefaultSubject, sut.Subject())

	sut.Forward(testReading("r-1"))
	sut.Forward(testReading("r-2"))
	sut.Close()

	messages := publisher.published()
	require.Len(t, messages, 2)
	assert.Equal(t, DefaultSubject, messages[0].subject)
	assert.JSONEq(t, `{"deviceId":"device-001","magnitude":9.5,"id":"r-1","timestamp":"2024-06-01T12:00:00Z","voltage":239.8,"kind":"consumption"}`, string(messages[0].data))
}

func TestNatsSink_PublishErrorIsIgnored(t *testing.T) {
	publisher := &testPublisher{fail: map[string]error{"r-1": errors.New("no responders")}}
	sut := newNatsSink(publisher, NatsOptions{Subject: "energy.readings"})

	sut.Forward(testReading("r-1"))
	sut.Forward(testReading("r-2"))
	sut.Close()

	messages := publisher.published()
	require.Len(t, messages, 1)
	assert.Equal(t, "energy.readings", messages[0].subject)
}

func TestNatsSink_ForwardDoesNotBlock(t *testing.T) {
	publisher := &testPublisher{block: make(chan struct{})}
	sut := newNatsSink(publisher, NatsOptions{QueueSize: 2})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			sut.Forward(testReading("r"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward blocked on a stalled publisher")
	}

	close(publisher.block)
	sut.Close()

	// one in flight plus the queue, the rest got dropped
	assert.LessOrEqual(t, len(publisher.published()), 3)
}

func TestNatsSink_ForwardAfterClose(t *testing.T) {
	publisher := &testPublisher{}
	sut := newNatsSink(publisher, NatsOptions{})

	sut.Close()
	sut.Close()
	sut.Forward(testReading("r-1"))

	assert.Empty(t, publisher.published())
}

func TestConnect_NotConfigured(t *testing.T) {
	_, err := Connect("", NatsOptions{})
	assert.True(t, errors.Is(err, api.ErrSinkNotConfigured))
}

func TestNoopSink(t *testing.T) {
	sut := NewNoopSink()
	sut.Forward(testReading("r-1"))
	sut.Close()
}
