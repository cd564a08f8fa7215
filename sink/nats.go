package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	DefaultSubject        = "telemetry.readings"
	DefaultQueueSize      = 1024
	DefaultPublishTimeout = 2 * time.Second
)

// the subset of jetstream.JetStream used for forwarding
type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NatsSink forwards recorded readings to a NATS JetStream subject
//
// Forward only enqueues, a single worker publishes in the background.
// Records are dropped when the queue is full, failed publishes are logged
// and not retried.
type NatsSink struct {
	js      streamPublisher
	subject string
	timeout time.Duration

	queue chan model.Reading
	done  chan struct{}

	// the underlying connection, nil when created with a custom publisher
	nc *nats.Conn

	closed bool

	muxClosed    sync.RWMutex
	shutdownOnce sync.Once
}

var _ api.ReadingSinkInterface = (*NatsSink)(nil)

type NatsOptions struct {
	// the subject readings are published on, defaults to DefaultSubject
	Subject string
	// the number of queued readings, defaults to DefaultQueueSize
	QueueSize int
	// the timeout for a single publish, defaults to DefaultPublishTimeout
	PublishTimeout time.Duration
}

func (o NatsOptions) withDefaults() NatsOptions {
	if o.Subject == "" {
		o.Subject = DefaultSubject
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = DefaultPublishTimeout
	}
	return o
}

// Connect creates a sink publishing to the NATS server at url
func Connect(url string, opts NatsOptions) (*NatsSink, error) {
	if url == "" {
		return nil, api.ErrSinkNotConfigured
	}

	nc, err := nats.Connect(url,
		nats.Name("telemetry-go"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logging.Log().Error("nats sink disconnected:", err)
			}
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			logging.Log().Info("nats sink reconnected to", conn.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	s := newNatsSink(js, opts)
	s.nc = nc

	return s, nil
}

// NewNatsSink creates a sink on an existing JetStream context
func NewNatsSink(js jetstream.JetStream, opts NatsOptions) *NatsSink {
	return newNatsSink(js, opts)
}

func newNatsSink(js streamPublisher, opts NatsOptions) *NatsSink {
	opts = opts.withDefaults()

	s := &NatsSink{
		js:      js,
		subject: opts.Subject,
		timeout: opts.PublishTimeout,
		queue:   make(chan model.Reading, opts.QueueSize),
		done:    make(chan struct{}),
	}

	go s.run()

	return s
}

// Subject returns the subject readings are published on
func (s *NatsSink) Subject() string {
	return s.subject
}

func (s *NatsSink) Forward(reading model.Reading) {
	s.muxClosed.RLock()
	defer s.muxClosed.RUnlock()

	if s.closed {
		return
	}

	select {
	case s.queue <- reading:
	default:
		logging.Log().Error("nats sink queue is full, dropping reading", reading.ID)
	}
}

func (s *NatsSink) run() {
	defer close(s.done)

	for reading := range s.queue {
		s.publish(reading)
	}
}

func (s *NatsSink) publish(reading model.Reading) {
	data, err := json.Marshal(model.NewSinkRecord(reading))
	if err != nil {
		logging.Log().Error("nats sink encode error:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// the reading id doubles as message id, so JetStream can deduplicate
	if _, err := s.js.Publish(ctx, s.subject, data, jetstream.WithMsgID(reading.ID)); err != nil {
		logging.Log().Errorf("nats sink publish of %s failed: %s", reading.ID, err)
		return
	}

	logging.Log().Trace("nats sink published", reading.ID)
}

// Close stops accepting readings, publishes the queued ones and closes the connection
func (s *NatsSink) Close() {
	s.shutdownOnce.Do(func() {
		s.muxClosed.Lock()
		s.closed = true
		close(s.queue)
		s.muxClosed.Unlock()

		<-s.done

		if s.nc != nil {
			_ = s.nc.Drain()
		}
	})
}
