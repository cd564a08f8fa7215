package api

import (
	"github.com/enbility/telemetry-go/model"
)

//go:generate mockery
//go:generate mockgen -destination=../mocks/mockgen_api.go -package=mocks github.com/enbility/telemetry-go/api ReadingSinkInterface

/* Connections */

// interface for a connected observer
//
// implemented by ws.WebsocketConnection, used by the hub and the registry
type ConnectionInterface interface {
	// unique identifier of the connection for the process lifetime
	ID() string

	// queue an already encoded message for delivery
	//
	// must not block; returns an error if the connection is closed
	// or can not accept more messages
	WriteMessage([]byte) error

	// close the connection, can be called multiple times
	Close(closeCode int, reason string)

	// report if the connection is closed
	IsClosed() bool
}

// interface for handling incoming data of a connection
//
// implemented by the hub session, used by ws.WebsocketConnection
type ConnectionReaderInterface interface {
	// called for each incoming message
	HandleIncomingMessage([]byte)

	// called once when the connection is closed,
	// err is nil for a graceful close
	ReportConnectionClosed(err error)
}

/* Readings */

// interface for recording a new reading
//
// implemented by the hub, used by the generator and the REST handlers
type ReadingRecorderInterface interface {
	RecordReading(reading model.Reading)
}

// interface for the device catalog
//
// implemented by catalog.Catalog, used by the hub and the generator
type DeviceCatalogInterface interface {
	Devices() []model.Device
	Device(id string) (model.Device, bool)
	ByCategory(category model.DeviceCategory) []string
	SetStatus(id string, status model.DeviceStatus) (model.Device, error)
}

// interface for the external durable log
//
// implemented by sink.NoopSink and sink.NatsSink, used by the hub
type ReadingSinkInterface interface {
	// forward a newly recorded reading, must never block
	Forward(reading model.Reading)

	// flush pending records and release resources
	Close()
}
