package model

import "time"

type EventType string

// outgoing event names
const (
	EventTypeReadingUpdate EventType = "readingUpdate"
	EventTypeStatusUpdate  EventType = "statusUpdate"
	EventTypeAlert         EventType = "alert"
	EventTypeRoomMessage   EventType = "roomMessage"
	EventTypeAck           EventType = "ack"
	EventTypeError         EventType = "error"
)

// Event is implemented by every payload that can be sent to a connection
type Event interface {
	EventType() EventType
}

// Envelope is the wire format of every outgoing message
type Envelope struct {
	Event EventType `json:"event"`
	Data  any       `json:"data"`
}

func NewEnvelope(event Event) Envelope {
	return Envelope{Event: event.EventType(), Data: event}
}

type ReadingUpdate struct {
	Reading
}

func (ReadingUpdate) EventType() EventType { return EventTypeReadingUpdate }

type StatusUpdate struct {
	DeviceID  string       `json:"deviceId"`
	Status    DeviceStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

func (StatusUpdate) EventType() EventType { return EventTypeStatusUpdate }

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type Alert struct {
	DeviceID  string        `json:"deviceId"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	ReadingID string        `json:"readingId,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func (Alert) EventType() EventType { return EventTypeAlert }

type RoomMessage struct {
	Room         string    `json:"room"`
	ConnectionID string    `json:"from"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

func (RoomMessage) EventType() EventType { return EventTypeRoomMessage }

// Ack confirms a processed command
type Ack struct {
	Action    CommandAction `json:"action"`
	RequestID string        `json:"requestId,omitempty"`
	Topic     string        `json:"topic,omitempty"`
}

func (Ack) EventType() EventType { return EventTypeAck }

// CommandError reports a rejected command
type CommandError struct {
	Action    CommandAction `json:"action,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Error     string        `json:"error"`
}

func (CommandError) EventType() EventType { return EventTypeError }
