package api

import "errors"

var (
	ErrUnknownDevice     = errors.New("unknown device")
	ErrInvalidStatus     = errors.New("invalid device status")
	ErrInvalidReading    = errors.New("invalid reading")
	ErrUnknownAction     = errors.New("unknown action")
	ErrMissingTopicKey   = errors.New("missing topic key")
	ErrConnectionClosed  = errors.New("connection is closed")
	ErrSendQueueFull     = errors.New("send queue is full")
	ErrAlreadyRunning    = errors.New("already running")
	ErrSinkNotConfigured = errors.New("sink is not configured")
)
