package logging

import "sync"

// LoggingInterface receives all log output of the telemetry packages
//
// Trace is used for per-message output like single deliveries,
// Debug for connection and subscription changes, Error for failures
// that are isolated and skipped.
type LoggingInterface interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoLogging discards everything, it is the default
type NoLogging struct{}

var _ LoggingInterface = (*NoLogging)(nil)

func (l *NoLogging) Trace(args ...interface{})                 {}
func (l *NoLogging) Tracef(format string, args ...interface{}) {}
func (l *NoLogging) Debug(args ...interface{})                 {}
func (l *NoLogging) Debugf(format string, args ...interface{}) {}
func (l *NoLogging) Info(args ...interface{})                  {}
func (l *NoLogging) Infof(format string, args ...interface{})  {}
func (l *NoLogging) Warn(args ...interface{})                  {}
func (l *NoLogging) Warnf(format string, args ...interface{})  {}
func (l *NoLogging) Error(args ...interface{})                 {}
func (l *NoLogging) Errorf(format string, args ...interface{}) {}

var (
	current    LoggingInterface = &NoLogging{}
	muxCurrent sync.RWMutex
)

// SetLogging installs the process wide logger, nil restores NoLogging
func SetLogging(logger LoggingInterface) {
	if logger == nil {
		logger = &NoLogging{}
	}

	muxCurrent.Lock()
	current = logger
	muxCurrent.Unlock()
}

// Log returns the installed logger
func Log() LoggingInterface {
	muxCurrent.RLock()
	defer muxCurrent.RUnlock()

	return current
}
