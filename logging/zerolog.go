package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogging forwards the internal logs to a zerolog logger
type ZerologLogging struct {
	logger zerolog.Logger
}

var _ LoggingInterface = (*ZerologLogging)(nil)

// Create a zerolog based logger
//
// Parameters:
//   - out: the destination of the log lines
//   - level: one of trace, debug, info, warn, error; unknown values use info
//   - console: use human readable console output instead of JSON lines
func NewZerologLogging(out io.Writer, level string, console bool) *ZerologLogging {
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}

	logger := zerolog.New(out).Level(parsed).With().Timestamp().Logger()

	return &ZerologLogging{logger: logger}
}

// Logger returns the underlying zerolog logger
func (l *ZerologLogging) Logger() zerolog.Logger {
	return l.logger
}

// join the arguments the same way fmt.Println does, without the newline
func sprint(args ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

func (l *ZerologLogging) Trace(args ...interface{}) {
	l.logger.Trace().Msg(sprint(args...))
}

func (l *ZerologLogging) Tracef(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}

func (l *ZerologLogging) Debug(args ...interface{}) {
	l.logger.Debug().Msg(sprint(args...))
}

func (l *ZerologLogging) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *ZerologLogging) Info(args ...interface{}) {
	l.logger.Info().Msg(sprint(args...))
}

func (l *ZerologLogging) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

func (l *ZerologLogging) Warn(args ...interface{}) {
	l.logger.Warn().Msg(sprint(args...))
}

func (l *ZerologLogging) Warnf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *ZerologLogging) Error(args ...interface{}) {
	l.logger.Error().Msg(sprint(args...))
}

func (l *ZerologLogging) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}
