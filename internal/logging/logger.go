// Package logging builds the structured logger shared by the CLI and the HTTP server.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output
	Out    io.Writer
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new structured logger
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if cfg.Out != nil {
		output = cfg.Out
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// EngineLogger adapts a zerolog.Logger to the calculation engine's printf-style interface
type EngineLogger struct {
	Log zerolog.Logger
}

// NewEngineLogger tags every entry with the engine component
func NewEngineLogger(l zerolog.Logger) EngineLogger {
	return EngineLogger{Log: l.With().Str("component", "engine").Logger()}
}

func (e EngineLogger) Debugf(format string, args ...any) { e.Log.Debug().Msgf(format, args...) }
func (e EngineLogger) Infof(format string, args ...any)  { e.Log.Info().Msgf(format, args...) }
func (e EngineLogger) Warnf(format string, args ...any)  { e.Log.Warn().Msgf(format, args...) }
func (e EngineLogger) Errorf(format string, args ...any) { e.Log.Error().Msgf(format, args...) }
