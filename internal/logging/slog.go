package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// stdout is where records go when no log file is given.
var stdout io.Writer = os.Stdout

// SlogManager manages slog-based logging with optional GELF shipping.
type SlogManager struct {
	logger  *slog.Logger
	level   slog.LevelVar
	closers []io.Closer

	// context is read on every record
	context ContextProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetContext installs the provider whose attributes are added to every record
// of loggers created by later Setup calls.
func (m *SlogManager) SetContext(p ContextProvider) {
	m.context = p
}

// Setup initializes the logging system. Records go to file when it is set and
// to stdout otherwise; gelf, when non-nil, additionally receives every record.
// A previous setup's GELF writer is closed.
func (m *SlogManager) Setup(file io.Writer, level string, gelf MessageWriter) {
	m.Close()
	m.level.Set(parseLevel(level))

	handlerOpts := &slog.HandlerOptions{
		Level: &m.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stdout, handlerOpts))
	}

	if gelf != nil {
		handlers = append(handlers, NewGelfHandler(gelf, &m.level))
		if c, ok := gelf.(io.Closer); ok {
			m.closers = append(m.closers, c)
		}
	}

	var h slog.Handler = NewMultiHandler(handlers...)
	if m.context != nil {
		h = NewContextHandler(h, m.context)
	}

	m.logger = slog.New(h)
	m.logger.Info("Logging initialized", "level", m.level.Level().String())
}

// SetLevel changes the level of the current logger in place.
func (m *SlogManager) SetLevel(level string) {
	m.level.Set(parseLevel(level))
}

// Level returns the active level.
func (m *SlogManager) Level() slog.Level {
	return m.level.Level()
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Close releases the GELF connection, if any.
func (m *SlogManager) Close() {
	for _, c := range m.closers {
		_ = c.Close()
	}
	m.closers = nil
}
