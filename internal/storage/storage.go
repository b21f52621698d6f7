// Package storage journals what the player did with props and vehicles.
package storage

import (
	"errors"

	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/pkg/core"
)

// ErrUnknownBackend is returned by NewBackend for an unsupported storage type.
var ErrUnknownBackend = errors.New("unknown storage type")

// Backend is the interface all storage implementations must satisfy.
// Record methods are called from dispatcher workers, never the engine thread.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(s *core.Session) error
	// UpdateSession replaces the character and props metadata of the open
	// session. It is a no-op when no session is open.
	UpdateSession(s *core.Session) error
	EndSession() error

	// Journal
	RecordInteraction(i *core.Interaction) error
	RecordTyreSlash(t *core.TyreSlash) error
}

// Exporter is implemented by backends that write a file when a session ends.
type Exporter interface {
	ExportedFilePath() string
}

// Pender is implemented by backends that buffer writes.
type Pender interface {
	Pending() int
}

// PerformanceRecorder is implemented by backends that keep performance samples.
type PerformanceRecorder interface {
	RecordPerformance(p model.PluginPerformance) error
}
