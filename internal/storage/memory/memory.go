// Package memory keeps the journal in memory and exports it as JSON when the
// session ends.
package memory

import (
	"sync"
	"time"

	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/pkg/core"
)

// Backend stores the session journal in memory.
type Backend struct {
	cfg config.MemoryConfig

	mu             sync.RWMutex
	session        *core.Session
	endTime        time.Time
	interactions   []core.Interaction
	tyreSlashes    []core.TyreSlash
	lastExportPath string

	now func() time.Time
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg: cfg,
		now: time.Now,
	}
}

func (b *Backend) Init() error {
	return nil
}

// Close exports a session that was never ended.
func (b *Backend) Close() error {
	b.mu.RLock()
	open := b.session != nil && b.endTime.IsZero()
	b.mu.RUnlock()
	if open {
		return b.EndSession()
	}
	return nil
}

// StartSession begins a new journal, discarding any previous records.
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	copied := *s
	b.session = &copied
	b.endTime = time.Time{}
	b.interactions = nil
	b.tyreSlashes = nil
	return nil
}

// UpdateSession refreshes the metadata written with the export. The session
// id and start time stay those given to StartSession.
func (b *Backend) UpdateSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil || !b.endTime.IsZero() {
		return nil
	}
	b.session.Character = s.Character
	b.session.PropsFile = s.PropsFile
	b.session.PropsLoaded = s.PropsLoaded
	return nil
}

// EndSession writes the journal to the output folder.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	b.endTime = b.now()
	return b.exportJSON()
}

func (b *Backend) RecordInteraction(i *core.Interaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.interactions = append(b.interactions, *i)
	return nil
}

func (b *Backend) RecordTyreSlash(t *core.TyreSlash) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tyreSlashes = append(b.tyreSlashes, *t)
	return nil
}

// Interactions returns a copy of the recorded interactions.
func (b *Backend) Interactions() []core.Interaction {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.Interaction(nil), b.interactions...)
}

// TyreSlashes returns a copy of the recorded tyre slashes.
func (b *Backend) TyreSlashes() []core.TyreSlash {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.TyreSlash(nil), b.tyreSlashes...)
}

// ExportedFilePath returns the path of the last export, or "".
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
