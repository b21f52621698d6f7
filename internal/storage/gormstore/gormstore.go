// Package gormstore implements the journal backend on GORM with write queues
// drained by a background goroutine.
package gormstore

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/interactiv/extension/internal/config"
	"github.com/interactiv/extension/internal/database"
	"github.com/interactiv/extension/internal/model"
	"github.com/interactiv/extension/internal/model/convert"
	"github.com/interactiv/extension/internal/queue"
	"github.com/interactiv/extension/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrNoSession is returned when a record arrives before StartSession.
var ErrNoSession = errors.New("no active session")

const (
	defaultFlushInterval = 2 * time.Second
	defaultBatchSize     = 500
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	Queue  config.QueueConfig
}

// Backend writes the journal through GORM.
type Backend struct {
	deps Dependencies

	interactions *queue.Queue[model.Interaction]
	tyreSlashes  *queue.Queue[model.TyreSlash]

	sessionID atomic.Uint64
	flushMu   sync.Mutex

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Queue.FlushInterval <= 0 {
		deps.Queue.FlushInterval = defaultFlushInterval
	}
	if deps.Queue.BatchSize <= 0 {
		deps.Queue.BatchSize = defaultBatchSize
	}
	return &Backend{
		deps:         deps,
		interactions: queue.NewBounded[model.Interaction](deps.Queue.Limit),
		tyreSlashes:  queue.NewBounded[model.TyreSlash](deps.Queue.Limit),
	}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema and starts the writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("gormstore: no database connection")
	}
	if err := database.Migrate(b.deps.DB, b.deps.Logger); err != nil {
		return err
	}

	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go b.writer()
	return nil
}

// Close stops the writer and flushes whatever is still queued.
func (b *Backend) Close() error {
	var err error
	b.once.Do(func() {
		if b.stop != nil {
			close(b.stop)
			<-b.done
		}
		err = b.Flush()
		if dropped := b.interactions.Dropped() + b.tyreSlashes.Dropped(); dropped > 0 {
			b.deps.Logger.Warn().Uint64("dropped", dropped).Msg("Journal queue overflowed")
		}
	})
	return err
}

// StartSession inserts the session row synchronously so records can reference it.
func (b *Backend) StartSession(s *core.Session) error {
	row := convert.SessionToGorm(*s)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	b.sessionID.Store(uint64(row.ID))
	b.deps.Logger.Info().Str("session", s.ID).Uint("id", row.ID).Msg("Session started")
	return nil
}

// UpdateSession writes the character and props metadata to the session row.
func (b *Backend) UpdateSession(s *core.Session) error {
	id := uint(b.sessionID.Load())
	if id == 0 {
		return nil
	}
	err := b.deps.DB.Model(&model.Session{}).Where("id = ?", id).Updates(map[string]any{
		"character":    s.Character,
		"props_file":   s.PropsFile,
		"props_loaded": s.PropsLoaded,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// EndSession flushes the queues and stamps the session end time.
func (b *Backend) EndSession() error {
	id := uint(b.sessionID.Load())
	if id == 0 {
		return nil
	}
	if err := b.Flush(); err != nil {
		return err
	}

	end := sql.NullTime{Time: time.Now(), Valid: true}
	if err := b.deps.DB.Model(&model.Session{}).Where("id = ?", id).Update("end_time", end).Error; err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	b.sessionID.Store(0)
	return nil
}

// RecordInteraction converts and queues an interaction.
func (b *Backend) RecordInteraction(i *core.Interaction) error {
	id := uint(b.sessionID.Load())
	if id == 0 {
		return ErrNoSession
	}
	b.interactions.Push(convert.InteractionToGorm(*i, id))
	return nil
}

// RecordTyreSlash converts and queues a tyre slash.
func (b *Backend) RecordTyreSlash(t *core.TyreSlash) error {
	id := uint(b.sessionID.Load())
	if id == 0 {
		return ErrNoSession
	}
	b.tyreSlashes.Push(convert.TyreSlashToGorm(*t, id))
	return nil
}

// RecordPerformance stamps a performance sample with the session and inserts it.
func (b *Backend) RecordPerformance(p model.PluginPerformance) error {
	id := uint(b.sessionID.Load())
	if id == 0 {
		return ErrNoSession
	}
	p.SessionID = id
	if err := b.deps.DB.Create(&p).Error; err != nil {
		return fmt.Errorf("failed to insert performance sample: %w", err)
	}
	return nil
}

// Pending returns the number of queued rows.
func (b *Backend) Pending() int {
	return b.interactions.Len() + b.tyreSlashes.Len()
}

// Flush writes every queued row. Rows that fail to insert go back to the
// head of their queue.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	return errors.Join(
		writeQueue(b.deps.DB, b.interactions, b.deps.Queue.BatchSize),
		writeQueue(b.deps.DB, b.tyreSlashes, b.deps.Queue.BatchSize),
	)
}

func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], batchSize int) error {
	for q.Len() > 0 {
		items := q.Drain(batchSize)
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(&items, batchSize).Error
		}); err != nil {
			q.Requeue(items)
			var zero T
			return fmt.Errorf("writing %T: %w", zero, err)
		}
	}
	return nil
}

func (b *Backend) writer() {
	defer close(b.done)

	ticker := time.NewTicker(b.deps.Queue.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error().Err(err).Msg("Failed to flush journal")
			}
		}
	}
}
