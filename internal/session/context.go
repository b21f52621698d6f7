// Package session holds the state of the current plugin load.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/interactiv/extension/pkg/core"
)

// Context holds the current session
type Context struct {
	mu      sync.RWMutex
	session core.Session
}

// NewContext starts a session with a fresh id.
func NewContext(version string) *Context {
	return &Context{
		session: core.Session{
			ID:               uuid.NewString(),
			StartTime:        time.Now(),
			ExtensionVersion: version,
			Character:        "No character",
		},
	}
}

// Get returns a copy of the current session
func (c *Context) Get() core.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ID returns the session id.
func (c *Context) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.ID
}

func (c *Context) SetCharacter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Character = name
}

// SetProps records which props file is loaded and how many props it gave.
func (c *Context) SetProps(file string, loaded int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.PropsFile = file
	c.session.PropsLoaded = loaded
}

// Attrs returns the log attributes describing the session.
func (c *Context) Attrs() []slog.Attr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return []slog.Attr{
		slog.String("session", c.session.ID),
		slog.Int("props", c.session.PropsLoaded),
	}
}
