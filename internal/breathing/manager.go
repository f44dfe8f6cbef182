package breathing

import (
	"context"
	"sync"
	"time"
)

// DefaultIdleTTL is how long a stopped, unobserved controller is kept.
const DefaultIdleTTL = time.Hour

// Manager keeps one Controller per user.
type Manager struct {
	mu          sync.Mutex
	controllers map[int]*Controller
	opts        []Option
	idleTTL     time.Duration
	closed      bool
}

// NewManager returns a manager building controllers with opts.
func NewManager(idleTTL time.Duration, opts ...Option) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		controllers: make(map[int]*Controller),
		opts:        opts,
		idleTTL:     idleTTL,
	}
}

// Get returns the user's controller, creating a stopped one on first use.
// Getting a controller counts as activity, so a sweep cannot close it before
// the caller uses it. After CloseAll, Get returns a closed controller that is
// not tracked.
func (m *Manager) Get(userID int) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		c := NewController(m.opts...)
		c.Close()
		return c
	}
	c, ok := m.controllers[userID]
	if !ok {
		c = NewController(m.opts...)
		m.controllers[userID] = c
		return c
	}
	c.keepAlive()
	return c
}

// Len reports how many controllers are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// Run sweeps idle controllers every interval until ctx is canceled, then
// closes all of them.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.idleTTL
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	defer m.CloseAll()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.Sweep(now)
		}
	}
}

// Sweep closes and forgets controllers idle since before now-idleTTL.
// It returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := now.Add(-m.idleTTL)
	removed := 0
	for id, c := range m.controllers {
		if c.Idle(cutoff) {
			c.Close()
			delete(m.controllers, id)
			removed++
		}
	}
	return removed
}

// CloseAll stops every session and empties the manager. The manager stays
// closed afterwards.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for id, c := range m.controllers {
		c.Close()
		delete(m.controllers, id)
	}
}
