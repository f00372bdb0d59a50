package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/plan"
)

// ErrNotFound means no live session has the requested id.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Manager owns every live session and evicts idle ones.
type Manager struct {
	catalog  *catalog.Catalog
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
	planOpts []plan.Option
	logger   *observability.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	cleanupMu     sync.Mutex
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopped       bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the idle lifetime of a session.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// WithPlanOptions is passed to every new skill store.
func WithPlanOptions(opts ...plan.Option) Option {
	return func(m *Manager) { m.planOpts = append(m.planOpts, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l *observability.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty manager. Eviction only runs once StartCleanup is called.
func NewManager(cat *catalog.Catalog, opts ...Option) *Manager {
	m := &Manager{
		catalog:  cat,
		ttl:      DefaultTTL,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   observability.Nop(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog is the reference data every session is keyed against.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Create starts an empty session.
func (m *Manager) Create() *Session {
	s := newSession(m.newID(), m.catalog, m.now(), m.planOpts...)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", "session", s.ID)
	return s
}

// Import starts a session from an exported plan document.
func (m *Manager) Import(data []byte) (*Session, error) {
	doc, err := plan.DecodeDocument(data, m.catalog)
	if err != nil {
		return nil, err
	}
	s := m.Create()
	s.Restore(doc)
	m.logger.Info("session imported", "session", s.ID, "skills", len(doc.Skills))
	return s, nil
}

// Get returns the session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Delete drops a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs lists live session ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Evict removes sessions idle for longer than the TTL and returns how many went.
func (m *Manager) Evict() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.logger.Info("evicted idle sessions", "count", n, "remaining", len(m.sessions))
	}
	return n
}

// StartCleanup evicts idle sessions every interval until Stop is called. Only the
// first call starts a sweeper, and none starts after Stop.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.cleanupMu.Lock()
	defer m.cleanupMu.Unlock()
	if interval <= 0 || m.cleanupTicker != nil || m.stopped {
		return
	}
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	m.cleanupTicker, m.cleanupStop = ticker, stop
	go func() {
		for {
			select {
			case <-ticker.C:
				m.Evict()
			case <-stop:
				return
			}
		}
	}()
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (m *Manager) Stop() {
	m.cleanupMu.Lock()
	defer m.cleanupMu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
		close(m.cleanupStop)
	}
}
