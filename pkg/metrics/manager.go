package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mfreeman451/camrelay/pkg/models"
)

// Totals is a snapshot of relay counters.
type Totals struct {
	Sessions      int64
	Frames        int64
	Bytes         int64
	AcceptErrors  int64
	Streaming     bool
	CurrentClient string
	ClientSince   time.Time
}

// Manager tracks relay counters and recent session history. Counters are
// atomic so readers on other goroutines never block the relay loop.
type Manager struct {
	store        SessionStore
	sessions     int64
	frames       int64
	bytes        int64
	acceptErrors int64

	mu          sync.RWMutex
	client      string
	clientSince time.Time
}

var _ RelayCollector = (*Manager)(nil)

// NewManager creates a Manager. History is only kept when cfg.Enabled is set.
func NewManager(cfg models.MetricsConfig) *Manager {
	retention := cfg.Retention
	if !cfg.Enabled {
		retention = 0
	}

	return &Manager{
		store: NewBuffer(retention),
	}
}

// SessionStarted marks a client as connected.
func (m *Manager) SessionStarted(remoteAddr string, at time.Time) {
	atomic.AddInt64(&m.sessions, 1)

	m.mu.Lock()
	m.client = remoteAddr
	m.clientSince = at
	m.mu.Unlock()
}

// FrameSent counts one delivered frame.
func (m *Manager) FrameSent(payloadBytes int) {
	atomic.AddInt64(&m.frames, 1)
	atomic.AddInt64(&m.bytes, int64(payloadBytes))
}

// SessionEnded clears the current client and stores the record.
func (m *Manager) SessionEnded(record models.SessionRecord) {
	m.mu.Lock()
	m.client = ""
	m.clientSince = time.Time{}
	m.mu.Unlock()

	m.store.Add(record)
}

// AcceptFailed counts a failed accept.
func (m *Manager) AcceptFailed() {
	atomic.AddInt64(&m.acceptErrors, 1)
}

// Totals returns a snapshot of the counters.
func (m *Manager) Totals() Totals {
	m.mu.RLock()
	client, since := m.client, m.clientSince
	m.mu.RUnlock()

	return Totals{
		Sessions:      atomic.LoadInt64(&m.sessions),
		Frames:        atomic.LoadInt64(&m.frames),
		Bytes:         atomic.LoadInt64(&m.bytes),
		AcceptErrors:  atomic.LoadInt64(&m.acceptErrors),
		Streaming:     client != "",
		CurrentClient: client,
		ClientSince:   since,
	}
}

// Sessions returns recent finished sessions, newest first.
func (m *Manager) Sessions() []models.SessionRecord {
	return m.store.GetRecords()
}

// LatestSession returns the most recently finished session, or nil.
func (m *Manager) LatestSession() *models.SessionRecord {
	return m.store.GetLastRecord()
}
