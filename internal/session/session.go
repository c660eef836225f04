package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/aldertree/beacon/internal/pipeline"
	"github.com/aldertree/beacon/internal/stats"
)

// Session holds per-conversation state: a transcript of turns and the
// stats collector that owns this session's counters. State lives only for
// the lifetime of the process.
type Session struct {
	ID string

	mu        sync.RWMutex
	turns     []pipeline.Turn
	collector *stats.Collector
}

// New creates an empty session with a fresh collector.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		collector: stats.NewCollector(),
	}
}

// Stats returns the collector owned by this session.
func (s *Session) Stats() *stats.Collector { return s.collector }

// Append adds a completed turn to the transcript.
func (s *Session) Append(turn pipeline.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// History returns the last limit turns; limit <= 0 returns everything.
func (s *Session) History(limit int) []pipeline.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.turns) {
		limit = len(s.turns)
	}
	start := len(s.turns) - limit

	result := make([]pipeline.Turn, limit)
	copy(result, s.turns[start:])
	return result
}

// Len returns the transcript length.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Clear drops the transcript. Counters are untouched; use Stats().Reset()
// for those.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

// Manager keys sessions for callers that juggle more than one conversation.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for key, creating it on first use.
func (m *Manager) GetOrCreate(key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[key]; ok {
		return sess
	}
	sess := New()
	m.sessions[key] = sess
	return sess
}

// Remove drops the session for key, if any.
func (m *Manager) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
