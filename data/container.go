// Package data provides thread-safe in-memory storage for scanner sessions.
// Nothing stored here outlives the process.
package data

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/interfaces"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/medicines"
)

// Compile-time check to ensure SessionContainer implements SessionStore
var _ interfaces.SessionStore = (*SessionContainer)(nil)

type session struct {
	id        string
	history   []entities.MedicineRecord
	scanCount int
	createdAt time.Time
	lastSeen  time.Time
	scanning  atomic.Bool
}

func (s *session) view() entities.ScanSession {
	history := make([]entities.MedicineRecord, len(s.history))
	for i, r := range s.history {
		history[i] = r.Clone()
	}
	return entities.ScanSession{
		ID:        s.id,
		History:   history,
		ScanCount: s.scanCount,
		CreatedAt: s.createdAt,
		LastSeen:  s.lastSeen,
		Scanning:  s.scanning.Load(),
	}
}

// SessionContainer holds scanner sessions keyed by uuid.
type SessionContainer struct {
	mu              sync.RWMutex
	sessions        map[string]*session
	serverStartTime time.Time
	now             func() time.Time
}

// NewSessionContainer creates an empty container.
func NewSessionContainer() *SessionContainer {
	return &SessionContainer{
		sessions:        make(map[string]*session),
		serverStartTime: time.Now(),
		now:             time.Now,
	}
}

// Create starts a session with an empty history.
func (sc *SessionContainer) Create() entities.ScanSession {
	now := sc.now()
	s := &session{
		id:        uuid.NewString(),
		history:   []entities.MedicineRecord{},
		createdAt: now,
		lastSeen:  now,
	}

	sc.mu.Lock()
	sc.sessions[s.id] = s
	sc.mu.Unlock()

	logging.Debug("Scanner session created", "session_id", s.id)
	return s.view()
}

// Get returns a copy of the session and refreshes its idle timer.
func (sc *SessionContainer) Get(id string) (entities.ScanSession, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	s, ok := sc.sessions[id]
	if !ok {
		return entities.ScanSession{}, interfaces.ErrSessionNotFound
	}
	s.lastSeen = sc.now()
	return s.view(), nil
}

// Delete ends a session and discards its history.
func (sc *SessionContainer) Delete(id string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, ok := sc.sessions[id]; !ok {
		return false
	}
	delete(sc.sessions, id)
	logging.Debug("Scanner session deleted", "session_id", id)
	return true
}

// Len returns the number of live sessions.
func (sc *SessionContainer) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.sessions)
}

// BeginScan marks the start of a scan on a session.
// Returns ErrScanInProgress if another scan is pending.
func (sc *SessionContainer) BeginScan(id string) (bool, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	s, ok := sc.sessions[id]
	if !ok {
		return false, interfaces.ErrSessionNotFound
	}
	if !s.scanning.CompareAndSwap(false, true) {
		return false, interfaces.ErrScanInProgress
	}
	s.lastSeen = sc.now()
	return len(s.history) == 0, nil
}

// EndScan marks the end of a scan. Unknown ids are ignored since the
// session may have been deleted while the scan was pending.
func (sc *SessionContainer) EndScan(id string) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	if s, ok := sc.sessions[id]; ok {
		s.scanning.Store(false)
	}
}

// AppendScan records a completed scan at the head of the session history.
func (sc *SessionContainer) AppendScan(id string, record entities.MedicineRecord) (entities.ScanSession, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	s, ok := sc.sessions[id]
	if !ok {
		return entities.ScanSession{}, interfaces.ErrSessionNotFound
	}
	s.history = medicines.Record(s.history, record)
	s.scanCount++
	s.lastSeen = sc.now()
	return s.view(), nil
}

// Sweep removes sessions idle for longer than maxIdle. Sessions with a
// pending scan are kept.
func (sc *SessionContainer) Sweep(maxIdle time.Duration) int {
	cutoff := sc.now().Add(-maxIdle)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	removed := 0
	for id, s := range sc.sessions {
		if s.scanning.Load() || !s.lastSeen.Before(cutoff) {
			continue
		}
		delete(sc.sessions, id)
		removed++
	}

	if removed > 0 {
		logging.Info("Expired scanner sessions removed", "removed", removed, "remaining", len(sc.sessions))
	}
	return removed
}

// GetServerStartTime returns when the container was created.
func (sc *SessionContainer) GetServerStartTime() time.Time {
	return sc.serverStartTime
}
