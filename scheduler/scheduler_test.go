package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/myoncologist-api/interfaces"
)

type mockSessionStore struct {
	interfaces.SessionStore
	mu       sync.Mutex
	sweeps   int
	lastIdle time.Duration
	count    int
}

func (m *mockSessionStore) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweeps++
	m.lastIdle = maxIdle
	if m.count > 0 {
		m.count--
		return 1
	}
	return 0
}

func (m *mockSessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func (m *mockSessionStore) sweepCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweeps
}

func TestSchedulerSweepsOnInterval(t *testing.T) {
	store := &mockSessionStore{count: 5}
	s := NewScheduler(store, 30*time.Minute, time.Second)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer s.Stop()

	// gocron runs an interval job immediately and then every interval
	deadline := time.Now().Add(3 * time.Second)
	for store.sweepCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	if got := store.sweepCount(); got < 2 {
		t.Fatalf("Expected at least 2 sweeps, got %d", got)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.lastIdle != 30*time.Minute {
		t.Errorf("Expected sweep with 30m TTL, got %s", store.lastIdle)
	}
}

func TestSchedulerRejectsZeroInterval(t *testing.T) {
	s := NewScheduler(&mockSessionStore{}, time.Minute, 0)
	if err := s.Start(); err == nil {
		t.Error("Expected error for zero interval")
	}
}

func TestSchedulerStopIsSafe(t *testing.T) {
	store := &mockSessionStore{}
	s := NewScheduler(store, time.Minute, time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Stop()

	after := store.sweepCount()
	time.Sleep(100 * time.Millisecond)
	if store.sweepCount() != after {
		t.Error("Expected no sweeps after Stop")
	}
}
