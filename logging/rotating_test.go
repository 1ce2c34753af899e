package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), "2026-W01"},
		{time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), "2026-W42"},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}

	for _, tt := range tests {
		if got := weekKey(tt.date); got != tt.expected {
			t.Errorf("weekKey(%s) = %s, want %s", tt.date.Format(time.DateOnly), got, tt.expected)
		}
	}
}

func TestRotatingWriterSizeRotation(t *testing.T) {
	dir := t.TempDir()
	rw, err := NewRotatingWriter(dir, 4, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer rw.Close()

	week := weekKey(time.Now())
	for _, line := range []string{"12345678\n", "abcdefgh\n", "ABCDEFGH\n"} {
		if _, err := rw.Write([]byte(line)); err != nil {
			t.Fatalf("Expected no write error, got %v", err)
		}
	}

	for _, name := range []string{
		logFilePrefix + week + ".log",
		logFilePrefix + week + "_01.log",
		logFilePrefix + week + "_02.log",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Expected %s to exist, got %v", name, err)
			continue
		}
		if info.Size() != 9 {
			t.Errorf("Expected %s to hold one line, got %d bytes", name, info.Size())
		}
	}
}

func TestRotatingWriterWeekRotation(t *testing.T) {
	dir := t.TempDir()
	rw, err := NewRotatingWriter(dir, 4, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer rw.Close()

	next := time.Now().AddDate(0, 0, 7)
	rw.mu.Lock()
	rw.now = func() time.Time { return next }
	rw.mu.Unlock()

	if _, err := rw.Write([]byte("next week\n")); err != nil {
		t.Fatalf("Expected no write error, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, logFilePrefix+weekKey(next)+".log")); err != nil {
		t.Errorf("Expected file for next week, got %v", err)
	}
}

func TestRotatingWriterCleanup(t *testing.T) {
	dir := t.TempDir()
	rw, err := NewRotatingWriter(dir, 1, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer rw.Close()

	old := filepath.Join(dir, logFilePrefix+"2020-W01.log")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, unrelated} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to seed %s: %v", p, err)
		}
		past := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatalf("Failed to age %s: %v", p, err)
		}
	}

	deleted, err := rw.Cleanup()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted file, got %d", deleted)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("Expected old log removed, got %v", err)
	}
	if _, err := os.Stat(unrelated); err != nil {
		t.Errorf("Expected unrelated file kept, got %v", err)
	}
}

func TestRotatingWriterCloseTwice(t *testing.T) {
	rw, err := NewRotatingWriter(t.TempDir(), 1, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("Expected no error on first close, got %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Errorf("Expected no error on second close, got %v", err)
	}
}
