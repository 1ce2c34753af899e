package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const logFilePrefix = "myoncologist-"

var numberedLogFile = regexp.MustCompile(`^` + logFilePrefix + `\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingWriter writes to one file per ISO week, starting a numbered
// continuation file when maxSize is reached, and deletes files older than
// the retention period.
type RotatingWriter struct {
	dir       string
	retention time.Duration
	maxSize   int64

	mu   sync.Mutex
	file *os.File
	week string
	size int64

	stop chan struct{}
	done chan struct{}
	now  func() time.Time
}

// NewRotatingWriter opens the file for the current week in dir.
func NewRotatingWriter(dir string, retentionWeeks int, maxSize int64) (*RotatingWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rw := &RotatingWriter{
		dir:       dir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxSize:   maxSize,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		now:       time.Now,
	}

	rw.mu.Lock()
	err := rw.rotate(weekKey(rw.now()), 0)
	rw.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go rw.cleanupLoop(24 * time.Hour)
	return rw, nil
}

// weekKey returns the ISO week as YYYY-Www.
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// rotate opens a file for week with room for need more bytes. Caller holds mu.
func (rw *RotatingWriter) rotate(week string, need int64) error {
	if rw.file != nil {
		_ = rw.file.Close()
		rw.file = nil
	}

	name := rw.pickFile(week, need)
	path := filepath.Join(rw.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	rw.file = f
	rw.week = week
	rw.size = 0
	if info, err := f.Stat(); err == nil {
		rw.size = info.Size()
	}
	return nil
}

// pickFile returns the base file for week or its highest numbered
// continuation if it has room, otherwise the next numbered name.
func (rw *RotatingWriter) pickFile(week string, need int64) string {
	base := logFilePrefix + week + ".log"
	if !rw.full(filepath.Join(rw.dir, base), need) {
		return base
	}

	highest := 0
	matches, _ := filepath.Glob(filepath.Join(rw.dir, logFilePrefix+week+"_??.log"))
	for _, m := range matches {
		sub := numberedLogFile.FindStringSubmatch(filepath.Base(m))
		if len(sub) < 2 {
			continue
		}
		n, _ := strconv.Atoi(sub[1])
		if n > highest {
			highest = n
		}
	}

	if highest > 0 {
		last := fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, highest)
		if !rw.full(filepath.Join(rw.dir, last), need) {
			return last
		}
	}

	return fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, highest+1)
}

// full reports whether an existing file cannot take need more bytes.
func (rw *RotatingWriter) full(path string, need int64) bool {
	if rw.maxSize <= 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0 && info.Size()+need > rw.maxSize
}

// Write implements io.Writer.
func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	week := weekKey(rw.now())
	need := int64(len(p))
	if week != rw.week || (rw.maxSize > 0 && rw.size > 0 && rw.size+need > rw.maxSize) {
		if err := rw.rotate(week, need); err != nil {
			return 0, err
		}
	}

	if rw.file == nil {
		return 0, fmt.Errorf("no log file available")
	}

	n, err := rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

func (rw *RotatingWriter) cleanupLoop(every time.Duration) {
	defer close(rw.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rw.stop:
			return
		case <-ticker.C:
			if _, err := rw.Cleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			}
		}
	}
}

// Cleanup removes log files last modified before the retention cutoff and
// returns how many were deleted.
func (rw *RotatingWriter) Cleanup() (int, error) {
	entries, err := os.ReadDir(rw.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := rw.now().Add(-rw.retention)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(rw.dir, name)); err == nil {
			deleted++
		}
	}

	return deleted, nil
}

// Close stops the cleanup loop and closes the current file.
func (rw *RotatingWriter) Close() error {
	select {
	case <-rw.stop:
	default:
		close(rw.stop)
	}
	<-rw.done

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.file == nil {
		return nil
	}
	err := rw.file.Close()
	rw.file = nil
	return err
}
