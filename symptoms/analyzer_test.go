package symptoms

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAnalyzerNoDelay(t *testing.T) {
	a := NewAnalyzer(0)

	results, err := a.Analyze(context.Background(), "persistent cough")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].Category != "Lung Cancer" {
		t.Errorf("Expected lung result, got %v", categoriesOf(results))
	}
}

func TestAnalyzerWaitsForDelay(t *testing.T) {
	a := NewAnalyzer(20 * time.Millisecond)

	start := time.Now()
	if _, err := a.Analyze(context.Background(), "lump"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least 20ms delay, got %v", elapsed)
	}
}

func TestAnalyzerCancelled(t *testing.T) {
	a := NewAnalyzer(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	results, err := a.Analyze(ctx, "lump")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected no results, got %v", results)
	}
}

func TestAnalyzerAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewAnalyzer(0).Analyze(ctx, "lump"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context canceled, got %v", err)
	}
}
