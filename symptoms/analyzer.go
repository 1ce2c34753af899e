package symptoms

import (
	"context"
	"time"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/processing"
)

// Analyzer runs Classify behind a fixed processing delay so clients can show
// a loading state.
type Analyzer struct {
	delay time.Duration
}

func NewAnalyzer(delay time.Duration) *Analyzer {
	return &Analyzer{delay: delay}
}

// Analyze waits for the processing delay and classifies text. If ctx ends
// first the wait is abandoned and ctx.Err() is returned.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]entities.SymptomAnalysisResult, error) {
	if err := processing.Wait(ctx, a.delay); err != nil {
		return nil, err
	}

	return Classify(text), nil
}
