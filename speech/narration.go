// Package speech builds the texts read aloud to the user and wraps the
// speech-recognition capability behind a narrow interface.
package speech

import (
	"fmt"
	"strings"

	"github.com/giygas/myoncologist-api/entities"
)

// Disclaimer closes every spoken summary.
const Disclaimer = "Remember, this is not a medical diagnosis. Please consult a healthcare professional."

// Summary returns the full "hear results" text for an analysis.
func Summary(results []entities.SymptomAnalysisResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%s with %d%% confidence. %s", r.Category, r.Confidence, r.Recommendation)
	}

	return "Analysis results: " + strings.Join(parts, ". ") + " " + Disclaimer
}

// AvatarLine returns the shorter text the doctor avatar reads once an
// analysis completes.
func AvatarLine(results []entities.SymptomAnalysisResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%s. Confidence: %d percent. Recommendation: %s", r.Category, r.Confidence, r.Recommendation)
	}
	return strings.Join(parts, " ")
}
