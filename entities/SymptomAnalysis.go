package entities

// Urgency is the display priority attached to an analysis result.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Valid reports whether u is one of the known urgency tiers.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// SymptomAnalysisResult is one canned analysis produced for a symptom description.
// Confidence is a fixed percentage per category, not a model output.
type SymptomAnalysisResult struct {
	Category       string   `json:"cancerType"`
	Confidence     int      `json:"confidence"`
	Symptoms       []string `json:"symptoms"`
	Recommendation string   `json:"recommendation"`
	Urgency        Urgency  `json:"urgency"`
}
